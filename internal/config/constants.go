package config

import "time"

// Application constants - all hardcoded values for the HoopSight system
const (
	// Application Info
	AppName   = "HoopSight"
	AppVendor = "HoopSight Analytics"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 60 * time.Second

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultReportsDir = "data/reports"

	// Export Settings
	ExportWorkbookName      = "hoopsight.xlsx"
	ExportGenerationTimeout = 5 * time.Minute

	// Log Settings
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
	DefaultLogOutput  = "both"
	DefaultLogFile    = "logs/app.log"
	MaxLogFileSize    = 100 * 1024 * 1024 // 100MB
	MaxLogFileAge     = 30                // days
	MaxLogFileBackups = 10
)

// URLs and Endpoints
const (
	// API Endpoints (internal)
	APIBasePath       = "/api"
	DashboardEndpoint = "/api/dashboard"
	ExportEndpoint    = "/api/export"
	ReportsEndpoint   = "/api/reports"
	HealthEndpoint    = "/api/health"
	VersionEndpoint   = "/api/version"
	MetricsEndpoint   = "/metrics"
)
