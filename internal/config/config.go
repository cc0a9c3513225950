package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the full runtime configuration. Values resolve in three layers:
// struct defaults, then the optional YAML file, then HOOP_* environment
// variables.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig tunes the HTTP listener.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"60s"`
}

// DataConfig locates the dataset inputs and generated reports.
type DataConfig struct {
	Dir        string `yaml:"dir" envconfig:"DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
}

// SecurityConfig holds the CORS and rate limit settings.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig caps request throughput per client IP.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig controls the slog sink.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// TelemetryConfig controls trace and metric export.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	ServiceName string  `yaml:"service_name" envconfig:"SERVICE_NAME" default:"hoopsight"`
	TraceStdout bool    `yaml:"trace_stdout" envconfig:"TRACE_STDOUT" default:"false"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// Load resolves the configuration for this process. Environment variables
// win over the config file, which wins over struct defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("HOOP", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if path := findConfigFile(); path != "" {
		fromFile, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		cfg.fillFromFile(*fromFile)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func readFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// fillFromFile copies file values into fields the environment left at zero.
// Anything envconfig already populated, whether from a variable or a struct
// default, stays as is, so variables keep precedence over the file.
func (c *Config) fillFromFile(file Config) {
	pickDur := func(env, file time.Duration) time.Duration {
		if env == 0 {
			return file
		}
		return env
	}
	pickStr := func(env, file string) string {
		if env == "" {
			return file
		}
		return env
	}

	if c.Server.Port == 0 {
		c.Server.Port = file.Server.Port
	}
	c.Server.ReadTimeout = pickDur(c.Server.ReadTimeout, file.Server.ReadTimeout)
	c.Server.WriteTimeout = pickDur(c.Server.WriteTimeout, file.Server.WriteTimeout)
	c.Server.RequestTimeout = pickDur(c.Server.RequestTimeout, file.Server.RequestTimeout)
	c.Data.Dir = pickStr(c.Data.Dir, file.Data.Dir)
	c.Data.ReportsDir = pickStr(c.Data.ReportsDir, file.Data.ReportsDir)
	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = file.Security.AllowedOrigins
	}
	c.Logging.Level = pickStr(c.Logging.Level, file.Logging.Level)
	c.Logging.FilePath = pickStr(c.Logging.FilePath, file.Logging.FilePath)
	c.Telemetry.ServiceName = pickStr(c.Telemetry.ServiceName, file.Telemetry.ServiceName)
}

// validate rejects settings the server cannot run with and normalizes the
// logging block, which tolerates unknown values instead of failing startup.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data directory must be configured")
	}
	if len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("allowed origins must not be empty")
	}
	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive when enabled")
	}
	if r := c.Telemetry.SampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("telemetry sample ratio must be in [0,1]")
	}

	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeLogging() {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = DefaultLogLevel
	}

	// Structured output is always JSON.
	c.Logging.Format = DefaultLogFormat

	switch c.Logging.Output {
	case "both", "file", "console":
	default:
		c.Logging.Output = DefaultLogOutput
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}
}

// findConfigFile picks the config file for this run. HOOP_CONFIG wins;
// otherwise the first conventional location that exists is used. An empty
// result means environment variables only.
func findConfigFile() string {
	if path := os.Getenv("HOOP_CONFIG"); path != "" {
		return path
	}

	for _, candidate := range []string{"config.yaml", "configs/config.yaml", "../configs/config.yaml"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Default is the configuration the server runs with when nothing is
// overridden. Tests use it as a known-good baseline.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
		},
		Data: DataConfig{
			Dir:        DefaultDataDir,
			ReportsDir: DefaultReportsDir,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			Enabled:     true,
			ServiceName: "hoopsight",
			SampleRatio: 1.0,
		},
	}
}
