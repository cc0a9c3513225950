package http

import (
	"context"

	"hoopsight/internal/exporter"
	"hoopsight/internal/files"
	"hoopsight/internal/services"
)

// ExportServiceInterface defines the export operations the export handler
// depends on.
type ExportServiceInterface interface {
	ExportView(ctx context.Context, view exporter.View, format string, season int) (*services.Export, error)
	ListReports(ctx context.Context) ([]files.Entry, error)
}
