package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"hoopsight/internal/analytics"
	"hoopsight/internal/dataset"
	"hoopsight/internal/exporter"
	"hoopsight/internal/files"
	"hoopsight/internal/infrastructure"
)

// Export formats understood by the export endpoint and the report command.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Export is a fully rendered download: the payload plus the metadata the
// HTTP layer needs to serve it.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService turns dashboard views into downloadable artifacts. Downloads
// render in memory so every failure surfaces before the first response byte;
// the views are small aggregates, never the raw dataset.
type ExportService struct {
	store     *dataset.Store
	discovery *files.Discovery
	metrics   *infrastructure.AppMetrics
	logger    *slog.Logger
}

// NewExportService creates an export service. The metrics handle may be nil,
// in which case exports go unrecorded.
func NewExportService(store *dataset.Store, discovery *files.Discovery, metrics *infrastructure.AppMetrics, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{
		store:     store,
		discovery: discovery,
		metrics:   metrics,
		logger:    logger.With(slog.String("component", "export_service")),
	}
}

// BuildTable computes the export table for a single view. Season only
// affects the team scoring view; a non-positive season selects the latest
// one present.
func (s *ExportService) BuildTable(ctx context.Context, view exporter.View, season int) (exporter.Table, error) {
	if !view.Valid() {
		return exporter.Table{}, fmt.Errorf("%w %q", ErrUnknownView, string(view))
	}
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return exporter.Table{}, fmt.Errorf("%w: %v", ErrDatasetNotLoaded, err)
	}
	return buildTable(snap, view, season), nil
}

// BuildAllTables computes every dashboard view in workbook sheet order.
func (s *ExportService) BuildAllTables(ctx context.Context, season int) ([]exporter.Table, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetNotLoaded, err)
	}
	views := exporter.Views()
	tables := make([]exporter.Table, 0, len(views))
	for _, view := range views {
		tables = append(tables, buildTable(snap, view, season))
	}
	return tables, nil
}

// ExportView renders one view as a download in the requested format.
func (s *ExportService) ExportView(ctx context.Context, view exporter.View, format string, season int) (*Export, error) {
	start := time.Now()
	export, err := s.exportView(ctx, view, format, season)
	infrastructure.RecordExportMetrics(ctx, s.metrics, string(view), format, time.Since(start), err)
	if err != nil {
		infrastructure.SpanError(ctx, err)
		return nil, err
	}

	infrastructure.SpanEvent(ctx, "export.rendered", map[string]interface{}{
		"view":   string(view),
		"format": format,
		"bytes":  len(export.Data),
	})
	s.logger.InfoContext(ctx, "view exported",
		slog.String("view", string(view)),
		slog.String("format", format),
		slog.Int("bytes", len(export.Data)))
	return export, nil
}

func (s *ExportService) exportView(ctx context.Context, view exporter.View, format string, season int) (*Export, error) {
	table, err := s.BuildTable(ctx, view, season)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		err = exporter.EncodeCSV(&buf, table)
	case FormatXLSX:
		err = exporter.EncodeWorkbook(&buf, []exporter.Table{table})
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s as %s: %w", view, format, err)
	}

	return &Export{
		Filename:    table.Filename(format),
		ContentType: contentTypeFor(format),
		Data:        buf.Bytes(),
	}, nil
}

// ListReports returns the report files currently on disk, newest first. An
// empty reports directory is a normal state, not an error.
func (s *ExportService) ListReports(ctx context.Context) ([]files.Entry, error) {
	reports, err := s.discovery.ListReportFiles()
	if err != nil {
		return nil, fmt.Errorf("listing report files: %w", err)
	}
	if latest, ok := files.Latest(reports); ok {
		s.logger.DebugContext(ctx, "report files listed",
			slog.Int("count", len(reports)),
			slog.String("latest", latest.Name))
	} else {
		s.logger.DebugContext(ctx, "report files listed", slog.Int("count", 0))
	}
	return reports, nil
}

func contentTypeFor(format string) string {
	if format == FormatXLSX {
		return contentTypeXLSX
	}
	return contentTypeCSV
}

func buildTable(snap *dataset.Snapshot, view exporter.View, season int) exporter.Table {
	switch view {
	case exporter.ViewSeasonTrend:
		return exporter.SeasonTrendTable(analytics.SeasonTrend(snap.Games))
	case exporter.ViewTeamScoring:
		season = defaultSeason(snap, season)
		return exporter.TeamScoringTable(analytics.TeamScoring(snap.Games, snap.Teams, season))
	case exporter.ViewPlayerAverages:
		return exporter.PlayerAveragesTable(analytics.PlayerAverages(snap.Lines, snap.Players))
	case exporter.ViewHomeAway:
		return exporter.HomeAwayTable(analytics.HomeAwaySplit(snap.Games))
	case exporter.ViewConferenceTrend:
		return exporter.ConferenceTrendTable(analytics.ConferenceTrend(snap.Games, snap.Standings))
	case exporter.ViewLeaderboard:
		return exporter.LeaderboardTable(analytics.Leaderboard(snap.Standings))
	}
	return exporter.Table{}
}
