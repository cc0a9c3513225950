package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"hoopsight/internal/config"
	"hoopsight/internal/dataset"
	"hoopsight/internal/exporter"
	"hoopsight/internal/files"
	"hoopsight/internal/infrastructure"
	"hoopsight/internal/services"
	"hoopsight/internal/validation"
)

const workbookName = "hoopsight-dashboard.xlsx"

func main() {
	dataDir := flag.String("data", "data", "directory holding the dataset input files")
	outDir := flag.String("out", "data/reports", "directory the report files are written to")
	format := flag.String("format", "both", "output format: csv, xlsx or both")
	season := flag.Int("season", 0, "season for the team scoring view (0 selects the latest)")
	flag.Parse()

	if *format != "csv" && *format != "xlsx" && *format != "both" {
		slog.Error("Invalid format", "format", *format, "allowed", "csv, xlsx, both")
		os.Exit(1)
	}

	absData, err := filepath.Abs(*dataDir)
	if err != nil {
		slog.Error("Failed to resolve data directory", "error", err)
		os.Exit(1)
	}
	absOut, err := filepath.Abs(*outDir)
	if err != nil {
		slog.Error("Failed to resolve output directory", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger := infrastructure.ContextLogger(ctx)

	pre := validation.NewPreflight(logger)
	if err := pre.ValidateDataDir(absData); err != nil {
		slog.Error("Dataset validation failed", "error", err, "data_dir", absData)
		os.Exit(1)
	}

	if err := pre.EnsureOutputDir(absOut); err != nil {
		slog.Error("Output directory not usable", "error", err, "out_dir", absOut)
		os.Exit(1)
	}

	paths := &config.Paths{
		DataDir:    absData,
		ReportsDir: absOut,
	}

	start := time.Now()

	store := dataset.NewStore(dataset.NewLoader(absData, logger), logger)
	exportService := services.NewExportService(store, files.NewDiscovery(paths), nil, logger)

	tables, err := exportService.BuildAllTables(ctx, *season)
	if err != nil {
		slog.Error("Failed to build report tables", "error", err)
		os.Exit(1)
	}

	var written []string

	if *format == "csv" || *format == "both" {
		csvWriter := exporter.NewCSV(paths)
		for _, table := range tables {
			path, err := csvWriter.WriteTable(table)
			if err != nil {
				slog.Error("Failed to write CSV", "error", err, "view", string(table.View))
				os.Exit(1)
			}
			written = append(written, path)
		}
	}

	if *format == "xlsx" || *format == "both" {
		path, err := exporter.NewWorkbookWriter(paths).WriteWorkbook(workbookName, tables)
		if err != nil {
			slog.Error("Failed to write workbook", "error", err)
			os.Exit(1)
		}
		written = append(written, path)
	}

	for _, path := range written {
		slog.Info("Report written", "path", path)
	}
	slog.Info("Report generation complete",
		"files", len(written),
		"views", len(tables),
		"season", *season,
		"elapsed", time.Since(start).Round(time.Millisecond).String())
}
