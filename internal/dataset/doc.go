// Package dataset loads the bundled historical NBA data and prepares it for
// aggregation. It owns the first two stages of the pipeline: binding the five
// flat files into typed records, and cleaning the stat columns the dashboard
// aggregates over.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Loader: reads the five input files (three of them zip archived) into raw records
// 2. Cleaner: coerces stat cells to numbers, parses MIN durations, drops unusable rows
// 3. Store: computes the cleaned snapshot once per process and shares it
//
// # Usage
//
// Typical startup wiring:
//
//	loader := dataset.NewLoader(cfg.DataDir, logger)
//	store := dataset.NewStore(loader, logger)
//	snap, err := store.Snapshot(ctx)
//	if err != nil {
//	    // missing file, missing archive member or missing column: fatal
//	}
//
// # Data Flow
//
// The flow through this package:
//
//	CSV / zip files → Loader → raw records → Cleaner → Snapshot → analytics
//
// # Error Handling
//
// Load errors are fatal startup errors and name the offending file. Per-cell
// problems are never errors: a cell that fails coercion becomes null and row
// elimination removes rows whose required stats are null. The snapshot keeps
// counts of everything that was dropped.
//
// # Concurrency
//
// The five files are independent and load concurrently. The snapshot is
// immutable once built, so any number of requests may read it without
// coordination.
package dataset
