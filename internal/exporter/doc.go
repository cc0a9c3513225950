// Package exporter turns dashboard views into downloadable artifacts.
//
// A Table is a tabular projection of an analytics view; headers reuse the
// column vocabulary of the source dataset so exports line up with the raw
// files. CSV persists tables as UTF-8 files with a BOM prefix for Excel
// compatibility, and WorkbookWriter bundles every view into a multi-sheet
// XLSX workbook with a styled, frozen header row.
//
//	table := exporter.SeasonTrendTable(points)
//	path, err := exporter.NewCSV(paths).WriteTable(table)
//
//	path, err = exporter.NewWorkbookWriter(paths).WriteWorkbook("hoopsight.xlsx", tables)
package exporter
