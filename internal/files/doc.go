// Package files locates the fixed dataset inputs and enumerates the report
// files the exporter has written.
//
// Discovery is anchored on config.Paths, so every lookup resolves against
// the same directories the rest of the application uses. DatasetInputs
// reports which of the five input files are present; ListReportFiles returns
// the generated CSV and Excel reports, newest first, for the reports
// endpoint and the report CLI.
package files
