// Package services implements the business logic layer between the HTTP
// handlers and the dataset. Handlers stay thin; services own snapshot
// access, view computation, export rendering and the health probes.
//
// # Available Services
//
// The package provides three services:
//
//	- DashboardService: derived dashboard views over the cleaned snapshot
//	- ExportService: view downloads, report tables and report listings
//	- HealthService: liveness, readiness and version probes
//
// # Common Service Pattern
//
// Services take their dependencies and a *slog.Logger at construction and
// expose context-first methods:
//
//	svc := services.NewDashboardService(store, logger)
//	rows, err := svc.TeamScoring(ctx, 2022)
//
// Failures surface as sentinel errors from this package wrapped with
// detail; handlers translate them into API errors. An empty view is a
// valid result, never an error.
package services
