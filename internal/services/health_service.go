package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"hoopsight/internal/dataset"
	"hoopsight/internal/files"
	"hoopsight/internal/infrastructure"
	"hoopsight/pkg/contracts"
)

// HealthStatus is the envelope the health endpoints return.
type HealthStatus struct {
	Status    string                      `json:"status"`
	Timestamp time.Time                   `json:"timestamp"`
	Version   string                      `json:"version"`
	Runtime   map[string]interface{}      `json:"runtime,omitempty"`
	Services  map[string]DependencyHealth `json:"services,omitempty"`
}

// DependencyHealth reports one dependency's readiness.
type DependencyHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthService answers the liveness, readiness and version probes. The
// only hard dependency for readiness is the dataset snapshot; the input
// file check is informational.
type HealthService struct {
	store     *dataset.Store
	discovery *files.Discovery
	collector *infrastructure.RuntimeCollector
	started   time.Time
	logger    *slog.Logger
}

// NewHealthService creates a health service. The collector may be nil, in
// which case liveness falls back to a direct runtime read.
func NewHealthService(store *dataset.Store, discovery *files.Discovery, collector *infrastructure.RuntimeCollector, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		store:     store,
		discovery: discovery,
		collector: collector,
		started:   time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	}
}

// ReadinessCheck reports whether the server can answer dashboard requests.
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	probe := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services: map[string]DependencyHealth{
			"dataset": s.datasetHealth(ctx),
			"inputs":  s.inputsHealth(),
		},
	}

	for _, dep := range probe.Services {
		if dep.Status != "ready" {
			probe.Status = "not_ready"
			break
		}
	}
	return probe
}

// LivenessCheck reports process vitals.
func (s *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	probe := HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	}
	if s.collector != nil {
		if stats := s.collector.CurrentStats(ctx); stats != nil {
			probe.Runtime = stats.Fields()
			return probe
		}
	}
	probe.Runtime = map[string]interface{}{
		"go_version":     runtime.Version(),
		"goroutines":     runtime.NumGoroutine(),
		"uptime_seconds": time.Since(s.started).Seconds(),
	}
	return probe
}

// Version returns version and build information.
func (s *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	payload := map[string]interface{}{
		"version":      info.Version,
		"api_version":  info.APIVersion,
		"data_format":  info.DataFormat,
		"go_version":   info.GoVersion,
		"os":           info.OS,
		"arch":         info.Arch,
		"uptime":       time.Since(s.started).Seconds(),
		"start_time":   s.started.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
	if info.BuildTime != "unknown" {
		payload["build_time"] = info.BuildTime
	}
	if info.GitCommit != "unknown" {
		payload["git_commit"] = info.GitCommit
	}
	return payload
}

// datasetHealth reads the memoized snapshot state without forcing a load.
// Before the startup warmup finishes the dataset reads as not ready.
func (s *HealthService) datasetHealth(ctx context.Context) DependencyHealth {
	if !s.store.Loaded() {
		return DependencyHealth{
			Status:  "not_ready",
			Message: "dataset snapshot not loaded",
		}
	}
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return DependencyHealth{Status: "not_ready", Message: err.Error()}
	}
	sum := snap.Summary()
	return DependencyHealth{
		Status: "ready",
		Message: fmt.Sprintf("%d games and %d box score lines, seasons %d to %d",
			sum.Games, sum.PlayerLines, sum.FirstSeason, sum.LastSeason),
	}
}

// inputsHealth stats the dataset input files. Inputs can only go missing
// if someone deletes them after startup, so this mostly confirms the data
// directory is still mounted.
func (s *HealthService) inputsHealth() DependencyHealth {
	want := len(files.DatasetInputNames())
	found := len(s.discovery.DatasetInputs())
	if found < want {
		return DependencyHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("%d of %d dataset input files present", found, want),
		}
	}
	return DependencyHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d dataset input files present", found),
	}
}
