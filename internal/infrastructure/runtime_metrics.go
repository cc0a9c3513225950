package infrastructure

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics records Go runtime and process health as OTel gauges.
type RuntimeMetrics struct {
	goroutines metric.Int64Gauge
	heapInUse  metric.Int64Gauge
	heapTotal  metric.Int64Gauge
	sysMemory  metric.Int64Gauge
	gcPause    metric.Float64Histogram

	cpuCount metric.Int64Gauge
	uptime   metric.Float64Gauge
}

// NewRuntimeMetrics registers the runtime instruments on meter.
func NewRuntimeMetrics(meter metric.Meter) (*RuntimeMetrics, error) {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	rm := &RuntimeMetrics{}
	var err error

	rm.goroutines, err = meter.Int64Gauge("system_goroutines",
		metric.WithDescription("Active goroutine count"))
	keep(err)

	rm.heapInUse, err = meter.Int64Gauge("system_memory_usage_bytes",
		metric.WithDescription("Live heap bytes in use"),
		metric.WithUnit("By"))
	keep(err)

	rm.heapTotal, err = meter.Int64Gauge("system_memory_allocated_bytes",
		metric.WithDescription("Cumulative bytes allocated by the runtime"),
		metric.WithUnit("By"))
	keep(err)

	rm.sysMemory, err = meter.Int64Gauge("system_memory_system_bytes",
		metric.WithDescription("Total bytes of memory obtained from the OS"),
		metric.WithUnit("By"))
	keep(err)

	rm.gcPause, err = meter.Float64Histogram("system_gc_pause_seconds",
		metric.WithDescription("GC stop-the-world pause durations"),
		metric.WithUnit("s"))
	keep(err)

	rm.cpuCount, err = meter.Int64Gauge("system_cpu_count",
		metric.WithDescription("Logical CPU count"))
	keep(err)

	rm.uptime, err = meter.Float64Gauge("system_process_uptime_seconds",
		metric.WithDescription("Seconds since process start"),
		metric.WithUnit("s"))
	keep(err)

	if firstErr != nil {
		return nil, firstErr
	}
	return rm, nil
}

// RuntimeStats is one sample of the process's resource usage.
type RuntimeStats struct {
	SampledAt  time.Time
	Uptime     time.Duration
	Goroutines int64
	CPUs       int

	HeapInUse int64
	HeapTotal int64
	SysMemory int64
	GCRuns    uint32
	GCPause   time.Duration
}

// Collect samples the runtime, records the sample on the instruments and
// returns it.
func (rm *RuntimeMetrics) Collect(ctx context.Context, startTime time.Time) *RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	sample := &RuntimeStats{
		SampledAt:  time.Now(),
		Uptime:     time.Since(startTime),
		Goroutines: int64(runtime.NumGoroutine()),
		CPUs:       runtime.NumCPU(),
		HeapInUse:  int64(mem.Alloc),
		HeapTotal:  int64(mem.TotalAlloc),
		SysMemory:  int64(mem.Sys),
		GCRuns:     mem.NumGC,
		GCPause:    time.Duration(mem.PauseNs[(mem.NumGC+255)%256]),
	}

	rm.goroutines.Record(ctx, sample.Goroutines)
	rm.heapInUse.Record(ctx, sample.HeapInUse)
	rm.heapTotal.Record(ctx, sample.HeapTotal)
	rm.sysMemory.Record(ctx, sample.SysMemory)
	rm.cpuCount.Record(ctx, int64(sample.CPUs))
	rm.uptime.Record(ctx, sample.Uptime.Seconds())

	// PauseNs is a ring buffer; a zero entry means no GC has run yet.
	if sample.GCPause > 0 {
		rm.gcPause.Record(ctx, sample.GCPause.Seconds())
	}

	return sample
}

// Fields renders the sample as the flat map the liveness endpoint embeds
// in its response.
func (s *RuntimeStats) Fields() map[string]interface{} {
	return map[string]interface{}{
		"go_version":       runtime.Version(),
		"goroutines":       s.Goroutines,
		"cpu_count":        s.CPUs,
		"memory_usage_mb":  s.HeapInUse / 1024 / 1024,
		"memory_alloc_mb":  s.HeapTotal / 1024 / 1024,
		"memory_system_mb": s.SysMemory / 1024 / 1024,
		"gc_count":         s.GCRuns,
		"last_gc_pause_ms": s.GCPause.Milliseconds(),
		"uptime_seconds":   s.Uptime.Seconds(),
		"sampled_at":       s.SampledAt.Format(time.RFC3339),
	}
}

// RuntimeCollector samples the runtime on a fixed interval until stopped
// or its context is cancelled.
type RuntimeCollector struct {
	metrics *RuntimeMetrics
	started time.Time
	period  time.Duration
	quit    chan struct{}
	once    sync.Once
}

func NewRuntimeCollector(meter metric.Meter, period time.Duration) (*RuntimeCollector, error) {
	metrics, err := NewRuntimeMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("register runtime instruments: %w", err)
	}

	return &RuntimeCollector{
		metrics: metrics,
		started: time.Now(),
		period:  period,
		quit:    make(chan struct{}),
	}, nil
}

// Start blocks, collecting one sample immediately and then one per
// period. Callers run it in a goroutine.
func (rc *RuntimeCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(rc.period)
	defer ticker.Stop()

	rc.metrics.Collect(ctx, rc.started)

	for {
		select {
		case <-ticker.C:
			rc.metrics.Collect(ctx, rc.started)
		case <-rc.quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends collection. Safe to call more than once.
func (rc *RuntimeCollector) Stop() {
	rc.once.Do(func() { close(rc.quit) })
}

// CurrentStats takes a fresh sample on demand.
func (rc *RuntimeCollector) CurrentStats(ctx context.Context) *RuntimeStats {
	return rc.metrics.Collect(ctx, rc.started)
}
