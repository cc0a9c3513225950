package infrastructure

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"hoopsight/internal/config"
)

const (
	ServiceName    = "hoopsight"
	ServiceVersion = "1.2.0"
)

// TelemetryOptions controls how tracing and metrics are wired at startup.
type TelemetryOptions struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout" or "none"
	MetricExporter string // "prometheus" or "none"
	Tracing        bool
	Metrics        bool
	SampleRatio    float64
}

// Telemetry bundles what the application keeps of the telemetry stack:
// the SDK providers for shutdown, the tracer and meter for instrumentation,
// and the Prometheus scrape handler.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PromHandler    http.Handler
	Logger         *slog.Logger
}

// DefaultTelemetryOptions returns the stock wiring: spans sampled at 100%
// without an exporter, metrics through Prometheus.
func DefaultTelemetryOptions() *TelemetryOptions {
	return &TelemetryOptions{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    cmp.Or(os.Getenv("ENVIRONMENT"), "development"),
		TraceExporter:  "none",
		MetricExporter: "prometheus",
		Tracing:        true,
		Metrics:        true,
		SampleRatio:    1.0,
	}
}

// TelemetryOptionsFromConfig applies the application telemetry settings on
// top of the defaults. Spans are always created so trace IDs flow into
// logs; the stdout exporter is opt-in because its pretty-printed output
// drowns the console.
func TelemetryOptionsFromConfig(cfg config.TelemetryConfig) *TelemetryOptions {
	opts := DefaultTelemetryOptions()
	if cfg.ServiceName != "" {
		opts.ServiceName = cfg.ServiceName
	}
	if cfg.TraceStdout {
		opts.TraceExporter = "stdout"
	}
	opts.SampleRatio = cfg.SampleRatio
	return opts
}

// NewTelemetry stands up tracing and metrics per opts and installs the
// providers globally. Nil opts get the defaults.
func NewTelemetry(opts *TelemetryOptions, logger *slog.Logger) (*Telemetry, error) {
	if opts == nil {
		opts = DefaultTelemetryOptions()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "initializing telemetry",
		slog.String("service", opts.ServiceName),
		slog.String("version", opts.ServiceVersion),
		slog.String("environment", opts.Environment))

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(opts.ServiceName),
		semconv.ServiceVersion(opts.ServiceVersion),
		semconv.DeploymentEnvironmentName(opts.Environment),
		attribute.String("service.instance.id", instanceID()),
	)

	tel := &Telemetry{Logger: logger}

	if opts.Tracing {
		tpOpts := []sdktrace.TracerProviderOption{
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(opts.SampleRatio)),
		}

		switch opts.TraceExporter {
		case "stdout":
			exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
			if err != nil {
				return nil, fmt.Errorf("create trace exporter: %w", err)
			}
			tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
		case "none":
			// Spans still carry IDs for log correlation, they just go
			// nowhere.
		default:
			return nil, fmt.Errorf("unsupported trace exporter: %q", opts.TraceExporter)
		}

		tp := sdktrace.NewTracerProvider(tpOpts...)
		tel.TracerProvider = tp
		tel.Tracer = tp.Tracer(ServiceName, trace.WithInstrumentationVersion(opts.ServiceVersion))
		otel.SetTracerProvider(tp)

		logger.InfoContext(ctx, "tracing ready",
			slog.String("exporter", opts.TraceExporter),
			slog.Float64("sample_ratio", opts.SampleRatio))
	}

	if opts.Metrics {
		switch opts.MetricExporter {
		case "prometheus":
			// A private registry keeps repeated initializations, as in
			// tests, from colliding on the process-wide default.
			registry := prometheus.NewRegistry()
			exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
			if err != nil {
				return nil, fmt.Errorf("create prometheus exporter: %w", err)
			}

			mp := sdkmetric.NewMeterProvider(
				sdkmetric.WithResource(res),
				sdkmetric.WithReader(exporter),
			)
			tel.MeterProvider = mp
			tel.Meter = mp.Meter(ServiceName, metric.WithInstrumentationVersion(opts.ServiceVersion))
			tel.PromHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
			otel.SetMeterProvider(mp)

			logger.InfoContext(ctx, "metrics ready",
				slog.String("exporter", opts.MetricExporter))
		case "none":
		default:
			return nil, fmt.Errorf("unsupported metric exporter: %q", opts.MetricExporter)
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.InfoContext(ctx, "telemetry ready",
		slog.Bool("tracing", opts.Tracing),
		slog.Bool("metrics", opts.Metrics))

	return tel, nil
}

// AppMetrics holds the application-level instruments. All of them are
// recorded through the package helpers, which tolerate a nil receiver so
// callers never have to branch on whether metrics are enabled.
type AppMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	DatasetLoadsTotal   metric.Int64Counter
	DatasetLoadDuration metric.Float64Histogram
	DatasetRowsLoaded   metric.Int64Counter
	DatasetRowsDropped  metric.Int64Counter

	ExportsTotal   metric.Int64Counter
	ExportDuration metric.Float64Histogram

	ErrorsTotal metric.Int64Counter
}

// NewAppMetrics registers the application instruments on meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	m := &AppMetrics{}
	var err error

	m.HTTPRequestsTotal, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests"))
	keep(err)

	m.HTTPRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request latency in seconds"),
		metric.WithUnit("s"))
	keep(err)

	m.HTTPActiveRequests, err = meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("Number of active HTTP requests"))
	keep(err)

	m.DatasetLoadsTotal, err = meter.Int64Counter("dataset_loads_total",
		metric.WithDescription("Total number of dataset snapshot loads"))
	keep(err)

	m.DatasetLoadDuration, err = meter.Float64Histogram("dataset_load_duration_seconds",
		metric.WithDescription("Dataset snapshot load duration in seconds"),
		metric.WithUnit("s"))
	keep(err)

	m.DatasetRowsLoaded, err = meter.Int64Counter("dataset_rows_loaded_total",
		metric.WithDescription("Total number of rows loaded per dataset table"))
	keep(err)

	m.DatasetRowsDropped, err = meter.Int64Counter("dataset_rows_dropped_total",
		metric.WithDescription("Total number of rows dropped during cleaning"))
	keep(err)

	m.ExportsTotal, err = meter.Int64Counter("exports_total",
		metric.WithDescription("Total number of report exports"))
	keep(err)

	m.ExportDuration, err = meter.Float64Histogram("export_duration_seconds",
		metric.WithDescription("Report export duration in seconds"),
		metric.WithUnit("s"))
	keep(err)

	m.ErrorsTotal, err = meter.Int64Counter("system_errors_total",
		metric.WithDescription("Total number of system errors"))
	keep(err)

	if firstErr != nil {
		return nil, firstErr
	}
	return m, nil
}

// Shutdown flushes and stops both providers. errors.Join drops the nil
// results, so disabled subsystems cost nothing here.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("telemetry shutdown: %w", err)
	}

	t.Logger.InfoContext(ctx, "telemetry shutdown complete")
	return nil
}

// instanceID distinguishes processes sharing a host in the resource
// attributes.
func instanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}

// SpanTraceID returns the active span's trace ID, or "" when no valid
// span is present.
func SpanTraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}

// attrsFromMap converts a loose attribute map to typed OTel attributes.
// Unknown value types are stringified rather than dropped.
func attrsFromMap(attributes map[string]interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		attrs = append(attrs, toAttr(key, value))
	}
	return attrs
}

func toAttr(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}

// SpanEvent attaches a named event to the active span. No-op when the
// span is not recording.
func SpanEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrsFromMap(attributes)...))
}

// SpanAttrs sets attributes on the active span. No-op when the span is
// not recording.
func SpanAttrs(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attrsFromMap(attributes)...)
}

// SpanError marks the active span as failed and records err on it.
func SpanError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// RecordHTTPRequest records one served request on the HTTP instruments.
func RecordHTTPRequest(ctx context.Context, metrics *AppMetrics, method, route string, status int, duration time.Duration) {
	if metrics == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	}

	metrics.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.HTTPRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordDatasetLoad records one dataset snapshot load, tagged by outcome.
func RecordDatasetLoad(ctx context.Context, metrics *AppMetrics, duration time.Duration, err error) {
	if metrics == nil {
		return
	}

	outcome := attribute.String("status", "success")
	if err != nil {
		outcome = attribute.String("status", "failure")
	}

	metrics.DatasetLoadsTotal.Add(ctx, 1, metric.WithAttributes(outcome))
	metrics.DatasetLoadDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(outcome))

	SpanEvent(ctx, "dataset.load_recorded", map[string]interface{}{
		"success":          err == nil,
		"duration_seconds": duration.Seconds(),
	})
}

// RecordDatasetRows records loaded and dropped row counts for one dataset
// table.
func RecordDatasetRows(ctx context.Context, metrics *AppMetrics, table string, loaded, dropped int64) {
	if metrics == nil {
		return
	}

	tableAttr := attribute.String("table", table)

	metrics.DatasetRowsLoaded.Add(ctx, loaded, metric.WithAttributes(tableAttr))
	if dropped > 0 {
		metrics.DatasetRowsDropped.Add(ctx, dropped, metric.WithAttributes(
			tableAttr,
			attribute.String("reason", "null_required_column"),
		))
	}
}

// RecordExportMetrics records one report export, tagged by view, format
// and outcome.
func RecordExportMetrics(ctx context.Context, metrics *AppMetrics, view, format string, duration time.Duration, err error) {
	if metrics == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("view", view),
		attribute.String("format", format),
	}

	outcome := attribute.String("status", "success")
	if err != nil {
		outcome = attribute.String("status", "failure")
	}

	metrics.ExportsTotal.Add(ctx, 1, metric.WithAttributes(append(attrs, outcome)...))
	metrics.ExportDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
