package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"hoopsight/internal/infrastructure"
)

// Tracing opens a server span per request and feeds the HTTP metrics.
type Tracing struct {
	tracer  trace.Tracer
	metrics *infrastructure.AppMetrics
	logger  *slog.Logger
}

// NewTracing wires the middleware to the shared providers. The metrics
// instance is shared with the rest of the application so instruments are
// created once.
func NewTracing(telemetry *infrastructure.Telemetry, metrics *infrastructure.AppMetrics) *Tracing {
	return &Tracing{
		tracer:  telemetry.Tracer,
		metrics: metrics,
		logger:  telemetry.Logger,
	}
}

// Handler wraps next in a server span. The span's trace ID is placed on
// the request context so every log line downstream correlates with it.
func (tr *Tracing) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := tr.tracer.Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(requestAttrs(r)...),
		)
		defer span.End()

		traceID := span.SpanContext().TraceID().String()
		r = r.WithContext(infrastructure.WithTraceID(ctx, traceID))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		if tr.metrics != nil {
			tr.metrics.HTTPActiveRequests.Add(ctx, 1)
			defer tr.metrics.HTTPActiveRequests.Add(ctx, -1)
		}

		begin := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(begin)

		route := routePattern(r)
		infrastructure.RecordHTTPRequest(ctx, tr.metrics, r.Method, route, ww.Status(), elapsed)
		if tr.metrics != nil && ww.Status() >= 500 {
			tr.metrics.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(
				attribute.String("component", "http"),
				attribute.String("http.route", route),
			))
		}

		span.SetAttributes(
			semconv.HTTPResponseStatusCodeKey.Int(ww.Status()),
			semconv.HTTPResponseBodySizeKey.Int64(int64(ww.BytesWritten())),
		)
		if ww.Status() >= 400 {
			span.SetStatus(codes.Error, http.StatusText(ww.Status()))
		}

		// Request-level Info logging belongs to the logging middleware;
		// this line exists for trace/span debugging only.
		tr.logger.DebugContext(ctx, "span completed",
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", elapsed),
			slog.String("trace_id", traceID),
		)
	})
}

// requestAttrs builds the span attributes known before the handler runs.
func requestAttrs(r *http.Request) []attribute.KeyValue {
	return []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(r.URL.Path),
		semconv.URLSchemeKey.String(r.URL.Scheme),
		semconv.ServerAddressKey.String(r.Host),
		semconv.UserAgentOriginalKey.String(r.UserAgent()),
		semconv.HTTPRequestBodySizeKey.Int64(r.ContentLength),
		semconv.ClientAddressKey.String(clientIP(r)),
	}
}

// routePattern reports the chi route pattern when one matched, so metrics
// aggregate by route instead of by raw URL.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// clientIP reports the client address, preferring proxy headers over the
// socket peer.
func clientIP(r *http.Request) string {
	for _, header := range []string{"X-Forwarded-For", "X-Real-IP"} {
		if ip := r.Header.Get(header); ip != "" {
			return ip
		}
	}
	return r.RemoteAddr
}
