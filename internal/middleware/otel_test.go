package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoopsight/internal/infrastructure"
)

func newTestOTel(t *testing.T) (*infrastructure.Telemetry, *infrastructure.AppMetrics) {
	t.Helper()

	cfg := infrastructure.DefaultTelemetryOptions()
	cfg.TraceExporter = "none"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	providers, err := infrastructure.NewTelemetry(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { providers.Shutdown(context.Background()) })

	metrics, err := infrastructure.NewAppMetrics(providers.Meter)
	require.NoError(t, err)

	return providers, metrics
}

func TestTracingHandler(t *testing.T) {
	providers, metrics := newTestOTel(t)
	tracing := NewTracing(providers, metrics)

	var handlerTraceID string

	r := chi.NewRouter()
	r.Use(tracing.Handler)
	r.Get("/api/dashboard/{view}", func(w http.ResponseWriter, r *http.Request) {
		handlerTraceID = infrastructure.TraceID(r.Context())
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"success"}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/season-trend", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, handlerTraceID, "handler should see a trace ID from the span")
}

func TestTracingServerError(t *testing.T) {
	providers, metrics := newTestOTel(t)
	tracing := NewTracing(providers, metrics)

	r := chi.NewRouter()
	r.Use(tracing.Handler)
	r.Get("/api/fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "broken", http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/fail", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTracingNilMetrics(t *testing.T) {
	providers, _ := newTestOTel(t)
	tracing := NewTracing(providers, nil)

	handler := tracing.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{
			name:     "x-forwarded-for wins",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.2"},
			remote:   "192.0.2.1:1234",
			expected: "203.0.113.7",
		},
		{
			name:     "x-real-ip fallback",
			headers:  map[string]string{"X-Real-IP": "198.51.100.2"},
			remote:   "192.0.2.1:1234",
			expected: "198.51.100.2",
		},
		{
			name:     "remote addr fallback",
			headers:  nil,
			remote:   "192.0.2.1:1234",
			expected: "192.0.2.1:1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.expected, clientIP(req))
		})
	}
}
