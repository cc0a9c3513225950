package errors

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"hoopsight/internal/infrastructure"
)

const (
	// maxCapturedBody bounds how much of a request body is buffered for
	// error logging.
	maxCapturedBody = 1 << 20
	// maxLoggedBody bounds how much of a captured body ends up in a log
	// record.
	maxLoggedBody = 500
)

// sensitiveKeys are JSON field names redacted before a request body is
// logged.
var sensitiveKeys = []string{"password", "token", "secret", "api_key", "apiKey"}

// AccessLogger logs every API request once, at a level derived from the
// response status, and converts panics into problem responses. Failed
// requests additionally log their query string and redacted body.
type AccessLogger struct {
	problems *ErrorHandler
	logger   *slog.Logger
}

func NewAccessLogger(problems *ErrorHandler, logger *slog.Logger) *AccessLogger {
	return &AccessLogger{
		problems: problems,
		logger:   logger.With(slog.String("component", "access_log")),
	}
}

// Handler is the middleware entry point.
func (al *AccessLogger) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		// Buffer small bodies so they can be logged if the request fails.
		var body []byte
		if r.Body != nil && r.ContentLength > 0 && r.ContentLength < maxCapturedBody {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		begin := time.Now()

		defer func() {
			if rec := recover(); rec != nil {
				al.problems.HandlePanic(ww, r, rec)
			}
		}()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(begin)),
			slog.Int("bytes", ww.BytesWritten()),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
			slog.String("request_id", infrastructure.TraceID(r.Context())),
		}
		if r.URL.RawQuery != "" {
			attrs = append(attrs, slog.String("query", r.URL.RawQuery))
		}
		if status >= 400 && len(body) > 0 {
			logged := redactBody(string(body))
			if len(logged) > maxLoggedBody {
				logged = logged[:maxLoggedBody] + "..."
			}
			attrs = append(attrs, slog.String("request_body", logged))
		}

		al.logger.LogAttrs(r.Context(), levelFor(status), "http request", attrs...)
	})
}

// levelFor maps a response status to a log level. Client errors warn,
// server errors error, everything else stays at info.
func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// redactBody blanks credential-shaped fields in a JSON body. Non-JSON
// bodies pass through untouched.
func redactBody(body string) string {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return body
	}

	for _, key := range sensitiveKeys {
		if _, ok := fields[key]; ok {
			fields[key] = "[REDACTED]"
		}
	}

	out, _ := json.Marshal(fields)
	return string(out)
}

// Recovery is a lighter alternative to AccessLogger for routes that need
// panic recovery without request logging.
func Recovery(problems *ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					problems.HandlePanic(w, r, rec)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
