package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"hoopsight/internal/config"
)

// The process-wide logger. Installed once by SetupLogging; components
// receive it through dependency injection, or through ContextLogger when
// nothing was passed down.
var (
	defaultLogger *slog.Logger
	loggerOnce    sync.Once

	logFileMu sync.Mutex
	logFile   *os.File
)

type contextKey string

// traceIDKey carries the request trace ID through a context.
const traceIDKey contextKey = "trace_id"

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// SetupLogging builds the global slog logger from cfg and installs it
// as the slog default. Repeated calls return the logger from the first
// call. Output is always JSON so log lines stay machine-parseable.
func SetupLogging(cfg config.LoggingConfig) (*slog.Logger, error) {
	var err error
	loggerOnce.Do(func() {
		defaultLogger, err = newLogger(cfg)
		if defaultLogger != nil {
			slog.SetDefault(defaultLogger)
		}
	})
	return defaultLogger, err
}

// activeLogger is the installed logger, or the slog default before
// SetupLogging has run.
func activeLogger() *slog.Logger {
	if defaultLogger == nil {
		return slog.Default()
	}
	return defaultLogger
}

func newLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var out io.Writer = os.Stdout
	if mode := strings.ToLower(cfg.Output); mode == "file" || mode == "both" {
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		logFile = file
		if mode == "file" {
			out = file
		} else {
			out = io.MultiWriter(os.Stdout, file)
		}
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		AddSource: true,
		Level:     levelFor(cfg.Level),
	})
	return slog.New(&tracingHandler{Handler: handler}), nil
}

// levelFor maps a config string to a slog.Level. Unknown values mean info.
func levelFor(level string) slog.Level {
	if l, ok := logLevels[strings.ToLower(level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// tracingHandler stamps every record with the trace_id found in its
// context, so handlers never have to attach it by hand.
type tracingHandler struct {
	slog.Handler
}

func (t *tracingHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := TraceID(ctx); id != "" {
		r.AddAttrs(slog.String("trace_id", id))
	}
	return t.Handler.Handle(ctx, r)
}

func (t *tracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &tracingHandler{Handler: t.Handler.WithAttrs(attrs)}
}

func (t *tracingHandler) WithGroup(name string) slog.Handler {
	return &tracingHandler{Handler: t.Handler.WithGroup(name)}
}

// WithTraceID stores a trace ID in ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID returns the trace ID stored in ctx. When none was stored it
// falls back to the active span, so work running under a span outside the
// HTTP stack still correlates.
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return SpanTraceID(ctx)
}

// NewTraceID returns a fresh UUIDv4 trace ID. All request and job IDs in
// the process come from here.
func NewTraceID() string {
	return uuid.New().String()
}

// EnsureTraceID returns ctx unchanged when it already carries a trace ID,
// otherwise it attaches a generated one. Entry points outside the HTTP
// stack use it so their logs stay correlatable.
func EnsureTraceID(ctx context.Context) context.Context {
	if TraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, NewTraceID())
}

// ContextLogger returns the global logger, tagged with the trace ID from
// ctx when one is present.
func ContextLogger(ctx context.Context) *slog.Logger {
	logger := activeLogger()
	if id := TraceID(ctx); id != "" {
		return logger.With(slog.String("trace_id", id))
	}
	return logger
}

// CloseLogFile closes the log file if one is open. Called on graceful
// shutdown, and by tests that want to read what was written.
func CloseLogFile() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ResetLogging clears the global logger so each test can install its own.
// Never call it outside tests.
func ResetLogging() {
	CloseLogFile()
	defaultLogger = nil
	loggerOnce = sync.Once{}
}

func openLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", dir, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
