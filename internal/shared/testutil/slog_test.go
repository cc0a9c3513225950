package testutil

import (
	"log/slog"
	"testing"
)

func TestLogCapture(t *testing.T) {
	t.Run("captures entries", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		if got := len(logs.Entries()); got != 2 {
			t.Errorf("expected 2 entries, got %d", got)
		}
		if !logs.ContainsMessage("test message") {
			t.Error("expected to find 'test message'")
		}
		if !logs.ContainsAttr("key", "value") {
			t.Error("expected to find attribute key=value")
		}
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		if got := len(logs.EntriesAt(slog.LevelInfo)); got != 1 {
			t.Errorf("expected 1 info entry, got %d", got)
		}
		if got := len(logs.EntriesAt(slog.LevelError)); got != 1 {
			t.Errorf("expected 1 error entry, got %d", got)
		}
	})

	t.Run("derived loggers share the store", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		scoped := logger.With(slog.String("component", "loader"))
		scoped.Info("scoped message")

		if !logs.ContainsMessage("scoped message") {
			t.Error("expected entry from derived logger")
		}
		if !logs.ContainsAttr("component", "loader") {
			t.Error("expected component attribute on derived entry")
		}
	})

	t.Run("reset drops entries", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		logger.Info("before reset")
		logs.Reset()

		if got := len(logs.Entries()); got != 0 {
			t.Errorf("expected empty capture, got %d entries", got)
		}
	})
}
