package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// Entry is one captured log record with its attributes flattened into a
// map for assertions.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// store is shared between a capture and everything derived from it with
// WithAttrs, so component-scoped loggers still land where the test looks.
type store struct {
	mu      sync.Mutex
	entries []Entry
	t       *testing.T
}

// LogCapture is a slog.Handler that records every log call made through
// it, at any level, so tests can assert on what was logged.
type LogCapture struct {
	store *store
	attrs []slog.Attr
}

// NewLogCapture creates a capture bound to the test, so recorded entries
// also show up in the test output.
func NewLogCapture(t *testing.T) *LogCapture {
	return &LogCapture{store: &store{t: t}}
}

// Handle implements slog.Handler.
func (c *LogCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(c.attrs))
	for _, a := range c.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	c.store.mu.Lock()
	c.store.entries = append(c.store.entries, Entry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	c.store.mu.Unlock()

	if c.store.t != nil {
		c.store.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// Enabled implements slog.Handler.
func (c *LogCapture) Enabled(context.Context, slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler.
func (c *LogCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(c.attrs)+len(attrs))
	merged = append(merged, c.attrs...)
	merged = append(merged, attrs...)
	return &LogCapture{store: c.store, attrs: merged}
}

// WithGroup implements slog.Handler. Groups are flattened for assertions.
func (c *LogCapture) WithGroup(string) slog.Handler {
	return c
}

// Entries returns a copy of everything captured so far.
func (c *LogCapture) Entries() []Entry {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	out := make([]Entry, len(c.store.entries))
	copy(out, c.store.entries)
	return out
}

// EntriesAt returns the captured entries at one level.
func (c *LogCapture) EntriesAt(level slog.Level) []Entry {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	var out []Entry
	for _, e := range c.store.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// ContainsMessage reports whether any entry's message contains the text.
func (c *LogCapture) ContainsMessage(message string) bool {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	for _, e := range c.store.entries {
		if strings.Contains(e.Message, message) {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any entry carries the attribute.
func (c *LogCapture) ContainsAttr(key string, value any) bool {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	for _, e := range c.store.entries {
		if v, ok := e.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Reset drops everything captured so far.
func (c *LogCapture) Reset() {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.entries = c.store.entries[:0]
}

// NewTestLogger creates a logger whose output the test can assert on.
func NewTestLogger(t *testing.T) (*slog.Logger, *LogCapture) {
	capture := NewLogCapture(t)
	return slog.New(capture), capture
}

// AssertMessage fails the test when no entry at the level contains the
// message, listing what was captured at that level instead.
func AssertMessage(t *testing.T, logs *LogCapture, level slog.Level, message string) {
	t.Helper()
	entries := logs.EntriesAt(level)
	for _, e := range entries {
		if strings.Contains(e.Message, message) {
			return
		}
	}
	t.Errorf("expected log message not found at level %s: %q", level, message)
	for _, e := range entries {
		t.Logf("  - %s", e.Message)
	}
}

// AssertNoErrors fails the test when anything was logged at error level.
func AssertNoErrors(t *testing.T, logs *LogCapture) {
	t.Helper()
	errs := logs.EntriesAt(slog.LevelError)
	if len(errs) == 0 {
		return
	}
	t.Errorf("unexpected error logs found:")
	for _, e := range errs {
		t.Errorf("  - %s: %v", e.Message, e.Attrs)
	}
}
