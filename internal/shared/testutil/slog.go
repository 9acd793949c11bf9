// Package testutil provides test helpers shared across packages.
package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecord is a captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type recordStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// BufferedSlogHandler captures log records so tests can assert on them.
// Handlers derived via WithAttrs share the same record store, so a
// component-scoped child logger still reports into the parent buffer.
type BufferedSlogHandler struct {
	store *recordStore
	attrs []slog.Attr
}

// NewBufferedLogger returns a logger writing into the returned handler.
func NewBufferedLogger() (*slog.Logger, *BufferedSlogHandler) {
	h := &BufferedSlogHandler{store: &recordStore{}}
	return slog.New(h), h
}

// Enabled implements slog.Handler
func (h *BufferedSlogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (h *BufferedSlogHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = append(h.store.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// WithAttrs implements slog.Handler
func (h *BufferedSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &BufferedSlogHandler{store: h.store, attrs: merged}
}

// WithGroup implements slog.Handler
func (h *BufferedSlogHandler) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of the captured records.
func (h *BufferedSlogHandler) Records() []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]LogRecord, len(h.store.records))
	copy(out, h.store.records)
	return out
}

// HasMessage reports whether any record at the given level carries the message.
func (h *BufferedSlogHandler) HasMessage(level slog.Level, message string) bool {
	for _, r := range h.Records() {
		if r.Level == level && r.Message == message {
			return true
		}
	}
	return false
}
