package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/arloliu/vdba/events"
)

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// LogEntry is one call recorded by RecordingLogger.
type LogEntry struct {
	Level         string
	Message       string
	KeysAndValues []any
}

// Value returns the value logged for key, or nil.
func (e LogEntry) Value(key string) any {
	for i := 0; i+1 < len(e.KeysAndValues); i += 2 {
		if k, ok := e.KeysAndValues[i].(string); ok && k == key {
			return e.KeysAndValues[i+1]
		}
	}

	return nil
}

// RecordingLogger is a types.Logger that keeps every entry for assertions.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewRecordingLogger creates an empty recording logger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, KeysAndValues: kv})
}

// Debug records a debug entry.
func (l *RecordingLogger) Debug(msg string, keysAndValues ...any) {
	l.record("debug", msg, keysAndValues)
}

// Info records an info entry.
func (l *RecordingLogger) Info(msg string, keysAndValues ...any) {
	l.record("info", msg, keysAndValues)
}

// Warn records a warning entry.
func (l *RecordingLogger) Warn(msg string, keysAndValues ...any) {
	l.record("warn", msg, keysAndValues)
}

// Error records an error entry.
func (l *RecordingLogger) Error(msg string, keysAndValues ...any) {
	l.record("error", msg, keysAndValues)
}

// Entries returns every recorded entry.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)

	return out
}

// Find returns the entries with the given level and message.
func (l *RecordingLogger) Find(level, msg string) []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if e.Level == level && e.Message == msg {
			out = append(out, e)
		}
	}

	return out
}

// FailingPublisher is an events.Publisher that always returns Err.
type FailingPublisher struct {
	Err error

	mu    sync.Mutex
	calls int
}

var _ events.Publisher = (*FailingPublisher)(nil)

// Publish returns p.Err.
func (p *FailingPublisher) Publish(_ context.Context, _ events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++

	return p.Err
}

// Calls returns how many times Publish was called.
func (p *FailingPublisher) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.calls
}
