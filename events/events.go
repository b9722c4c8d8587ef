// Package events publishes and observes schema changes applied through vdba.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the type of schema change.
type Kind string

// Schema change kinds.
const (
	TableCreated Kind = "table_created"
	TableDropped Kind = "table_dropped"
	IndexCreated Kind = "index_created"
	IndexDropped Kind = "index_dropped"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case TableCreated, TableDropped, IndexCreated, IndexDropped:
		return true
	default:
		return false
	}
}

// ErrClosed indicates a publish or watch on a closed publisher or watcher.
var ErrClosed = errors.New("vdba/events: closed")

// Event describes one applied DDL statement.
type Event struct {
	// ID uniquely identifies the event.
	ID uuid.UUID

	// Kind is the type of change.
	Kind Kind

	// Keyspace is the keyspace the change was applied to.
	Keyspace string

	// Object is the created or dropped table or index.
	Object string

	// Table is the affected table. For index drops it is empty: the
	// statement does not name the table.
	Table string

	// Statement is the CQL that was executed.
	Statement string

	// Timestamp is when the change was applied.
	Timestamp time.Time
}

// NewEvent creates an event with a fresh time-ordered ID and the current time.
//
// Parameters:
//   - kind: The type of change
//   - keyspace: Target keyspace
//   - object: Created or dropped table or index
//   - table: Affected table (may be empty)
//   - statement: Executed CQL
//
// Returns:
//   - Event: The new event
func NewEvent(kind Kind, keyspace, object, table, statement string) Event {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return Event{
		ID:        id,
		Kind:      kind,
		Keyspace:  keyspace,
		Object:    object,
		Table:     table,
		Statement: statement,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher delivers schema events.
//
// Implementations must be safe for concurrent use.
type Publisher interface {
	// Publish delivers event. Implementations may drop events (e.g. when a
	// buffer is full) but must not block indefinitely past ctx.
	Publish(ctx context.Context, event Event) error
}

// Watcher observes schema events.
type Watcher interface {
	// Watch returns a channel of events. The channel is closed when the
	// watcher is closed or ctx is cancelled.
	Watch(ctx context.Context) <-chan Event

	// Close stops the watcher.
	Close() error
}
