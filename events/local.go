package events

import (
	"context"
	"sync"
)

// DefaultLocalBuffer is the channel capacity of a Local publisher.
const DefaultLocalBuffer = 64

// Local is an in-memory publisher and watcher.
//
// Every published event is kept in an append-only history and offered to
// the watch channel without blocking; events that do not fit in the buffer
// are only recorded in the history. Local is useful in tests and for
// in-process schema hooks.
type Local struct {
	mu      sync.RWMutex
	history []Event

	updates       chan Event
	done          chan struct{}
	closed        bool
	updatesClosed bool
	watchStarted  bool
}

var (
	_ Publisher = (*Local)(nil)
	_ Watcher   = (*Local)(nil)
)

// NewLocal creates an in-memory publisher with a buffer of DefaultLocalBuffer.
//
// Returns:
//   - *Local: A new local publisher
func NewLocal() *Local {
	return NewLocalWithBuffer(DefaultLocalBuffer)
}

// NewLocalWithBuffer creates an in-memory publisher with the given channel capacity.
//
// Parameters:
//   - size: Channel capacity; values below 1 are raised to 1
//
// Returns:
//   - *Local: A new local publisher
func NewLocalWithBuffer(size int) *Local {
	if size < 1 {
		size = 1
	}

	return &Local{
		updates: make(chan Event, size),
		done:    make(chan struct{}),
	}
}

// Publish records event and offers it to watchers.
//
// Parameters:
//   - ctx: Unused; accepted for interface compliance
//   - event: The event to publish
//
// Returns:
//   - error: ErrClosed after Close
func (l *Local) Publish(_ context.Context, event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}

	l.history = append(l.history, event)

	if l.updatesClosed {
		return nil
	}

	select {
	case l.updates <- event:
	default:
		// buffer full, history only
	}

	return nil
}

// Watch returns the channel of published events.
//
// Multiple calls return the same channel; only the first call's context
// controls the watch lifecycle. The channel is closed when Close is called
// or that context is cancelled.
//
// Parameters:
//   - ctx: Context for cancellation (only used on first call)
//
// Returns:
//   - <-chan Event: Channel of events
func (l *Local) Watch(ctx context.Context) <-chan Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.watchStarted {
		l.watchStarted = true
		go l.waitForClose(ctx)
	}

	return l.updates
}

// Events returns a copy of every event published so far, oldest first.
func (l *Local) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Event, len(l.history))
	copy(out, l.history)

	return out
}

// Close stops the publisher. It is safe to call multiple times.
func (l *Local) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	close(l.done)

	if !l.watchStarted {
		l.updatesClosed = true
		close(l.updates)
	}

	return nil
}

func (l *Local) waitForClose(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-l.done:
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.updatesClosed {
		l.updatesClosed = true
		close(l.updates)
	}
}
