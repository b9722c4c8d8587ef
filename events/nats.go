package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// NATSConfig configures the NATS JetStream publisher and watcher.
type NATSConfig struct {
	// StreamName is the JetStream stream holding schema events.
	// Default: "vdba-schema"
	StreamName string

	// SubjectPrefix is the prefix for subjects. Events are published to
	// "{SubjectPrefix}.{keyspace}.{kind}" (e.g., "vdba.schema.shop.table_created").
	// Default: "vdba.schema"
	SubjectPrefix string

	// MaxAge is the maximum age of events in the stream.
	// Default: 7 days
	MaxAge time.Duration

	// MaxMsgs is the maximum number of events in the stream.
	// Default: 100,000
	MaxMsgs int64

	// Replicas is the number of stream replicas.
	// Default: 1
	Replicas int

	// PublishTimeout bounds each publish.
	// Default: 5 seconds
	PublishTimeout time.Duration

	// Keyspace restricts a watcher to one keyspace. Empty watches all keyspaces.
	Keyspace string

	// DeliverAll makes a watcher replay the retained history before new events.
	// Default: false (new events only)
	DeliverAll bool
}

// DefaultNATSConfig returns the default configuration.
//
// Returns:
//   - NATSConfig: Default configuration
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		StreamName:     "vdba-schema",
		SubjectPrefix:  "vdba.schema",
		MaxAge:         7 * 24 * time.Hour,
		MaxMsgs:        100_000,
		Replicas:       1,
		PublishTimeout: 5 * time.Second,
	}
}

// NATSOption configures a NATSConfig.
type NATSOption func(*NATSConfig)

// WithStreamName sets the JetStream stream name.
func WithStreamName(name string) NATSOption {
	return func(c *NATSConfig) {
		c.StreamName = name
	}
}

// WithSubjectPrefix sets the subject prefix.
func WithSubjectPrefix(prefix string) NATSOption {
	return func(c *NATSConfig) {
		c.SubjectPrefix = prefix
	}
}

// WithMaxAge sets the maximum age of retained events.
func WithMaxAge(d time.Duration) NATSOption {
	return func(c *NATSConfig) {
		c.MaxAge = d
	}
}

// WithMaxMsgs sets the maximum number of retained events.
func WithMaxMsgs(n int64) NATSOption {
	return func(c *NATSConfig) {
		c.MaxMsgs = n
	}
}

// WithReplicas sets the number of stream replicas.
func WithReplicas(n int) NATSOption {
	return func(c *NATSConfig) {
		c.Replicas = n
	}
}

// WithPublishTimeout sets the timeout of each publish.
func WithPublishTimeout(d time.Duration) NATSOption {
	return func(c *NATSConfig) {
		c.PublishTimeout = d
	}
}

// WithKeyspace restricts a watcher to the events of one keyspace.
func WithKeyspace(keyspace string) NATSOption {
	return func(c *NATSConfig) {
		c.Keyspace = keyspace
	}
}

// WithDeliverAll makes a watcher start from the oldest retained event.
func WithDeliverAll() NATSOption {
	return func(c *NATSConfig) {
		c.DeliverAll = true
	}
}

// ensureStream creates or updates the schema event stream.
func ensureStream(js jetstream.JetStream, config NATSConfig) (jetstream.Stream, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        config.StreamName,
		Description: "vdba schema change events",
		Subjects:    []string{config.SubjectPrefix + ".*.*"}, // {prefix}.{keyspace}.{kind}
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      config.MaxAge,
		MaxMsgs:     config.MaxMsgs,
		Replicas:    config.Replicas,
		Storage:     jetstream.FileStorage,
		Discard:     jetstream.DiscardOld,
	})
	if err != nil {
		return nil, fmt.Errorf("vdba/events: failed to create/update stream: %w", err)
	}

	return stream, nil
}

func newNATSConfig(opts []NATSOption) NATSConfig {
	config := DefaultNATSConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return config
}

// NATSPublisher publishes schema events to a JetStream stream.
type NATSPublisher struct {
	js     jetstream.JetStream
	stream jetstream.Stream
	config NATSConfig
	closed bool
	mu     sync.RWMutex
}

var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher creates a publisher and ensures its stream exists.
//
// Parameters:
//   - js: A JetStream context (created via jetstream.New(conn))
//   - opts: Optional configuration options
//
// Returns:
//   - *NATSPublisher: A new publisher
//   - error: Error if js is nil or stream creation fails
//
// Example:
//
//	nc, _ := nats.Connect("nats://localhost:4222")
//	js, _ := jetstream.New(nc)
//	publisher, _ := events.NewNATSPublisher(js)
//	driver := cassandra.New(cassandra.WithEventPublisher(publisher))
func NewNATSPublisher(js jetstream.JetStream, opts ...NATSOption) (*NATSPublisher, error) {
	if js == nil {
		return nil, errors.New("vdba/events: JetStream context is nil")
	}

	config := newNATSConfig(opts)
	stream, err := ensureStream(js, config)
	if err != nil {
		return nil, err
	}

	return &NATSPublisher{
		js:     js,
		stream: stream,
		config: config,
	}, nil
}

// Publish sends event to "{prefix}.{keyspace}.{kind}".
//
// The event ID is used as the JetStream message ID, so a retried publish
// of the same event is deduplicated by the server.
//
// Parameters:
//   - ctx: Context for cancellation; PublishTimeout also applies
//   - event: The event to publish
//
// Returns:
//   - error: ErrClosed after Close, or the publish error
func (n *NATSPublisher) Publish(ctx context.Context, event Event) error {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()

		return ErrClosed
	}
	n.mu.RUnlock()

	data, err := event.MarshalMsg(nil)
	if err != nil {
		return fmt.Errorf("vdba/events: failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, n.config.PublishTimeout)
	defer cancel()

	_, err = n.js.Publish(pubCtx, n.Subject(event), data, jetstream.WithMsgID(event.ID.String()))
	if err != nil {
		return fmt.Errorf("vdba/events: failed to publish event: %w", err)
	}

	return nil
}

// Subject returns the subject event is published to.
func (n *NATSPublisher) Subject(event Event) string {
	return fmt.Sprintf("%s.%s.%s", n.config.SubjectPrefix, event.Keyspace, event.Kind)
}

// Count returns the number of events retained in the stream.
func (n *NATSPublisher) Count(ctx context.Context) (int, error) {
	info, err := n.stream.Info(ctx)
	if err != nil {
		return 0, fmt.Errorf("vdba/events: failed to get stream info: %w", err)
	}

	return int(info.State.Msgs), nil
}

// StreamName returns the JetStream stream name.
func (n *NATSPublisher) StreamName() string {
	return n.config.StreamName
}

// Close marks the publisher closed. The JetStream connection is owned by
// the caller and left open.
func (n *NATSPublisher) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true

	return nil
}

// NATSWatcher observes schema events from a JetStream stream with an
// ordered, ephemeral consumer.
type NATSWatcher struct {
	stream jetstream.Stream
	config NATSConfig

	mu           sync.Mutex
	updates      chan Event
	done         chan struct{}
	closed       bool
	watchStarted bool
	closeOnce    sync.Once
}

var _ Watcher = (*NATSWatcher)(nil)

// NewNATSWatcher creates a watcher and ensures the stream exists.
//
// Parameters:
//   - js: A JetStream context
//   - opts: Optional configuration options (WithKeyspace, WithDeliverAll, ...)
//
// Returns:
//   - *NATSWatcher: A new watcher
//   - error: Error if js is nil or stream creation fails
func NewNATSWatcher(js jetstream.JetStream, opts ...NATSOption) (*NATSWatcher, error) {
	if js == nil {
		return nil, errors.New("vdba/events: JetStream context is nil")
	}

	config := newNATSConfig(opts)
	stream, err := ensureStream(js, config)
	if err != nil {
		return nil, err
	}

	return &NATSWatcher{
		stream:  stream,
		config:  config,
		updates: make(chan Event, DefaultLocalBuffer),
		done:    make(chan struct{}),
	}, nil
}

// Watch returns a channel of events.
//
// Multiple calls return the same channel; only the first call's context
// controls the watch lifecycle. Malformed messages are skipped.
//
// Parameters:
//   - ctx: Context for cancellation (only used on first call)
//
// Returns:
//   - <-chan Event: Channel of events
func (w *NATSWatcher) Watch(ctx context.Context) <-chan Event {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watchStarted {
		w.watchStarted = true
		go w.watchLoop(ctx)
	}

	return w.updates
}

// Close stops the watcher. It is safe to call multiple times.
func (w *NATSWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	w.closed = true
	close(w.done)

	if !w.watchStarted {
		w.closeOnce.Do(func() { close(w.updates) })
	}

	return nil
}

func (w *NATSWatcher) filterSubject() string {
	keyspace := w.config.Keyspace
	if keyspace == "" {
		keyspace = "*"
	}

	return fmt.Sprintf("%s.%s.*", w.config.SubjectPrefix, keyspace)
}

func (w *NATSWatcher) watchLoop(ctx context.Context) {
	defer w.closeOnce.Do(func() { close(w.updates) })

	deliver := jetstream.DeliverNewPolicy
	if w.config.DeliverAll {
		deliver = jetstream.DeliverAllPolicy
	}

	consumer, err := w.stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{w.filterSubject()},
		DeliverPolicy:  deliver,
	})
	if err != nil {
		return
	}

	iter, err := consumer.Messages()
	if err != nil {
		return
	}

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
		case <-w.done:
		case <-stopped:
		}
		iter.Stop()
	}()

	for {
		msg, err := iter.Next()
		if err != nil {
			return
		}

		var event Event
		if _, err := event.UnmarshalMsg(msg.Data()); err != nil {
			continue
		}

		select {
		case w.updates <- event:
		case <-ctx.Done():
			return
		case <-w.done:
			return
		}
	}
}
