package vm

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
	"github.com/arloliu/vdba/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "vdba"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// knownOperations are pre-created at initialization.
var knownOperations = []types.Operation{types.OpRun, types.OpFind, types.OpFindOne, types.OpEach}

// knownSchemaKinds are pre-created at initialization.
var knownSchemaKinds = []string{"table_created", "table_dropped", "index_created", "index_dropped"}

type operationMetrics struct {
	total    *metrics.Counter
	errors   *metrics.Counter
	duration *metrics.Histogram
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// Metrics for the known operations and schema change kinds are pre-created
// at initialization time. Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	operations    map[types.Operation]*operationMetrics
	schemaChanges map[string]*metrics.Counter

	connectionsOpened *metrics.Counter
	connectionsClosed *metrics.Counter
	connectionErrors  *metrics.Counter
	openConnections   atomic.Int64
}

// Compile-time assertion that Collector implements types.MetricsCollector.
var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally
// unless WithMetricsSet is given.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	cassandra.Register(registry, cassandra.WithMetrics(collector))
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "vdba",
	}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates all metrics with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix

	c.operations = make(map[types.Operation]*operationMetrics, len(knownOperations))
	for _, op := range knownOperations {
		c.operations[op] = &operationMetrics{
			total:    c.set.NewCounter(fmt.Sprintf(`%s_query_total{op="%s"}`, p, op)),
			errors:   c.set.NewCounter(fmt.Sprintf(`%s_query_errors_total{op="%s"}`, p, op)),
			duration: c.set.NewHistogram(fmt.Sprintf(`%s_query_duration_seconds{op="%s"}`, p, op)),
		}
	}

	c.schemaChanges = make(map[string]*metrics.Counter, len(knownSchemaKinds))
	for _, kind := range knownSchemaKinds {
		c.schemaChanges[kind] = c.set.NewCounter(fmt.Sprintf(`%s_schema_changes_total{kind="%s"}`, p, kind))
	}

	c.connectionsOpened = c.set.NewCounter(fmt.Sprintf(`%s_connections_opened_total`, p))
	c.connectionsClosed = c.set.NewCounter(fmt.Sprintf(`%s_connections_closed_total`, p))
	c.connectionErrors = c.set.NewCounter(fmt.Sprintf(`%s_connection_errors_total`, p))
	c.set.NewGauge(fmt.Sprintf(`%s_open_connections`, p), func() float64 {
		return float64(c.openConnections.Load())
	})
}

// Set returns the underlying metrics set.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// operation returns the pre-created metrics for op, creating them lazily
// for operations outside the known set.
func (c *Collector) operation(op types.Operation) *operationMetrics {
	if m, ok := c.operations[op]; ok {
		return m
	}

	return &operationMetrics{
		total:    c.set.GetOrCreateCounter(fmt.Sprintf(`%s_query_total{op="%s"}`, c.prefix, op)),
		errors:   c.set.GetOrCreateCounter(fmt.Sprintf(`%s_query_errors_total{op="%s"}`, c.prefix, op)),
		duration: c.set.GetOrCreateHistogram(fmt.Sprintf(`%s_query_duration_seconds{op="%s"}`, c.prefix, op)),
	}
}

// ----------------------
// Query Engine
// ----------------------

// IncQueryTotal increments the operation counter.
func (c *Collector) IncQueryTotal(op types.Operation) {
	c.operation(op).total.Inc()
}

// IncQueryError increments the operation error counter.
func (c *Collector) IncQueryError(op types.Operation) {
	c.operation(op).errors.Inc()
}

// ObserveQueryDuration records an operation duration.
func (c *Collector) ObserveQueryDuration(op types.Operation, seconds float64) {
	c.operation(op).duration.Update(seconds)
}

// ----------------------
// Connections
// ----------------------

// IncConnectionOpened increments the opened counter and the open gauge.
func (c *Collector) IncConnectionOpened() {
	c.connectionsOpened.Inc()
	c.openConnections.Add(1)
}

// IncConnectionClosed increments the closed counter and decrements the open gauge.
func (c *Collector) IncConnectionClosed() {
	c.connectionsClosed.Inc()
	c.openConnections.Add(-1)
}

// IncConnectionError increments the connection error counter.
func (c *Collector) IncConnectionError() {
	c.connectionErrors.Inc()
}

// ----------------------
// Schema
// ----------------------

// IncSchemaChange increments the schema change counter for kind.
func (c *Collector) IncSchemaChange(kind string) {
	if counter, ok := c.schemaChanges[kind]; ok {
		counter.Inc()
		return
	}
	c.set.GetOrCreateCounter(fmt.Sprintf(`%s_schema_changes_total{kind="%s"}`, c.prefix, kind)).Inc()
}
