package testutil

import (
	"sync"
	"sync/atomic"

	"github.com/arloliu/vdba/types"
)

// TestMetricsCollector is a test implementation of types.MetricsCollector
// that tracks method calls for assertion.
type TestMetricsCollector struct {
	mu sync.RWMutex

	// Queries
	QueryTotal    map[types.Operation]int64
	QueryErrors   map[types.Operation]int64
	QueryDuration map[types.Operation][]float64

	// Schema
	SchemaChanges map[string]int64

	// Connections
	connectionsOpened atomic.Int64
	connectionsClosed atomic.Int64
	connectionErrors  atomic.Int64
}

// Compile-time assertion that TestMetricsCollector implements types.MetricsCollector.
var _ types.MetricsCollector = (*TestMetricsCollector)(nil)

// NewTestMetricsCollector creates a new test metrics collector.
func NewTestMetricsCollector() *TestMetricsCollector {
	return &TestMetricsCollector{
		QueryTotal:    make(map[types.Operation]int64),
		QueryErrors:   make(map[types.Operation]int64),
		QueryDuration: make(map[types.Operation][]float64),
		SchemaChanges: make(map[string]int64),
	}
}

// ----------------------
// Queries
// ----------------------

// IncQueryTotal records a query.
func (m *TestMetricsCollector) IncQueryTotal(op types.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryTotal[op]++
}

// IncQueryError records a failed query.
func (m *TestMetricsCollector) IncQueryError(op types.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryErrors[op]++
}

// ObserveQueryDuration records a query duration.
func (m *TestMetricsCollector) ObserveQueryDuration(op types.Operation, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryDuration[op] = append(m.QueryDuration[op], seconds)
}

// ----------------------
// Connections
// ----------------------

// IncConnectionOpened records an opened session.
func (m *TestMetricsCollector) IncConnectionOpened() {
	m.connectionsOpened.Add(1)
}

// IncConnectionClosed records a closed session.
func (m *TestMetricsCollector) IncConnectionClosed() {
	m.connectionsClosed.Add(1)
}

// IncConnectionError records a failed open.
func (m *TestMetricsCollector) IncConnectionError() {
	m.connectionErrors.Add(1)
}

// ----------------------
// Schema
// ----------------------

// IncSchemaChange records an applied DDL statement.
func (m *TestMetricsCollector) IncSchemaChange(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SchemaChanges[kind]++
}

// ----------------------
// Getters
// ----------------------

// GetQueryTotal returns the number of queries recorded for op.
func (m *TestMetricsCollector) GetQueryTotal(op types.Operation) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.QueryTotal[op]
}

// GetQueryErrors returns the number of failed queries recorded for op.
func (m *TestMetricsCollector) GetQueryErrors(op types.Operation) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.QueryErrors[op]
}

// GetSchemaChanges returns the number of schema changes of kind.
func (m *TestMetricsCollector) GetSchemaChanges(kind string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.SchemaChanges[kind]
}

// GetConnectionsOpened returns the number of opened sessions.
func (m *TestMetricsCollector) GetConnectionsOpened() int64 {
	return m.connectionsOpened.Load()
}

// GetConnectionsClosed returns the number of closed sessions.
func (m *TestMetricsCollector) GetConnectionsClosed() int64 {
	return m.connectionsClosed.Load()
}

// GetConnectionErrors returns the number of failed opens.
func (m *TestMetricsCollector) GetConnectionErrors() int64 {
	return m.connectionErrors.Load()
}

// Reset clears all recorded metrics.
func (m *TestMetricsCollector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryTotal = make(map[types.Operation]int64)
	m.QueryErrors = make(map[types.Operation]int64)
	m.QueryDuration = make(map[types.Operation][]float64)
	m.SchemaChanges = make(map[string]int64)
	m.connectionsOpened.Store(0)
	m.connectionsClosed.Store(0)
	m.connectionErrors.Store(0)
}
