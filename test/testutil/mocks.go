package testutil

import (
	"context"
	"sync"

	"github.com/arloliu/vdba/adapter/cql"
)

// ----------------------
// Cluster
// ----------------------

// MockCluster is a mock implementation of cql.Cluster for testing.
//
// Each CreateSession call returns a fresh MockSession that shares the
// cluster's scripted responses and host list.
type MockCluster struct {
	mu        sync.Mutex
	createErr error
	configs   []cql.ClusterConfig
	sessions  []*MockSession
	script    *script
	hosts     []cql.HostInfo

	// Hooks for custom behavior
	OnCreateSession func() (cql.Session, error)
}

// Compile-time assertion that MockCluster implements cql.Cluster.
var _ cql.Cluster = (*MockCluster)(nil)

// NewMockCluster creates a mock cluster whose sessions see one host that is up.
func NewMockCluster() *MockCluster {
	return &MockCluster{
		script: newScript(),
		hosts:  []cql.HostInfo{{Address: "127.0.0.1", Port: 9042, Up: true}},
	}
}

// Factory returns a cql.ClusterFactory that records the configuration and returns m.
func (m *MockCluster) Factory() cql.ClusterFactory {
	return func(cfg cql.ClusterConfig) (cql.Cluster, error) {
		m.mu.Lock()
		defer m.mu.Unlock()

		m.configs = append(m.configs, cfg)

		return m, nil
	}
}

// CreateSession returns a new mock session or the configured error.
func (m *MockCluster) CreateSession() (cql.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OnCreateSession != nil {
		return m.OnCreateSession()
	}
	if m.createErr != nil {
		return nil, m.createErr
	}

	hosts := make([]cql.HostInfo, len(m.hosts))
	copy(hosts, m.hosts)

	s := &MockSession{script: m.script, hosts: hosts}
	m.sessions = append(m.sessions, s)

	return s, nil
}

// SetCreateError makes CreateSession fail with err (nil restores success).
func (m *MockCluster) SetCreateError(err error) *MockCluster {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createErr = err

	return m
}

// SetHosts sets the host list seen by sessions created afterwards.
func (m *MockCluster) SetHosts(hosts ...cql.HostInfo) *MockCluster {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hosts = hosts

	return m
}

// SetRows scripts the rows returned by stmt on every session.
func (m *MockCluster) SetRows(stmt string, rows ...map[string]any) *MockCluster {
	m.script.setRows(stmt, rows)

	return m
}

// SetExecError scripts the error returned when stmt is executed.
func (m *MockCluster) SetExecError(stmt string, err error) *MockCluster {
	m.script.setExecError(stmt, err)

	return m
}

// SetIterError scripts the error returned when the iterator of stmt is closed.
func (m *MockCluster) SetIterError(stmt string, err error) *MockCluster {
	m.script.setIterError(stmt, err)

	return m
}

// Configs returns every configuration passed to the factory.
func (m *MockCluster) Configs() []cql.ClusterConfig {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]cql.ClusterConfig, len(m.configs))
	copy(out, m.configs)

	return out
}

// Sessions returns every session created so far.
func (m *MockCluster) Sessions() []*MockSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*MockSession, len(m.sessions))
	copy(out, m.sessions)

	return out
}

// LastSession returns the most recently created session, or nil.
func (m *MockCluster) LastSession() *MockSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) == 0 {
		return nil
	}

	return m.sessions[len(m.sessions)-1]
}

// ----------------------
// Script
// ----------------------

// response is the scripted outcome of one statement.
type response struct {
	rows    []map[string]any
	execErr error
	iterErr error
}

type script struct {
	mu        sync.RWMutex
	responses map[string]*response
}

func newScript() *script {
	return &script{responses: make(map[string]*response)}
}

func (s *script) entry(stmt string) *response {
	r, ok := s.responses[stmt]
	if !ok {
		r = &response{}
		s.responses[stmt] = r
	}

	return r
}

func (s *script) setRows(stmt string, rows []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry(stmt).rows = rows
}

func (s *script) setExecError(stmt string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry(stmt).execErr = err
}

func (s *script) setIterError(stmt string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry(stmt).iterErr = err
}

func (s *script) lookup(stmt string) response {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.responses[stmt]; ok {
		return *r
	}

	return response{}
}

// ----------------------
// Session
// ----------------------

// MockSession is a mock implementation of cql.Session for testing.
type MockSession struct {
	mu      sync.RWMutex
	closed  bool
	hosts   []cql.HostInfo
	script  *script
	queries []*MockQuery

	// Hooks for custom behavior
	OnQuery func(stmt string, values ...any) cql.Query
	OnClose func()
}

// Compile-time assertion that MockSession implements cql.Session.
var _ cql.Session = (*MockSession)(nil)

// NewMockSession creates a standalone mock session with one host that is up.
func NewMockSession() *MockSession {
	return &MockSession{
		script: newScript(),
		hosts:  []cql.HostInfo{{Address: "127.0.0.1", Port: 9042, Up: true}},
	}
}

// Query returns a mock query answering from the session's script.
func (m *MockSession) Query(stmt string, values ...any) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OnQuery != nil {
		return m.OnQuery(stmt, values...)
	}

	r := m.script.lookup(stmt)
	q := NewMockQuery(stmt, values...)
	q.execErr = r.execErr
	q.rows = r.rows
	q.iterErr = r.iterErr
	m.queries = append(m.queries, q)

	return q
}

// Hosts returns the host list.
func (m *MockSession) Hosts() []cql.HostInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]cql.HostInfo, len(m.hosts))
	copy(out, m.hosts)

	return out
}

// SetHostsUp marks every host up or down.
func (m *MockSession) SetHostsUp(up bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.hosts {
		m.hosts[i].Up = up
	}
}

// SetRows scripts the rows returned by stmt.
func (m *MockSession) SetRows(stmt string, rows ...map[string]any) *MockSession {
	m.script.setRows(stmt, rows)

	return m
}

// SetExecError scripts the error returned when stmt is executed.
func (m *MockSession) SetExecError(stmt string, err error) *MockSession {
	m.script.setExecError(stmt, err)

	return m
}

// SetIterError scripts the error returned when the iterator of stmt is closed.
func (m *MockSession) SetIterError(stmt string, err error) *MockSession {
	m.script.setIterError(stmt, err)

	return m
}

// Closed returns whether the session has been closed.
func (m *MockSession) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.closed
}

// Close marks the session as closed.
func (m *MockSession) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	if m.OnClose != nil {
		m.OnClose()
	}
}

// Queries returns every query built on the session, in order.
func (m *MockSession) Queries() []*MockQuery {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*MockQuery, len(m.queries))
	copy(out, m.queries)

	return out
}

// Statements returns the statements of every query built on the session.
func (m *MockSession) Statements() []string {
	queries := m.Queries()
	out := make([]string, len(queries))
	for i, q := range queries {
		out[i] = q.Statement()
	}

	return out
}

// LastQuery returns the most recent query, or nil.
func (m *MockSession) LastQuery() *MockQuery {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.queries) == 0 {
		return nil
	}

	return m.queries[len(m.queries)-1]
}

// ----------------------
// Query
// ----------------------

// MockQuery is a mock implementation of cql.Query for testing.
type MockQuery struct {
	mu     sync.RWMutex
	stmt   string
	values []any

	consistency cql.Consistency
	pageSize    int
	executed    bool

	execErr error
	rows    []map[string]any
	iterErr error
	iter    *MockIter
}

// Compile-time assertion that MockQuery implements cql.Query.
var _ cql.Query = (*MockQuery)(nil)

// NewMockQuery creates a new mock query.
func NewMockQuery(stmt string, values ...any) *MockQuery {
	return &MockQuery{
		stmt:   stmt,
		values: values,
	}
}

// Statement returns the query statement.
func (m *MockQuery) Statement() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.stmt
}

// Values returns the query values.
func (m *MockQuery) Values() []any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.values
}

// Consistency sets the consistency level.
func (m *MockQuery) Consistency(c cql.Consistency) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.consistency = c

	return m
}

// GetConsistency returns the consistency level the query was run with.
func (m *MockQuery) GetConsistency() cql.Consistency {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.consistency
}

// PageSize sets the page size.
func (m *MockQuery) PageSize(n int) cql.Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pageSize = n

	return m
}

// ExecContext executes the query. A cancelled context wins over the scripted error.
func (m *MockQuery) ExecContext(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.executed = true
	if err := ctx.Err(); err != nil {
		return err
	}

	return m.execErr
}

// Executed reports whether ExecContext was called.
func (m *MockQuery) Executed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.executed
}

// IterContext returns an iterator over the scripted rows.
func (m *MockQuery) IterContext(ctx context.Context) cql.Iter {
	m.mu.Lock()
	defer m.mu.Unlock()

	iter := NewMockIter()
	for _, row := range m.rows {
		iter.AddMapRow(row)
	}

	closeErr := m.iterErr
	if err := ctx.Err(); err != nil {
		iter.mapRows = nil
		closeErr = err
	}
	iter.SetCloseError(closeErr)
	m.iter = iter

	return iter
}

// Iter returns the iterator created by IterContext, or nil.
func (m *MockQuery) Iter() *MockIter {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.iter
}

// ----------------------
// Iter
// ----------------------

// MockIter is a mock implementation of cql.Iter for testing.
type MockIter struct {
	mu       sync.RWMutex
	mapRows  []map[string]any
	index    int
	closeErr error
	closed   bool
}

// Compile-time assertion that MockIter implements cql.Iter.
var _ cql.Iter = (*MockIter)(nil)

// NewMockIter creates a new mock iterator.
func NewMockIter() *MockIter {
	return &MockIter{}
}

// Scan reads the next row into dest, in column name order.
func (m *MockIter) Scan(dest ...any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index >= len(m.mapRows) {
		return false
	}

	row := m.mapRows[m.index]
	for i, name := range sortedKeys(row) {
		if i >= len(dest) {
			break
		}
		copyValue(dest[i], row[name])
	}
	m.index++

	return true
}

// MapScan reads the next row into a map.
func (m *MockIter) MapScan(dest map[string]any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index >= len(m.mapRows) {
		return false
	}

	for k, v := range m.mapRows[m.index] {
		dest[k] = v
	}
	m.index++

	return true
}

// SliceMap returns all remaining rows.
func (m *MockIter) SliceMap() ([]map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closeErr != nil {
		return nil, m.closeErr
	}

	remaining := m.mapRows[m.index:]
	m.index = len(m.mapRows)

	return remaining, nil
}

// NumRows returns the number of scripted rows.
func (m *MockIter) NumRows() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.mapRows)
}

// Columns returns column metadata derived from the first row.
func (m *MockIter) Columns() []cql.ColumnInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.mapRows) == 0 {
		return nil
	}

	names := sortedKeys(m.mapRows[0])
	cols := make([]cql.ColumnInfo, len(names))
	for i, name := range names {
		cols[i] = cql.ColumnInfo{Name: name}
	}

	return cols
}

// Close closes the iterator and returns the configured error.
func (m *MockIter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return m.closeErr
}

// AddMapRow adds a row to the iterator.
func (m *MockIter) AddMapRow(row map[string]any) *MockIter {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mapRows = append(m.mapRows, row)

	return m
}

// SetCloseError configures the close error.
func (m *MockIter) SetCloseError(err error) *MockIter {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeErr = err

	return m
}

// Consumed returns how many rows have been read.
func (m *MockIter) Consumed() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.index
}

// IsClosed reports whether Close was called.
func (m *MockIter) IsClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.closed
}

// copyValue copies a value to a destination pointer.
func copyValue(dest, src any) {
	switch d := dest.(type) {
	case *any:
		*d = src
	case *string:
		if s, ok := src.(string); ok {
			*d = s
		}
	case *int:
		if s, ok := src.(int); ok {
			*d = s
		}
	case *int64:
		if s, ok := src.(int64); ok {
			*d = s
		}
	case *float64:
		if s, ok := src.(float64); ok {
			*d = s
		}
	case *bool:
		if s, ok := src.(bool); ok {
			*d = s
		}
	case *[]byte:
		if s, ok := src.([]byte); ok {
			*d = s
		}
	}
}
