// Package v1 provides an adapter for gocql v1.x (github.com/gocql/gocql).
package v1

import (
	"context"
	"net"
	"strconv"

	"github.com/gocql/gocql"

	"github.com/arloliu/vdba/adapter/cql"
	"github.com/arloliu/vdba/internal/hostview"
)

// Cluster wraps a gocql cluster configuration that has not been connected yet.
type Cluster struct {
	config *gocql.ClusterConfig
	hosts  *hostview.Recorder[*gocql.HostInfo]
}

// Compile-time assertions.
var (
	_ cql.Cluster        = (*Cluster)(nil)
	_ cql.Session        = (*Session)(nil)
	_ cql.Query          = (*Query)(nil)
	_ cql.Iter           = (*Iter)(nil)
	_ cql.ClusterFactory = NewCluster
)

// NewCluster builds an unopened cluster from cfg. It performs no network I/O.
//
// NewCluster is a cql.ClusterFactory.
//
// Parameters:
//   - cfg: Cluster configuration
//
// Returns:
//   - cql.Cluster: A cluster ready to create sessions
//   - error: Always nil; present to satisfy cql.ClusterFactory
func NewCluster(cfg cql.ClusterConfig) (cql.Cluster, error) {
	return WrapCluster(ToGocqlConfig(cfg)), nil
}

// WrapCluster wraps an existing gocql cluster configuration.
//
// The configuration's HostFilter is replaced by one that records every host
// and delegates to the previous filter, if any.
//
// Parameters:
//   - config: A gocql cluster configuration
//
// Returns:
//   - *Cluster: An adapter implementing cql.Cluster
func WrapCluster(config *gocql.ClusterConfig) *Cluster {
	hosts := hostview.New(hostKey, describeHost)

	previous := config.HostFilter
	config.HostFilter = gocql.HostFilterFunc(func(host *gocql.HostInfo) bool {
		if previous != nil && !previous.Accept(host) {
			return false
		}

		return hosts.Accept(host)
	})

	return &Cluster{config: config, hosts: hosts}
}

// Config returns the underlying gocql cluster configuration.
func (c *Cluster) Config() *gocql.ClusterConfig {
	return c.config
}

// CreateSession connects to the cluster.
//
// The host view starts empty for every session: hosts discovered by an
// earlier session of this cluster are forgotten.
func (c *Cluster) CreateSession() (cql.Session, error) {
	c.hosts.Reset()

	session, err := c.config.CreateSession()
	if err != nil {
		return nil, err
	}

	return &Session{session: session, hosts: c.hosts}, nil
}

func hostKey(h *gocql.HostInfo) string {
	return net.JoinHostPort(h.ConnectAddress().String(), strconv.Itoa(h.Port()))
}

func describeHost(h *gocql.HostInfo) cql.HostInfo {
	return cql.HostInfo{
		Address: h.ConnectAddress().String(),
		Port:    h.Port(),
		Up:      h.IsUp(),
	}
}

// Session wraps a gocql session.
type Session struct {
	session *gocql.Session
	hosts   *hostview.Recorder[*gocql.HostInfo]
}

// NewSession creates a new adapter from a gocql session.
//
// Sessions created this way do not know their hosts: Hosts returns nil.
// Use NewCluster or WrapCluster to get a session with a host view.
//
// Parameters:
//   - session: A gocql.Session instance
//
// Returns:
//   - *Session: An adapter implementing cql.Session
func NewSession(session *gocql.Session) *Session {
	return &Session{session: session}
}

// Query creates a new query for the given statement.
//
// Parameters:
//   - stmt: CQL statement with ? placeholders
//   - values: Values to bind to placeholders
//
// Returns:
//   - cql.Query: A query builder
func (s *Session) Query(stmt string, values ...any) cql.Query {
	return &Query{
		query:     s.session.Query(stmt, values...),
		statement: stmt,
		values:    values,
	}
}

// Hosts returns the current view of every host the session discovered.
func (s *Session) Hosts() []cql.HostInfo {
	if s.hosts == nil {
		return nil
	}

	return s.hosts.Snapshot()
}

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool {
	if s.session == nil {
		return true
	}

	return s.session.Closed()
}

// Close terminates the session.
func (s *Session) Close() {
	if s.session != nil {
		s.session.Close()
	}
}

// Query wraps a gocql query.
type Query struct {
	query     *gocql.Query
	statement string
	values    []any
}

// Consistency sets the consistency level.
func (q *Query) Consistency(c cql.Consistency) cql.Query {
	q.query = q.query.Consistency(ToGocqlConsistency(c))
	return q
}

// PageSize sets the page size.
func (q *Query) PageSize(n int) cql.Query {
	q.query = q.query.PageSize(n)
	return q
}

// Statement returns the CQL statement.
func (q *Query) Statement() string {
	return q.statement
}

// Values returns the bound values.
func (q *Query) Values() []any {
	return q.values
}

// ExecContext executes the query with context.
func (q *Query) ExecContext(ctx context.Context) error {
	return q.query.WithContext(ctx).Exec()
}

// IterContext returns an iterator for results with context.
func (q *Query) IterContext(ctx context.Context) cql.Iter {
	return &Iter{iter: q.query.WithContext(ctx).Iter()}
}

// Iter wraps a gocql iterator. A nil Iter behaves as an empty result.
type Iter struct {
	iter *gocql.Iter
}

// Scan reads the next row.
func (i *Iter) Scan(dest ...any) bool {
	if i.iter == nil {
		return false
	}

	return i.iter.Scan(dest...)
}

// MapScan reads the next row into a map.
func (i *Iter) MapScan(m map[string]any) bool {
	if i.iter == nil {
		return false
	}

	return i.iter.MapScan(m)
}

// SliceMap reads all rows into a slice of maps.
func (i *Iter) SliceMap() ([]map[string]any, error) {
	if i.iter == nil {
		return nil, nil
	}

	return i.iter.SliceMap()
}

// NumRows returns the number of rows in the current page.
func (i *Iter) NumRows() int {
	if i.iter == nil {
		return 0
	}

	return i.iter.NumRows()
}

// Columns returns metadata about the columns in the result set.
func (i *Iter) Columns() []cql.ColumnInfo {
	if i.iter == nil {
		return nil
	}

	gocqlCols := i.iter.Columns()
	result := make([]cql.ColumnInfo, len(gocqlCols))
	for idx, col := range gocqlCols {
		result[idx] = cql.ColumnInfo{
			Keyspace: col.Keyspace,
			Table:    col.Table,
			Name:     col.Name,
			TypeInfo: col.TypeInfo,
		}
	}

	return result
}

// Close closes the iterator.
func (i *Iter) Close() error {
	if i.iter == nil {
		return nil
	}

	return i.iter.Close()
}
