package cql

import (
	"context"
	"time"

	"github.com/arloliu/vdba/types"
)

// Consistency is the Cassandra consistency level.
type Consistency = types.Consistency

// Consistency levels matching gocql.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	Serial      = types.Serial
	LocalSerial = types.LocalSerial
	LocalOne    = types.LocalOne
)

// DefaultPort is the CQL native protocol port.
const DefaultPort = 9042

// ClusterConfig describes how to reach a cluster.
//
// It holds only what the vdba drivers need; anything else is left at the
// underlying driver's defaults.
type ClusterConfig struct {
	// Hosts are the initial contact points.
	Hosts []string

	// Port is the native protocol port. Zero means DefaultPort.
	Port int

	// Keyspace is the keyspace sessions are bound to.
	Keyspace string

	// Username and Password enable plain-text authentication when Username is set.
	Username string
	Password string

	// Consistency is the session default consistency.
	Consistency Consistency

	// Timeout bounds each request. Zero keeps the driver default.
	Timeout time.Duration

	// ConnectTimeout bounds the initial connection. Zero keeps the driver default.
	ConnectTimeout time.Duration

	// ProtoVersion pins the native protocol version. Zero negotiates.
	ProtoVersion int
}

// ClusterFactory builds an unopened Cluster from a configuration.
//
// Factories must not perform network I/O: connecting happens in CreateSession.
type ClusterFactory func(cfg ClusterConfig) (Cluster, error)

// Cluster is an unopened cluster handle that can create sessions.
type Cluster interface {
	// CreateSession connects to the cluster and returns a live session.
	CreateSession() (Session, error)
}

// Session is a live connection to a cluster.
//
// Implementations must be safe for concurrent use.
type Session interface {
	// Query creates a new query for the given statement.
	//
	// Parameters:
	//   - stmt: CQL statement with ? placeholders
	//   - values: Values to bind to placeholders
	//
	// Returns:
	//   - Query: A query builder
	Query(stmt string, values ...any) Query

	// Hosts returns a snapshot of the hosts the session knows about.
	//
	// Each entry reflects the host state at the time of the call.
	Hosts() []HostInfo

	// Closed reports whether Close has been called.
	Closed() bool

	// Close terminates the session.
	Close()
}

// HostInfo is a point-in-time view of one cluster node.
type HostInfo struct {
	// Address is the address the driver connects to.
	Address string

	// Port is the native protocol port of the node.
	Port int

	// Up reports whether the driver considers the node available.
	Up bool
}

// Query is a single CQL statement with bound values.
type Query interface {
	// Consistency sets the consistency level for this query.
	Consistency(c Consistency) Query

	// PageSize sets the number of rows fetched per page.
	PageSize(n int) Query

	// ExecContext executes a statement that returns no rows.
	ExecContext(ctx context.Context) error

	// IterContext executes the query and returns an iterator over its rows.
	//
	// Errors are reported by Iter.Close.
	IterContext(ctx context.Context) Iter

	// Statement returns the CQL statement.
	Statement() string

	// Values returns the bound values.
	Values() []any
}

// Iter iterates over query results, fetching pages on demand.
type Iter interface {
	// Scan copies the columns of the next row into dest.
	// Returns false when there are no more rows or an error occurred.
	Scan(dest ...any) bool

	// MapScan copies the next row into m, keyed by column name.
	// Returns false when there are no more rows or an error occurred.
	MapScan(m map[string]any) bool

	// SliceMap reads all remaining rows.
	SliceMap() ([]map[string]any, error)

	// NumRows returns the number of rows in the current page.
	NumRows() int

	// Columns returns metadata about the columns in the result set.
	Columns() []ColumnInfo

	// Close releases the iterator and returns the first error encountered.
	Close() error
}

// ColumnInfo describes a result column.
type ColumnInfo struct {
	Keyspace string
	Table    string
	Name     string
	TypeInfo any
}
