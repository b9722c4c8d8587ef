package vdba

import (
	"context"

	"github.com/arloliu/vdba/types"
)

// Type aliases for convenience - re-export from types package.
type (
	Consistency      = types.Consistency
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

// Re-export consistency level constants for convenience.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	LocalOne    = types.LocalOne
)

// Driver creates connections to one kind of database.
//
// A driver is registered in a Registry under its name and aliases.
type Driver interface {
	// Name returns the primary registry name (e.g. "Cassandra").
	Name() string

	// Aliases returns alternative registry names (e.g. "C*").
	Aliases() []string

	// CreateConnection validates cfg and returns an unopened connection.
	//
	// No network I/O happens here: configuration errors surface immediately,
	// connection errors surface from Open.
	CreateConnection(cfg *Config) (Connection, error)

	// OpenConnection is CreateConnection followed by Open.
	OpenConnection(ctx context.Context, cfg *Config) (Connection, error)
}

// Connection is a handle on one database server or cluster.
//
// A connection starts unopened, is opened explicitly and can be closed.
// Server and Database handles are created on first access while open and
// invalidated by Close.
type Connection interface {
	// Open connects. It is a no-op when already connected.
	Open(ctx context.Context) error

	// Close disconnects. It is a no-op unless the connection is open.
	Close() error

	// Connected reports whether the connection can currently serve requests.
	// The value is recomputed on every call.
	Connected() bool

	// Server returns the server handle, or nil when not connected.
	Server() Server

	// Database returns the handle of the configured database, or nil when not connected.
	Database() Database

	// ReadConsistency returns the symbolic consistency used for reads.
	ReadConsistency() string

	// WriteConsistency returns the symbolic consistency used for writes.
	WriteConsistency() string
}

// Server describes the server a connection talks to.
type Server interface {
	// Host returns the first contact point.
	Host() string

	// Port returns the native protocol port.
	Port() int

	// Version returns the server release version.
	Version(ctx context.Context) (string, error)
}

// Database is a named database (a keyspace in Cassandra) with schema
// operations and a query engine.
type Database interface {
	// Name returns the database name.
	Name() string

	// Connection returns the owning connection.
	Connection() Connection

	// ----------------------
	// Tables
	// ----------------------

	// CreateTable creates a table from ordered column definitions.
	CreateTable(ctx context.Context, name string, columns []Column, opts *TableOptions) error

	// DropTable drops a table. Dropping a missing table succeeds.
	DropTable(ctx context.Context, name string) error

	// HasTable reports whether the table exists.
	HasTable(ctx context.Context, name string) (bool, error)

	// HasTables reports whether every named table exists.
	HasTables(ctx context.Context, names ...string) (bool, error)

	// FindTable returns the table handle, or nil when it does not exist.
	FindTable(ctx context.Context, name string) (Table, error)

	// Tables lists the names of all tables in the database.
	Tables(ctx context.Context) ([]string, error)

	// ----------------------
	// Indexes
	// ----------------------

	// CreateIndex creates a secondary index on one column of a table.
	CreateIndex(ctx context.Context, table, index, column string, opts *IndexOptions) error

	// DropIndex drops an index. Dropping a missing index succeeds.
	DropIndex(ctx context.Context, index string) error

	// HasIndex reports whether the index exists.
	HasIndex(ctx context.Context, index string) (bool, error)

	// FindIndex returns the index handle, or nil when it does not exist.
	FindIndex(ctx context.Context, index string) (Index, error)

	// ----------------------
	// Queries
	// ----------------------

	// Run executes a statement for its side effects.
	Run(ctx context.Context, stmt string, args ...any) error

	// Find executes a query and collects every row.
	Find(ctx context.Context, stmt string, args ...any) (Result, error)

	// FindOne executes a query and returns its first row, or nil when there is none.
	FindOne(ctx context.Context, stmt string, args ...any) (Row, error)

	// FindOneFunc is the callback form of FindOne: fn is called exactly once,
	// with the first row, or with the error if no row was delivered, or with
	// (nil, nil) for an empty result.
	FindOneFunc(ctx context.Context, fn func(Row, error), stmt string, args ...any)

	// Each streams rows to fn until fn returns false or the rows are exhausted.
	Each(ctx context.Context, fn func(Row) bool, stmt string, args ...any) error
}

// Table is a handle on an existing table.
type Table interface {
	// Name returns the table name as stored by the server. Unquoted
	// identifiers are case-insensitive, so a table created as "Users" is named "users".
	Name() string

	// Database returns the owning database.
	Database() Database
}

// Index is a handle on an existing secondary index.
type Index interface {
	// Name returns the index name as stored by the server (lowercase).
	Name() string

	// Table returns the indexed table, named in its stored lowercase form.
	Table() Table

	// Columns returns the indexed columns.
	Columns() []string
}

// Row is one result row keyed by column name.
type Row = map[string]any

// Result is an ordered, fully materialized set of rows.
type Result interface {
	// Rows returns the rows in server order.
	Rows() []Row

	// Len returns the number of rows.
	Len() int
}

// Column defines one table column.
type Column struct {
	// Name is the column name.
	Name string `yaml:"name"`

	// Type is the CQL type, e.g. "text", "int", "map<text, int>".
	Type string `yaml:"type"`

	// PrimaryKey marks the single-column primary key inline.
	// It cannot be combined with TableOptions.PartitionKey.
	PrimaryKey bool `yaml:"primaryKey"`
}

// TableOptions refines CreateTable.
type TableOptions struct {
	// IfNotExists makes creating an existing table a no-op.
	IfNotExists bool `yaml:"ifNotExists"`

	// PartitionKey lists the partition key columns in order.
	// In YAML a single column may be given as a scalar.
	PartitionKey Names `yaml:"partitionKey"`

	// ClusteringKey lists the clustering columns in order. Requires PartitionKey.
	ClusteringKey Names `yaml:"clusteringKey"`

	// Properties is appended verbatim as "WITH <Properties>",
	// e.g. "CLUSTERING ORDER BY (ts DESC) AND default_time_to_live = 3600".
	Properties string `yaml:"properties"`
}

// IndexTarget selects what part of a column an index covers.
type IndexTarget string

// Index targets. The zero value indexes the column itself (values for collections).
const (
	IndexValues  IndexTarget = "values"
	IndexKeys    IndexTarget = "keys"
	IndexEntries IndexTarget = "entries"
	IndexFull    IndexTarget = "full"
)

// IndexOptions refines CreateIndex.
type IndexOptions struct {
	// IfNotExists makes creating an existing index a no-op.
	IfNotExists bool `yaml:"ifNotExists"`

	// Target selects the indexed part of a collection column.
	Target IndexTarget `yaml:"target"`
}
