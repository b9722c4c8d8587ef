package cassandra

import (
	"context"
	"errors"
	"strings"

	"github.com/arloliu/vdba"
	"github.com/arloliu/vdba/events"
	"github.com/arloliu/vdba/types"
)

// Database is a keyspace with schema operations and a query engine.
//
// A Database is obtained from Connection.Database and is only valid while
// the connection stays open.
type Database struct {
	conn    *Connection
	name    string
	engine  *engine
	catalog catalog
}

var _ vdba.Database = (*Database)(nil)

func newDatabase(conn *Connection, name string) *Database {
	var cat catalog = schemaCatalog{}
	if conn.driver.config.LegacySchema {
		cat = legacyCatalog{}
	}

	return &Database{
		conn:    conn,
		name:    name,
		engine:  conn.newEngine(),
		catalog: cat,
	}
}

// Name returns the keyspace name.
func (d *Database) Name() string {
	return d.name
}

// Connection returns the owning connection.
func (d *Database) Connection() vdba.Connection {
	return d.conn
}

// ----------------------
// Tables
// ----------------------

// CreateTable creates a table.
//
// Columns are rendered in order. The primary key is either one column with
// PrimaryKey set, or opts.PartitionKey plus optional opts.ClusteringKey.
//
// Parameters:
//   - ctx: Context for the statement
//   - name: Table name
//   - columns: Ordered column definitions
//   - opts: Optional table options (nil for none)
//
// Returns:
//   - error: *types.ConfigurationError for invalid input (no statement is sent),
//     *types.ExecutionError if the server rejects the statement
//
// Example:
//
//	err := db.CreateTable(ctx, "events", []vdba.Column{
//	    {Name: "day", Type: "date"},
//	    {Name: "ts", Type: "timestamp"},
//	    {Name: "payload", Type: "text"},
//	}, &vdba.TableOptions{
//	    IfNotExists:   true,
//	    PartitionKey:  []string{"day"},
//	    ClusteringKey: []string{"ts"},
//	})
func (d *Database) CreateTable(ctx context.Context, name string, columns []vdba.Column, opts *vdba.TableOptions) error {
	stmt, err := createTableCQL(name, columns, opts)
	if err != nil {
		return err
	}

	return d.applySchema(ctx, stmt, events.TableCreated, name, name)
}

// DropTable drops a table if it exists.
func (d *Database) DropTable(ctx context.Context, name string) error {
	stmt, err := dropTableCQL(name)
	if err != nil {
		return err
	}

	return d.applySchema(ctx, stmt, events.TableDropped, name, name)
}

// HasTable reports whether the table exists in the keyspace.
func (d *Database) HasTable(ctx context.Context, name string) (bool, error) {
	if err := checkTableName(name); err != nil {
		return false, err
	}

	n, err := d.catalog.countTables(ctx, d.engine, d.name, []string{name})
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

// HasTables reports whether every named table exists.
//
// Names are not deduplicated: asking for the same table twice yields false.
// An empty request is vacuously true and sends no query.
func (d *Database) HasTables(ctx context.Context, names ...string) (bool, error) {
	if len(names) == 0 {
		return true, nil
	}
	for _, name := range names {
		if err := checkTableName(name); err != nil {
			return false, err
		}
	}

	n, err := d.catalog.countTables(ctx, d.engine, d.name, names)
	if err != nil {
		return false, err
	}

	return n == len(names), nil
}

// FindTable returns the table handle, or nil if the table does not exist.
//
// The handle carries the name as Cassandra stores it: unquoted identifiers
// are case-insensitive and folded to lowercase, so FindTable("Users") names "users".
func (d *Database) FindTable(ctx context.Context, name string) (vdba.Table, error) {
	table, err := d.findTable(ctx, name)
	if err != nil || table == nil {
		return nil, err
	}

	return table, nil
}

func (d *Database) findTable(ctx context.Context, name string) (*Table, error) {
	ok, err := d.HasTable(ctx, name)
	if err != nil || !ok {
		return nil, err
	}

	return &Table{db: d, name: strings.ToLower(name)}, nil
}

// Tables lists the tables of the keyspace.
func (d *Database) Tables(ctx context.Context) ([]string, error) {
	return d.catalog.tableNames(ctx, d.engine, d.name)
}

// ----------------------
// Indexes
// ----------------------

// CreateIndex creates a secondary index on a table column.
//
// Parameters:
//   - ctx: Context for the statement
//   - table: Indexed table
//   - index: Index name
//   - column: Indexed column
//   - opts: Optional index options (nil for none)
//
// Returns:
//   - error: *types.ConfigurationError for invalid input, *types.ExecutionError
//     if the server rejects the statement
func (d *Database) CreateIndex(ctx context.Context, table, index, column string, opts *vdba.IndexOptions) error {
	stmt, err := createIndexCQL(table, index, column, opts)
	if err != nil {
		return err
	}

	return d.applySchema(ctx, stmt, events.IndexCreated, index, table)
}

// DropIndex drops an index. A missing index is not an error.
func (d *Database) DropIndex(ctx context.Context, index string) error {
	stmt, err := dropIndexCQL(index)
	if err != nil {
		return err
	}

	err = d.engine.run(ctx, stmt)
	if err != nil {
		var execErr *types.ExecutionError
		if errors.As(err, &execErr) && isIndexNotFound(execErr.Cause, d.name, index) {
			d.conn.driver.config.Logger.Debug("index already absent", "keyspace", d.name, "index", index, "error", err)
			return nil
		}

		return err
	}

	d.schemaChanged(ctx, events.IndexDropped, index, "", stmt)

	return nil
}

// HasIndex reports whether the index exists in the keyspace.
func (d *Database) HasIndex(ctx context.Context, index string) (bool, error) {
	info, err := d.lookupIndex(ctx, index)
	if err != nil {
		return false, err
	}

	return info != nil, nil
}

// FindIndex returns the index handle, or nil if the index does not exist.
//
// The owning table is resolved with FindTable; if it vanished in between,
// the index is reported as absent. Index and table names are reported in
// their stored lowercase form.
func (d *Database) FindIndex(ctx context.Context, index string) (vdba.Index, error) {
	info, err := d.lookupIndex(ctx, index)
	if err != nil || info == nil {
		return nil, err
	}

	table, err := d.findTable(ctx, info.Table)
	if err != nil || table == nil {
		return nil, err
	}

	return &Index{
		table:   table,
		name:    info.Name,
		kind:    info.Kind,
		columns: info.Columns,
	}, nil
}

func (d *Database) lookupIndex(ctx context.Context, index string) (*indexInfo, error) {
	if err := checkIndexName(index); err != nil {
		return nil, err
	}

	infos, err := d.catalog.indexes(ctx, d.engine, d.name)
	if err != nil {
		return nil, err
	}

	for i := range infos {
		if strings.EqualFold(infos[i].Name, index) {
			return &infos[i], nil
		}
	}

	return nil, nil
}

// ----------------------
// Queries
// ----------------------

// Run executes a statement with the write consistency.
//
// Returns:
//   - error: types.ErrNotConnected if the connection is not open,
//     *types.ExecutionError if the statement fails
func (d *Database) Run(ctx context.Context, stmt string, args ...any) error {
	return d.engine.run(ctx, stmt, args...)
}

// Find executes a query with the read consistency and collects every row.
func (d *Database) Find(ctx context.Context, stmt string, args ...any) (vdba.Result, error) {
	res, err := d.engine.find(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// FindOne executes a query with the read consistency and returns its first row.
//
// Iteration stops after the first row. An empty result returns (nil, nil).
// An error is only reported if it happened before any row was delivered.
func (d *Database) FindOne(ctx context.Context, stmt string, args ...any) (vdba.Row, error) {
	return d.engine.findOne(ctx, stmt, args...)
}

// FindOneFunc is the callback form of FindOne. fn is called exactly once.
func (d *Database) FindOneFunc(ctx context.Context, fn func(vdba.Row, error), stmt string, args ...any) {
	d.engine.findOneFunc(ctx, fn, stmt, args...)
}

// Each streams rows to fn until fn returns false or the rows are exhausted.
//
// Rows are fetched page by page; each row is a fresh map that fn may keep.
func (d *Database) Each(ctx context.Context, fn func(vdba.Row) bool, stmt string, args ...any) error {
	return d.engine.eachRow(ctx, types.OpEach, fn, stmt, args...)
}

// ----------------------
// Schema changes
// ----------------------

func (d *Database) applySchema(ctx context.Context, stmt string, kind events.Kind, object, table string) error {
	d.conn.driver.config.Logger.Debug("applying schema change", "keyspace", d.name, "statement", stmt)

	if err := d.engine.run(ctx, stmt); err != nil {
		return err
	}

	d.schemaChanged(ctx, kind, object, table, stmt)

	return nil
}

// schemaChanged records an applied DDL statement and publishes it if a
// publisher is configured. Publish failures are logged and never returned.
func (d *Database) schemaChanged(ctx context.Context, kind events.Kind, object, table, stmt string) {
	cfg := d.conn.driver.config
	cfg.Metrics.IncSchemaChange(string(kind))

	if cfg.Publisher == nil {
		return
	}

	event := events.NewEvent(kind, d.name, object, table, stmt)
	if err := cfg.Publisher.Publish(ctx, event); err != nil {
		cfg.Logger.Warn("failed to publish schema event",
			"kind", kind, "keyspace", d.name, "object", object, "error", err)
	}
}
