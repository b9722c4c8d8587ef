package cassandra

import "github.com/arloliu/vdba"

// Table is a handle on an existing table.
type Table struct {
	db   *Database
	name string
}

var _ vdba.Table = (*Table)(nil)

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Database returns the owning database.
func (t *Table) Database() vdba.Database {
	return t.db
}

// Index is a handle on an existing secondary index.
type Index struct {
	table   *Table
	name    string
	kind    string
	columns []string
}

var _ vdba.Index = (*Index)(nil)

// Name returns the index name.
func (i *Index) Name() string {
	return i.name
}

// Table returns the indexed table.
func (i *Index) Table() vdba.Table {
	return i.table
}

// Columns returns the indexed columns.
func (i *Index) Columns() []string {
	return i.columns
}

// Kind returns the index kind as reported by the server (e.g. "COMPOSITES", "CUSTOM").
func (i *Index) Kind() string {
	return i.kind
}
