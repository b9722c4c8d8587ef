package cassandra

import (
	"context"
	"fmt"
	"strings"
)

// rowFinder runs metadata queries.
type rowFinder interface {
	find(ctx context.Context, stmt string, args ...any) (*Result, error)
}

// indexInfo is one secondary index as described by the schema tables.
type indexInfo struct {
	Name    string
	Table   string
	Kind    string
	Columns []string
}

// catalog reads schema metadata for a keyspace.
//
// Table names are compared in lowercase, the form Cassandra stores unquoted identifiers in.
type catalog interface {
	// countTables returns how many of names exist. Duplicates in names are
	// not collapsed, so a repeated name can never be fully matched.
	countTables(ctx context.Context, f rowFinder, keyspace string, names []string) (int, error)

	// tableNames lists every table of the keyspace.
	tableNames(ctx context.Context, f rowFinder, keyspace string) ([]string, error)

	// indexes lists every secondary index of the keyspace.
	indexes(ctx context.Context, f rowFinder, keyspace string) ([]indexInfo, error)
}

// schemaCatalog reads the system_schema keyspace of Cassandra 3.0+ and ScyllaDB.
type schemaCatalog struct{}

func (schemaCatalog) countTables(ctx context.Context, f rowFinder, keyspace string, names []string) (int, error) {
	return countByName(ctx, f, "SELECT table_name FROM system_schema.tables WHERE keyspace_name = ? AND table_name", keyspace, names)
}

func (schemaCatalog) tableNames(ctx context.Context, f rowFinder, keyspace string) ([]string, error) {
	return listColumn(ctx, f, "SELECT table_name FROM system_schema.tables WHERE keyspace_name = ?", "table_name", keyspace)
}

func (schemaCatalog) indexes(ctx context.Context, f rowFinder, keyspace string) ([]indexInfo, error) {
	res, err := f.find(ctx, "SELECT table_name, index_name, kind, options FROM system_schema.indexes WHERE keyspace_name = ?", keyspace)
	if err != nil {
		return nil, err
	}

	infos := make([]indexInfo, 0, res.Len())
	for _, row := range res.Rows() {
		var target string
		if options, ok := row["options"].(map[string]string); ok {
			target = options["target"]
		}
		infos = append(infos, indexInfo{
			Name:    stringValue(row["index_name"]),
			Table:   stringValue(row["table_name"]),
			Kind:    stringValue(row["kind"]),
			Columns: parseIndexTarget(target),
		})
	}

	return infos, nil
}

// legacyCatalog reads the system.schema_* tables of Cassandra 2.x.
type legacyCatalog struct{}

func (legacyCatalog) countTables(ctx context.Context, f rowFinder, keyspace string, names []string) (int, error) {
	return countByName(ctx, f, "SELECT columnfamily_name FROM system.schema_columnfamilies WHERE keyspace_name = ? AND columnfamily_name", keyspace, names)
}

func (legacyCatalog) tableNames(ctx context.Context, f rowFinder, keyspace string) ([]string, error) {
	return listColumn(ctx, f, "SELECT columnfamily_name FROM system.schema_columnfamilies WHERE keyspace_name = ?", "columnfamily_name", keyspace)
}

func (legacyCatalog) indexes(ctx context.Context, f rowFinder, keyspace string) ([]indexInfo, error) {
	res, err := f.find(ctx, "SELECT columnfamily_name, column_name, index_name, index_type FROM system.schema_columns WHERE keyspace_name = ?", keyspace)
	if err != nil {
		return nil, err
	}

	infos := make([]indexInfo, 0)
	for _, row := range res.Rows() {
		name := stringValue(row["index_name"])
		if name == "" {
			continue
		}
		infos = append(infos, indexInfo{
			Name:    name,
			Table:   stringValue(row["columnfamily_name"]),
			Kind:    stringValue(row["index_type"]),
			Columns: []string{stringValue(row["column_name"])},
		})
	}

	return infos, nil
}

// countByName completes prefix with "= ?" for one name or "IN ?" for several
// and returns the number of matching rows.
func countByName(ctx context.Context, f rowFinder, prefix, keyspace string, names []string) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}

	lowered := make([]string, len(names))
	for i, name := range names {
		lowered[i] = strings.ToLower(name)
	}

	var (
		res *Result
		err error
	)
	if len(lowered) == 1 {
		res, err = f.find(ctx, prefix+" = ?", keyspace, lowered[0])
	} else {
		res, err = f.find(ctx, prefix+" IN ?", keyspace, lowered)
	}
	if err != nil {
		return 0, err
	}

	return res.Len(), nil
}

func listColumn(ctx context.Context, f rowFinder, stmt, column, keyspace string) ([]string, error) {
	res, err := f.find(ctx, stmt, keyspace)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, res.Len())
	for _, row := range res.Rows() {
		names = append(names, stringValue(row[column]))
	}

	return names, nil
}

// parseIndexTarget extracts column names from a system_schema.indexes target
// such as "name", "keys(tags)", "\"Name\"" or "a,b".
func parseIndexTarget(target string) []string {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil
	}

	if open := strings.IndexByte(target, '('); open > 0 && strings.HasSuffix(target, ")") {
		switch strings.ToLower(target[:open]) {
		case "keys", "values", "entries", "full":
			target = target[open+1 : len(target)-1]
		}
	}

	parts := strings.Split(target, ",")
	columns := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) >= 2 && part[0] == '"' && part[len(part)-1] == '"' {
			part = strings.ReplaceAll(part[1:len(part)-1], `""`, `"`)
		}
		if part != "" {
			columns = append(columns, part)
		}
	}

	return columns
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case *string:
		if s == nil {
			return ""
		}
		return *s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
