package cassandra

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arloliu/vdba"
	"github.com/arloliu/vdba/types"
)

// identifierRegex matches names that are valid unquoted CQL identifiers.
var identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func checkIdentifier(field, name string) error {
	if !identifierRegex.MatchString(name) {
		return &types.ConfigurationError{
			Field: field,
			Cause: fmt.Errorf("%w: %q", types.ErrInvalidIdentifier, name),
		}
	}

	return nil
}

func checkTableName(name string) error {
	if name == "" {
		return &types.ConfigurationError{Field: "table", Cause: types.ErrTableNameExpected}
	}

	return checkIdentifier("table", name)
}

func checkIndexName(name string) error {
	if name == "" {
		return &types.ConfigurationError{Field: "index", Cause: types.ErrIndexNameExpected}
	}

	return checkIdentifier("index", name)
}

// createTableCQL renders a CREATE TABLE statement.
//
// The primary key is either a single inline column marker or the composite
// key described by opts, never both. Validation runs before anything is rendered.
func createTableCQL(name string, columns []vdba.Column, opts *vdba.TableOptions) (string, error) {
	if err := checkTableName(name); err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", &types.ConfigurationError{Field: "columns", Cause: types.ErrColumnsExpected}
	}
	if opts == nil {
		opts = &vdba.TableOptions{}
	}

	declared := make(map[string]struct{}, len(columns))
	inline := ""
	for _, col := range columns {
		if err := checkIdentifier("column", col.Name); err != nil {
			return "", err
		}
		if strings.TrimSpace(col.Type) == "" {
			return "", &types.ConfigurationError{Field: "column " + col.Name, Cause: types.ErrColumnTypeExpected}
		}

		// Unquoted identifiers are case-insensitive in CQL.
		folded := strings.ToLower(col.Name)
		if _, dup := declared[folded]; dup {
			return "", &types.ConfigurationError{
				Field: "columns",
				Cause: fmt.Errorf("%w: %q", types.ErrDuplicateColumn, col.Name),
			}
		}
		declared[folded] = struct{}{}

		if col.PrimaryKey {
			if inline != "" {
				return "", &types.ConfigurationError{
					Field: "columns",
					Cause: fmt.Errorf("%w: %q and %q are both marked as primary key", types.ErrConflictingPrimaryKey, inline, col.Name),
				}
			}
			inline = col.Name
		}
	}

	composite := len(opts.PartitionKey) > 0 || len(opts.ClusteringKey) > 0
	if inline != "" && composite {
		return "", &types.ConfigurationError{
			Field: "partitionKey",
			Cause: fmt.Errorf("%w: column %q is marked inline and a composite key is also given", types.ErrConflictingPrimaryKey, inline),
		}
	}
	if len(opts.ClusteringKey) > 0 && len(opts.PartitionKey) == 0 {
		return "", &types.ConfigurationError{
			Field: "clusteringKey",
			Cause: fmt.Errorf("%w: clustering columns require a partition key", types.ErrConflictingPrimaryKey),
		}
	}

	used := make(map[string]struct{}, len(opts.PartitionKey)+len(opts.ClusteringKey))
	for _, group := range []struct {
		field string
		names []string
	}{
		{"partitionKey", opts.PartitionKey},
		{"clusteringKey", opts.ClusteringKey},
	} {
		for _, key := range group.names {
			folded := strings.ToLower(key)
			if _, ok := declared[folded]; !ok {
				return "", &types.ConfigurationError{
					Field: group.field,
					Cause: fmt.Errorf("%w: %q", types.ErrUnknownColumn, key),
				}
			}
			if _, dup := used[folded]; dup {
				return "", &types.ConfigurationError{
					Field: group.field,
					Cause: fmt.Errorf("%w: column %q appears twice in the key", types.ErrConflictingPrimaryKey, key),
				}
			}
			used[folded] = struct{}{}
		}
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if opts.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(name)
	sb.WriteString(" (")

	for i, col := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col.Name)
		sb.WriteByte(' ')
		sb.WriteString(strings.TrimSpace(col.Type))
		if col.PrimaryKey {
			sb.WriteString(" PRIMARY KEY")
		}
	}

	if composite {
		sb.WriteString(", PRIMARY KEY (")
		sb.WriteString(partitionGroup(opts.PartitionKey))
		for _, key := range opts.ClusteringKey {
			sb.WriteString(", ")
			sb.WriteString(key)
		}
		sb.WriteByte(')')
	}
	sb.WriteByte(')')

	if props := strings.TrimSpace(opts.Properties); props != "" {
		sb.WriteString(" WITH ")
		sb.WriteString(props)
	}

	return sb.String(), nil
}

// partitionGroup renders a single partition column bare and several parenthesized.
func partitionGroup(keys []string) string {
	if len(keys) == 1 {
		return keys[0]
	}

	return "(" + strings.Join(keys, ", ") + ")"
}

func dropTableCQL(name string) (string, error) {
	if err := checkTableName(name); err != nil {
		return "", err
	}

	return "DROP TABLE IF EXISTS " + name, nil
}

// createIndexCQL renders a CREATE INDEX statement on one column.
func createIndexCQL(table, index, column string, opts *vdba.IndexOptions) (string, error) {
	if err := checkTableName(table); err != nil {
		return "", err
	}
	if err := checkIndexName(index); err != nil {
		return "", err
	}
	if column == "" {
		return "", &types.ConfigurationError{Field: "column", Cause: types.ErrColumnsExpected}
	}
	if err := checkIdentifier("column", column); err != nil {
		return "", err
	}
	if opts == nil {
		opts = &vdba.IndexOptions{}
	}

	target := column
	switch opts.Target {
	case "":
	case vdba.IndexValues, vdba.IndexKeys, vdba.IndexEntries, vdba.IndexFull:
		target = strings.ToUpper(string(opts.Target)) + "(" + column + ")"
	default:
		return "", &types.ConfigurationError{
			Field: "target",
			Cause: fmt.Errorf("%w: %q", types.ErrInvalidIndexTarget, opts.Target),
		}
	}

	var sb strings.Builder
	sb.WriteString("CREATE INDEX ")
	if opts.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(index)
	sb.WriteString(" ON ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(target)
	sb.WriteByte(')')

	return sb.String(), nil
}

func dropIndexCQL(index string) (string, error) {
	if err := checkIndexName(index); err != nil {
		return "", err
	}

	return "DROP INDEX " + index, nil
}

// indexNotFoundMarkers are fragments of the messages Cassandra and ScyllaDB
// return when DROP INDEX names an index that does not exist. Cassandra 3.0+
// and ScyllaDB report "Index '<name>' could not be found in any of the
// tables of keyspace '<ks>'"; older ScyllaDB releases report
// "Cannot drop non existing index '<name>'".
var indexNotFoundMarkers = []string{
	"could not be found in any of the tables of keyspace",
	"cannot drop non existing index",
}

// isIndexNotFound reports whether err is the server rejecting DROP INDEX
// because the named index is missing. The message must name the index,
// bare or qualified by keyspace.
func isIndexNotFound(err error, keyspace, index string) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	bare := "'" + strings.ToLower(index) + "'"
	qualified := "'" + strings.ToLower(keyspace) + "." + strings.ToLower(index) + "'"
	if !strings.Contains(msg, bare) && !strings.Contains(msg, qualified) {
		return false
	}

	for _, marker := range indexNotFoundMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
