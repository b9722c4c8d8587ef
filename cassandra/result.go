package cassandra

import "github.com/arloliu/vdba"

// Result is a fully materialized query result.
type Result struct {
	rows []vdba.Row
}

var _ vdba.Result = (*Result)(nil)

// Rows returns the rows in server order.
func (r *Result) Rows() []vdba.Row {
	return r.rows
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.rows)
}
