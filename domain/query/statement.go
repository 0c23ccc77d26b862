// Package query builds and represents the SQL statements behind each
// operation. Builders own all SQL text and validate caller arguments;
// everything a caller supplies travels as a bound parameter.
package query

import "context"

// Statement is one executable SQL statement with its bound arguments. Op
// names the operation that produced it and travels into error and telemetry
// context.
type Statement struct {
	Op   string
	SQL  string
	Args []any
}

// Row is one result row keyed by column name.
type Row map[string]any

// Result is an ordered result set. Columns preserves the wire order of the
// result columns; Rows preserves row order as returned by the database.
type Result struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the result has no rows.
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}

// Runner executes statements against a database. Implementations wrap
// execution failures in QueryError.
type Runner interface {
	Query(ctx context.Context, stmt Statement) (Result, error)
}
