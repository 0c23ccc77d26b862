package postgres

import (
	"context"
	"database/sql/driver"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nutridb/usda-mcp/domain/query"
)

// Executor runs statements against a PostgreSQL database. The
// connection pool is established lazily on the first statement and
// shared by every subsequent one. A failed connection attempt is not
// retried; the error is returned for that statement and all later
// ones.
type Executor struct {
	connect func(context.Context) (*pgxpool.Pool, error)

	once sync.Once
	pool *pgxpool.Pool
	err  error
}

var _ query.Runner = (*Executor)(nil)

// NewExecutor creates an executor that connects with the given config
// on first use.
func NewExecutor(cfg Config, opts ...ConfigOption) *Executor {
	return &Executor{
		connect: func(ctx context.Context) (*pgxpool.Pool, error) {
			return NewPool(ctx, cfg, opts...)
		},
	}
}

// NewExecutorWithPool creates an executor around an existing pool.
// The caller retains ownership of the pool.
func NewExecutorWithPool(pool *pgxpool.Pool) *Executor {
	return &Executor{
		connect: func(context.Context) (*pgxpool.Pool, error) {
			return pool, nil
		},
	}
}

// Query executes a statement and collects the full result set.
func (e *Executor) Query(ctx context.Context, stmt query.Statement) (query.Result, error) {
	pool, err := e.acquire(ctx)
	if err != nil {
		return query.Result{}, &query.QueryError{Op: stmt.Op, Err: err}
	}

	rows, err := pool.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return query.Result{}, &query.QueryError{Op: stmt.Op, Err: err}
	}
	defer rows.Close()

	return collectRows(stmt.Op, rows)
}

// Close releases the connection pool if one was established.
func (e *Executor) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

func (e *Executor) acquire(ctx context.Context) (*pgxpool.Pool, error) {
	e.once.Do(func() {
		e.pool, e.err = e.connect(ctx)
	})
	return e.pool, e.err
}

// collectRows drains a result set into a query.Result.
func collectRows(op string, rows pgx.Rows) (query.Result, error) {
	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
	}

	var collected []query.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return query.Result{}, &query.QueryError{Op: op, Err: err}
		}
		row := make(query.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		collected = append(collected, row)
	}
	if err := rows.Err(); err != nil {
		return query.Result{}, &query.QueryError{Op: op, Err: err}
	}

	return query.Result{Columns: columns, Rows: collected}, nil
}

// normalizeValue converts driver-specific values into plain Go types
// so rendering does not depend on pgtype internals.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case driver.Valuer:
		unwrapped, err := val.Value()
		if err != nil {
			return v
		}
		return normalizeValue(unwrapped)
	default:
		return v
	}
}
