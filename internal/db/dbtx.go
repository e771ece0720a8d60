package db

import (
	"context"
	"database/sql"
)

// DBTX is what the project, category, task and app-state repositories run
// their queries against. The services hand them the *sql.DB for single
// statements and the *sql.Tx from WithinTx for grouped writes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
