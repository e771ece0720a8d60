package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/scoper/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when the
// test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
