// Package dbtest provides a migrated in-memory SQLite database for store tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"samiti/internal/platform/database/migrate"
)

// NewSQLite opens a private in-memory database with foreign keys enforced and
// the full schema applied. It is closed when the test ends.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrate.SQLite(context.Background(), db))
	return db
}
