package tx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE item (name TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func count(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM item`).Scan(&n))
	return n
}

func insert(ctx context.Context, db *sql.DB, name string) error {
	_, err := Conn(ctx, db).ExecContext(ctx, `INSERT INTO item (name) VALUES ($1)`, name)
	return err
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db := openDB(t)
		err := Run(ctx, db, func(ctx context.Context) error {
			_, ok := From(ctx)
			assert.True(t, ok)
			return insert(ctx, db, "a")
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count(t, db))
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db := openDB(t)
		boom := errors.New("boom")
		err := Run(ctx, db, func(ctx context.Context) error {
			require.NoError(t, insert(ctx, db, "a"))
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, count(t, db))
	})

	t.Run("nested run joins the outer transaction", func(t *testing.T) {
		db := openDB(t)
		boom := errors.New("boom")
		err := Run(ctx, db, func(ctx context.Context) error {
			outer, _ := From(ctx)
			require.NoError(t, Run(ctx, db, func(ctx context.Context) error {
				inner, _ := From(ctx)
				assert.Same(t, outer, inner)
				return insert(ctx, db, "a")
			}))
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, count(t, db))
	})

	t.Run("cancelled context never begins", func(t *testing.T) {
		db := openDB(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		called := false
		err := Run(cancelled, db, func(context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestConnWithoutTransaction(t *testing.T) {
	db := openDB(t)
	assert.Same(t, db, Conn(context.Background(), db))
}
