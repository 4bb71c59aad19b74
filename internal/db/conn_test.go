package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("creates directory and database", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "subdir", "test.db")

		ctx := context.Background()
		store, err := NewStore(ctx, dbPath)
		require.NoError(t, err)
		defer store.Close()

		_, err = os.Stat(dbPath)
		assert.NoError(t, err)

		var result int
		err = store.QueryRowContext(ctx, "SELECT 1").Scan(&result)
		assert.NoError(t, err)
		assert.Equal(t, 1, result)
	})

	t.Run("sets WAL mode", func(t *testing.T) {
		ctx := context.Background()
		store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer store.Close()

		var mode string
		err = store.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode)
		assert.NoError(t, err)
		assert.Equal(t, "wal", mode)
	})
}

func TestMigrate(t *testing.T) {
	t.Run("creates tables", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()

		for _, table := range []string{"vision_cache", "cost_ledger", "matches"} {
			var name string
			err := store.QueryRowContext(ctx,
				"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
			).Scan(&name)
			assert.NoError(t, err, "table %s", table)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		store := newTestStore(t)
		assert.NoError(t, store.Migrate(context.Background()))
	})
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE x (id INT);\n\n-- +migrate Down\nDROP TABLE x;"
	assert.Equal(t, "CREATE TABLE x (id INT);", extractUpMigration(content))

	noMarkers := "CREATE TABLE y (id INT);"
	assert.Equal(t, noMarkers, extractUpMigration(noMarkers))
}
