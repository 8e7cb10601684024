package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.SetAccess(ctx, "at-1"))
	require.NoError(t, repo.SetRefresh(ctx, "rt-1"))

	access, err := repo.GetAccess(ctx)
	require.NoError(t, err)
	require.Equal(t, "at-1", access)

	refresh, err := repo.GetRefresh(ctx)
	require.NoError(t, err)
	require.Equal(t, "rt-1", refresh)
}

func TestSQLiteRepository_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.SetAccess(ctx, "old"))
	require.NoError(t, repo.SetAccess(ctx, "new"))

	access, err := repo.GetAccess(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", access)
}

func TestSQLiteRepository_MissingTokenIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	access, err := repo.GetAccess(ctx)
	require.NoError(t, err)
	require.Empty(t, access)
}

func TestSQLiteRepository_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.SetAccess(ctx, "at-1"))
	require.NoError(t, repo.SetRefresh(ctx, "rt-1"))

	require.NoError(t, repo.Clear(ctx))
	// clearing an already-empty store must not fail
	require.NoError(t, repo.Clear(ctx))

	access, err := repo.GetAccess(ctx)
	require.NoError(t, err)
	require.Empty(t, access)

	refresh, err := repo.GetRefresh(ctx)
	require.NoError(t, err)
	require.Empty(t, refresh)
}
