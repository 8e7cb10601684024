package selection

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func sampleSelection() models.ActiveSelection {
	return models.ActiveSelection{
		ClientCode:  "QC001",
		ClientID:    "17",
		Email:       "holder@example.com",
		Mobile:      "+919900112233",
		DisplayName: "A. Holder",
		HolderName:  "A. Holder",
		AccountType: "PMS",
	}
}

func TestSQLiteRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.Save(ctx, sampleSelection()))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, sampleSelection(), *got)
}

func TestSQLiteRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.Save(ctx, sampleSelection()))

	next := sampleSelection()
	next.ClientCode = "QC002"
	next.ClientID = "18"
	next.HolderName = ""
	require.NoError(t, repo.Save(ctx, next))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, next, *got)
}

func TestSQLiteRepository_LoadEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteRepository_PartialSelectionIsAbsent(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	// only one identity component present: must be treated as no selection
	_, err := db.Exec(`INSERT INTO session (key, value) VALUES ('selectedClientCode', 'QC001')`)
	require.NoError(t, err)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteRepository_ClearRemovesAllKeys(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	require.NoError(t, repo.Save(ctx, sampleSelection()))
	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx)) // idempotent

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&n))
	require.Zero(t, n)
}
