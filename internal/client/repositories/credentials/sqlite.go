package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/QodeSites/myQodeApp-sub000/internal/dbx"
)

const (
	keyAccess  = "access"
	keyRefresh = "refresh"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) SetAccess(ctx context.Context, token string) error {
	return r.set(ctx, keyAccess, token)
}

func (r *SQLiteRepository) GetAccess(ctx context.Context) (string, error) {
	return r.get(ctx, keyAccess)
}

func (r *SQLiteRepository) SetRefresh(ctx context.Context, token string) error {
	return r.set(ctx, keyRefresh, token)
}

func (r *SQLiteRepository) GetRefresh(ctx context.Context) (string, error) {
	return r.get(ctx, keyRefresh)
}

// Clear removes both tokens in one statement, so it cannot leave a partial
// pair behind. Deleting from an empty table is a no-op.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
