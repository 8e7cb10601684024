// Package storage opens the local SQLite database, applies the embedded
// migrations, and wires up the repositories built on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/migrations"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/repositories/credentials"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/repositories/selection"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Credentials credentials.Repository
	Selection   selection.Repository
	DB          *sql.DB
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Credentials: credentials.NewSQLiteRepository(db),
		Selection:   selection.NewSQLiteRepository(db),
		DB:          db,
	}, nil
}
