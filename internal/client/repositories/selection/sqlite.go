package selection

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/models"
	"github.com/QodeSites/myQodeApp-sub000/internal/dbx"
)

// Storage keys. The full set is always written or deleted together.
const (
	keyClientCode = "selectedClientCode"
	keyClientID   = "selectedClientId"
	keyEmail      = "selectedEmailClient"
	keyMobile     = "selectedClientMobile"
	keyName       = "selectedClientName"
	keyType       = "selectedClientType"
	keyHolderName = "selectedClientHolderName"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save overwrites the stored selection with sel. All keys are written inside
// one transaction so a crash cannot leave a partial selection behind.
func (r *SQLiteRepository) Save(ctx context.Context, sel models.ActiveSelection) error {
	pairs := map[string]string{
		keyClientCode: sel.ClientCode,
		keyClientID:   sel.ClientID,
		keyEmail:      sel.Email,
		keyMobile:     sel.Mobile,
		keyName:       sel.DisplayName,
		keyType:       sel.AccountType,
		keyHolderName: sel.HolderName,
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range pairs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO session (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				return fmt.Errorf("failed to set session[%s]: %w", key, err)
			}
		}
		return nil
	})
}

// Load reads the stored selection. A selection missing either identity
// component is treated as absent.
func (r *SQLiteRepository) Load(ctx context.Context) (*models.ActiveSelection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	if values[keyClientCode] == "" || values[keyClientID] == "" {
		return nil, nil
	}

	return &models.ActiveSelection{
		ClientCode:  values[keyClientCode],
		ClientID:    values[keyClientID],
		Email:       values[keyEmail],
		Mobile:      values[keyMobile],
		DisplayName: values[keyName],
		AccountType: values[keyType],
		HolderName:  values[keyHolderName],
	}, nil
}

// Clear removes the whole selection in one statement.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
