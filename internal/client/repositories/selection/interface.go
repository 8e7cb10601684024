// Package selection implements durable storage for the previously selected
// account, independent of the credential store.
package selection

import (
	"context"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/models"
)

// Repository persists the active selection between runs.
//
// Save and Clear write all selection keys together, never partially. Load
// returns (nil, nil) when no complete selection is stored.
type Repository interface {
	Save(ctx context.Context, sel models.ActiveSelection) error
	Load(ctx context.Context) (*models.ActiveSelection, error)
	Clear(ctx context.Context) error
}
