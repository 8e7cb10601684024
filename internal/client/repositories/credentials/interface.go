// Package credentials implements durable storage for the access/refresh
// token pair. It is the single source of truth for "is a token present".
package credentials

import "context"

// Repository is the durable credential store contract.
//
// Get operations return empty strings (not an error) when no token is
// stored. Clear removes both tokens, is idempotent, and never fails on an
// already-empty store.
type Repository interface {
	SetAccess(ctx context.Context, token string) error
	GetAccess(ctx context.Context) (string, error)
	SetRefresh(ctx context.Context, token string) error
	GetRefresh(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
