package credentials

import (
	"context"
	"time"

	"github.com/QodeSites/myQodeApp-sub000/internal/logging"
)

// storageTimeout bounds every storage operation so a wedged database file
// can never block the interactive flow.
const storageTimeout = 2 * time.Second

// Store wraps a Repository with the failure semantics the rest of the client
// relies on: every operation is bounded by a short timeout, and storage
// errors are logged and swallowed. A failed write means the credential lives
// only in memory until the next restart; a failed read reports "no token".
type Store struct {
	repo Repository
	log  logging.Logger
}

func NewStore(repo Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log.With("component", "credentials")}
}

func (s *Store) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storageTimeout)
}

func (s *Store) SetAccess(ctx context.Context, token string) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	if err := s.repo.SetAccess(ctx, token); err != nil {
		s.log.Warn(ctx, "saving access token failed", "error", err)
	}
}

func (s *Store) Access(ctx context.Context) string {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	token, err := s.repo.GetAccess(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading access token failed", "error", err)
		return ""
	}
	return token
}

func (s *Store) SetRefresh(ctx context.Context, token string) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	if err := s.repo.SetRefresh(ctx, token); err != nil {
		s.log.Warn(ctx, "saving refresh token failed", "error", err)
	}
}

func (s *Store) Refresh(ctx context.Context) string {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	token, err := s.repo.GetRefresh(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading refresh token failed", "error", err)
		return ""
	}
	return token
}

func (s *Store) Clear(ctx context.Context) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	if err := s.repo.Clear(ctx); err != nil {
		s.log.Warn(ctx, "clearing credentials failed", "error", err)
	}
}
