package repository

import (
	"context"

	"github.com/reshetovitsme/groupguard/internal/modules/modlog/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

const kind = "modlog"

// Storage implements Repository on top of a store backend
type Storage struct {
	entries *store.Collection[domain.Entry]
}

// NewStorage creates a store-backed moderation log
func NewStorage(backend store.Backend) Repository {
	return &Storage{entries: store.NewCollection[domain.Entry](backend, kind)}
}

func (s *Storage) SaveEntry(ctx context.Context, entry *domain.Entry) error {
	if err := s.entries.Put(ctx, entry.Scope, entry.ID, entry); err != nil {
		return oops.With("scope", entry.Scope, "entry_id", entry.ID, "context", "failed to save log entry").Wrap(err)
	}
	return nil
}

// GetEntries returns up to limit entries of scope, newest first
func (s *Storage) GetEntries(ctx context.Context, scope string, limit int) ([]*domain.Entry, error) {
	all, err := s.entries.List(ctx, scope)
	if err != nil {
		return nil, oops.With("scope", scope, "context", "failed to list log entries").Wrap(err)
	}

	// Keys are time-ordered UUIDs, so the backend returns oldest first
	entries := make([]*domain.Entry, 0, min(limit, len(all)))
	for i := len(all) - 1; i >= 0 && len(entries) < limit; i-- {
		entries = append(entries, all[i])
	}
	return entries, nil
}
