package repository

import (
	"context"
	"strconv"

	"github.com/reshetovitsme/groupguard/internal/modules/connection/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

const kind = "connections"

// Storage implements Repository on top of a store backend
type Storage struct {
	histories *store.Collection[domain.History]
}

// NewStorage creates a store-backed connection repository
func NewStorage(backend store.Backend) Repository {
	return &Storage{histories: store.NewCollection[domain.History](backend, kind)}
}

func (s *Storage) SaveHistory(ctx context.Context, history *domain.History) error {
	return s.histories.Put(ctx, "", strconv.FormatInt(history.UserID, 10), history)
}

func (s *Storage) GetHistory(ctx context.Context, userID int64) (*domain.History, error) {
	history, err := s.histories.Get(ctx, "", strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, oops.With("user_id", userID).Wrap(err)
	}
	return history, nil
}
