package repository

import (
	"context"
	"strconv"

	"github.com/reshetovitsme/groupguard/internal/modules/gban/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

const kind = "gbans"

// Storage implements Repository on top of a store backend
type Storage struct {
	bans *store.Collection[domain.GlobalBan]
}

// NewStorage creates a store-backed global ban repository
func NewStorage(backend store.Backend) Repository {
	return &Storage{bans: store.NewCollection[domain.GlobalBan](backend, kind)}
}

func (s *Storage) SaveBan(ctx context.Context, ban *domain.GlobalBan) error {
	return s.bans.Put(ctx, "", strconv.FormatInt(ban.UserID, 10), ban)
}

func (s *Storage) GetBan(ctx context.Context, userID int64) (*domain.GlobalBan, error) {
	ban, err := s.bans.Get(ctx, "", strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, oops.With("user_id", userID).Wrap(err)
	}
	return ban, nil
}

func (s *Storage) GetAllBans(ctx context.Context) ([]*domain.GlobalBan, error) {
	return s.bans.List(ctx, "")
}

func (s *Storage) DeleteBan(ctx context.Context, userID int64) error {
	if err := s.bans.Delete(ctx, "", strconv.FormatInt(userID, 10)); err != nil {
		return oops.With("user_id", userID).Wrap(err)
	}
	return nil
}
