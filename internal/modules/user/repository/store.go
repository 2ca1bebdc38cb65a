package repository

import (
	"context"
	"strconv"

	"github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

const kind = "users"

// Storage implements Repository on top of a store backend
type Storage struct {
	users *store.Collection[domain.User]
}

// NewStorage creates a store-backed user repository
func NewStorage(backend store.Backend) Repository {
	return &Storage{users: store.NewCollection[domain.User](backend, kind)}
}

func (s *Storage) SaveUser(ctx context.Context, user *domain.User) error {
	return s.users.Put(ctx, "", strconv.FormatInt(user.ID, 10), user)
}

func (s *Storage) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.Get(ctx, "", strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, oops.With("user_id", userID).Wrap(err)
	}
	return user, nil
}

func (s *Storage) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx, "")
}
