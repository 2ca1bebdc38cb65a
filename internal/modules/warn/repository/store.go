package repository

import (
	"context"
	"fmt"

	"github.com/reshetovitsme/groupguard/internal/modules/warn/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

const kind = "warns"

// Storage implements Repository on top of a store backend
type Storage struct {
	warns *store.Collection[domain.Warn]
}

// NewStorage creates a store-backed warn repository
func NewStorage(backend store.Backend) Repository {
	return &Storage{warns: store.NewCollection[domain.Warn](backend, kind)}
}

func (s *Storage) SaveWarn(ctx context.Context, warn *domain.Warn) error {
	return s.warns.Put(ctx, parent(warn.ChatID, warn.UserID), warn.ID, warn)
}

func (s *Storage) GetWarns(ctx context.Context, chatID, userID int64) ([]*domain.Warn, error) {
	warns, err := s.warns.List(ctx, parent(chatID, userID))
	if err != nil {
		return nil, oops.With("chat_id", chatID, "user_id", userID).Wrap(err)
	}
	return warns, nil
}

func (s *Storage) DeleteWarn(ctx context.Context, chatID, userID int64, warnID string) error {
	if err := s.warns.Delete(ctx, parent(chatID, userID), warnID); err != nil {
		return oops.With("chat_id", chatID, "user_id", userID, "warn_id", warnID).Wrap(err)
	}
	return nil
}

func parent(chatID, userID int64) string {
	return fmt.Sprintf("%d:%d", chatID, userID)
}
