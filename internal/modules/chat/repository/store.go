package repository

import (
	"context"
	"strconv"

	"github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

const kind = "chats"

// Storage implements Repository on top of a store backend
type Storage struct {
	chats *store.Collection[domain.Chat]
}

// NewStorage creates a store-backed chat repository
func NewStorage(backend store.Backend) Repository {
	return &Storage{chats: store.NewCollection[domain.Chat](backend, kind)}
}

func (s *Storage) SaveChat(ctx context.Context, chat *domain.Chat) error {
	return s.chats.Put(ctx, "", strconv.FormatInt(chat.ID, 10), chat)
}

func (s *Storage) GetChat(ctx context.Context, chatID int64) (*domain.Chat, error) {
	chat, err := s.chats.Get(ctx, "", strconv.FormatInt(chatID, 10))
	if err != nil {
		return nil, oops.With("chat_id", chatID).Wrap(err)
	}
	return chat, nil
}

func (s *Storage) GetAllChats(ctx context.Context) ([]*domain.Chat, error) {
	return s.chats.List(ctx, "")
}
