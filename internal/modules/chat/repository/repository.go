package repository

import (
	"context"

	"github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
)

// Repository defines the interface for chat data persistence
type Repository interface {
	SaveChat(ctx context.Context, chat *domain.Chat) error
	GetChat(ctx context.Context, chatID int64) (*domain.Chat, error)
	GetAllChats(ctx context.Context) ([]*domain.Chat, error)
}
