package repository

import (
	"context"

	"github.com/reshetovitsme/groupguard/internal/modules/modlog/domain"
)

// Repository defines the interface for moderation log persistence
type Repository interface {
	SaveEntry(ctx context.Context, entry *domain.Entry) error
	GetEntries(ctx context.Context, scope string, limit int) ([]*domain.Entry, error)
}
