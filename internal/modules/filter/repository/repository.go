package repository

import (
	"context"

	"github.com/reshetovitsme/groupguard/internal/modules/filter/domain"
)

// Repository defines the interface for filter persistence
type Repository interface {
	SaveFilter(ctx context.Context, filter *domain.Filter) error
	GetFilter(ctx context.Context, chatID int64, keyword string) (*domain.Filter, error)
	GetFilters(ctx context.Context, chatID int64) ([]*domain.Filter, error)
	DeleteFilter(ctx context.Context, chatID int64, keyword string) error
}
