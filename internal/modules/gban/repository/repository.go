package repository

import (
	"context"

	"github.com/reshetovitsme/groupguard/internal/modules/gban/domain"
)

// Repository defines the interface for global ban persistence
type Repository interface {
	SaveBan(ctx context.Context, ban *domain.GlobalBan) error
	GetBan(ctx context.Context, userID int64) (*domain.GlobalBan, error)
	GetAllBans(ctx context.Context) ([]*domain.GlobalBan, error)
	DeleteBan(ctx context.Context, userID int64) error
}
