package repository

import (
	"context"

	"github.com/reshetovitsme/groupguard/internal/modules/connection/domain"
)

// Repository defines the interface for connection history persistence
type Repository interface {
	SaveHistory(ctx context.Context, history *domain.History) error
	GetHistory(ctx context.Context, userID int64) (*domain.History, error)
}
