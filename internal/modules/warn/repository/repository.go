package repository

import (
	"context"

	"github.com/reshetovitsme/groupguard/internal/modules/warn/domain"
)

// Repository defines the interface for warn persistence
type Repository interface {
	SaveWarn(ctx context.Context, warn *domain.Warn) error
	GetWarns(ctx context.Context, chatID, userID int64) ([]*domain.Warn, error)
	DeleteWarn(ctx context.Context, chatID, userID int64, warnID string) error
}
