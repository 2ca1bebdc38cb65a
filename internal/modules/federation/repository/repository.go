package repository

import (
	"context"

	"github.com/reshetovitsme/groupguard/internal/modules/federation/domain"
)

// Repository defines the interface for federation persistence
type Repository interface {
	SaveFederation(ctx context.Context, fed *domain.Federation) error
	GetFederation(ctx context.Context, fedID string) (*domain.Federation, error)
	GetAllFederations(ctx context.Context) ([]*domain.Federation, error)
	DeleteFederation(ctx context.Context, fedID string) error
}
