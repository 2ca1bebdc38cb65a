package repository

import (
	"context"

	"github.com/reshetovitsme/groupguard/internal/modules/federation/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

const kind = "federations"

// Storage implements Repository on top of a store backend
type Storage struct {
	feds *store.Collection[domain.Federation]
}

// NewStorage creates a store-backed federation repository
func NewStorage(backend store.Backend) Repository {
	return &Storage{feds: store.NewCollection[domain.Federation](backend, kind)}
}

func (s *Storage) SaveFederation(ctx context.Context, fed *domain.Federation) error {
	return s.feds.Put(ctx, "", fed.ID, fed)
}

func (s *Storage) GetFederation(ctx context.Context, fedID string) (*domain.Federation, error) {
	fed, err := s.feds.Get(ctx, "", fedID)
	if err != nil {
		return nil, oops.With("fed_id", fedID).Wrap(err)
	}
	return fed, nil
}

func (s *Storage) GetAllFederations(ctx context.Context) ([]*domain.Federation, error) {
	return s.feds.List(ctx, "")
}

func (s *Storage) DeleteFederation(ctx context.Context, fedID string) error {
	if err := s.feds.Delete(ctx, "", fedID); err != nil {
		return oops.With("fed_id", fedID).Wrap(err)
	}
	return nil
}
