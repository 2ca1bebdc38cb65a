package repository

import (
	"context"
	"strconv"

	"github.com/reshetovitsme/groupguard/internal/modules/filter/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

const kind = "filters"

// Storage implements Repository on top of a store backend, one document per keyword
type Storage struct {
	filters *store.Collection[domain.Filter]
}

// NewStorage creates a store-backed filter repository
func NewStorage(backend store.Backend) Repository {
	return &Storage{filters: store.NewCollection[domain.Filter](backend, kind)}
}

func (s *Storage) SaveFilter(ctx context.Context, filter *domain.Filter) error {
	return s.filters.Put(ctx, strconv.FormatInt(filter.ChatID, 10), filter.Keyword, filter)
}

func (s *Storage) GetFilter(ctx context.Context, chatID int64, keyword string) (*domain.Filter, error) {
	filter, err := s.filters.Get(ctx, strconv.FormatInt(chatID, 10), keyword)
	if err != nil {
		return nil, oops.With("chat_id", chatID, "keyword", keyword).Wrap(err)
	}
	return filter, nil
}

func (s *Storage) GetFilters(ctx context.Context, chatID int64) ([]*domain.Filter, error) {
	return s.filters.List(ctx, strconv.FormatInt(chatID, 10))
}

func (s *Storage) DeleteFilter(ctx context.Context, chatID int64, keyword string) error {
	if err := s.filters.Delete(ctx, strconv.FormatInt(chatID, 10), keyword); err != nil {
		return oops.With("chat_id", chatID, "keyword", keyword).Wrap(err)
	}
	return nil
}
