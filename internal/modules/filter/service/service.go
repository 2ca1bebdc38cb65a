package service

import (
	"context"
	stderrors "errors"
	"sort"
	"strconv"
	"strings"
	"time"

	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	"github.com/reshetovitsme/groupguard/internal/modules/filter/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/filter/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

// Service manages keyword filters and matches them against incoming text
type Service struct {
	repo     repository.Repository
	chatRepo chatRepo.Repository
	locks    *store.KeyLock
	now      func() time.Time
}

// New creates a new filter service
func New(repo repository.Repository, chatRepo chatRepo.Repository) *Service {
	return &Service{
		repo:     repo,
		chatRepo: chatRepo,
		locks:    store.NewKeyLock(),
		now:      time.Now,
	}
}

// AddFilter creates or replaces the filter for keyword. Replacing moves the keyword to the end
// of the match order.
func (s *Service) AddFilter(ctx context.Context, chatID int64, keyword, reply string, createdBy int64) (*domain.Filter, error) {
	keyword = normalize(keyword)
	if keyword == "" || strings.TrimSpace(reply) == "" {
		return nil, oops.With("chat_id", chatID).Wrap(errors.ErrInvalidArgument)
	}
	if err := s.ensureChat(ctx, chatID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(strconv.FormatInt(chatID, 10))
	defer unlock()

	filter := &domain.Filter{
		ChatID:    chatID,
		Keyword:   keyword,
		Reply:     reply,
		CreatedBy: createdBy,
		CreatedAt: s.now(),
	}
	if err := s.repo.SaveFilter(ctx, filter); err != nil {
		return nil, oops.With("chat_id", chatID, "keyword", keyword, "context", "failed to save filter").Wrap(err)
	}
	return filter, nil
}

// RemoveFilter deletes the filter for keyword
func (s *Service) RemoveFilter(ctx context.Context, chatID int64, keyword string) error {
	unlock := s.locks.Lock(strconv.FormatInt(chatID, 10))
	defer unlock()

	return s.repo.DeleteFilter(ctx, chatID, normalize(keyword))
}

// ListFilters returns the chat's filters in match order
func (s *Service) ListFilters(ctx context.Context, chatID int64) ([]*domain.Filter, error) {
	if err := s.ensureChat(ctx, chatID); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return []*domain.Filter{}, nil
		}
		return nil, err
	}

	filters, err := s.repo.GetFilters(ctx, chatID)
	if err != nil {
		return nil, err
	}

	// Insertion order, ties broken by keyword, so the first match is deterministic
	sort.SliceStable(filters, func(i, j int) bool {
		if filters[i].CreatedAt.Equal(filters[j].CreatedAt) {
			return filters[i].Keyword < filters[j].Keyword
		}
		return filters[i].CreatedAt.Before(filters[j].CreatedAt)
	})
	return filters, nil
}

// Match returns the first filter, in insertion order, whose keyword occurs in text
func (s *Service) Match(ctx context.Context, chatID int64, text string) (*domain.Filter, bool, error) {
	if text == "" {
		return nil, false, nil
	}

	filters, err := s.ListFilters(ctx, chatID)
	if err != nil {
		return nil, false, err
	}

	lowered := strings.ToLower(text)
	for _, filter := range filters {
		if strings.Contains(lowered, filter.Keyword) {
			return filter, true, nil
		}
	}
	return nil, false, nil
}

func (s *Service) ensureChat(ctx context.Context, chatID int64) error {
	_, err := s.chatRepo.GetChat(ctx, chatID)
	return err
}

func normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
