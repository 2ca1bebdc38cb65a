package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	"github.com/reshetovitsme/groupguard/internal/modules/warn/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/warn/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/oops"
)

// Service keeps the warn history of every (chat, user) pair
type Service struct {
	repo     repository.Repository
	chatRepo chatRepo.Repository
	locks    *store.KeyLock
	now      func() time.Time
}

// New creates a new warn service
func New(repo repository.Repository, chatRepo chatRepo.Repository) *Service {
	return &Service{
		repo:     repo,
		chatRepo: chatRepo,
		locks:    store.NewKeyLock(),
		now:      time.Now,
	}
}

// Issue records a warn and returns it with the resulting warn count
func (s *Service) Issue(ctx context.Context, chatID, userID, issuerID int64, reason string) (*domain.Warn, int, error) {
	if _, err := s.chatRepo.GetChat(ctx, chatID); err != nil {
		return nil, 0, err
	}

	unlock := s.locks.Lock(key(chatID, userID))
	defer unlock()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, 0, oops.With("chat_id", chatID, "user_id", userID, "context", "failed to generate warn id").Wrap(err)
	}

	warn := &domain.Warn{
		ID:        id.String(),
		ChatID:    chatID,
		UserID:    userID,
		Reason:    reason,
		IssuerID:  issuerID,
		CreatedAt: s.now(),
	}
	if err := s.repo.SaveWarn(ctx, warn); err != nil {
		return nil, 0, oops.With("chat_id", chatID, "user_id", userID, "context", "failed to save warn").Wrap(err)
	}

	warns, err := s.repo.GetWarns(ctx, chatID, userID)
	if err != nil {
		return nil, 0, err
	}
	return warn, len(warns), nil
}

// List returns the warns of a user in a chat, oldest first. Warns of an unknown chat are ignored.
func (s *Service) List(ctx context.Context, chatID, userID int64) ([]*domain.Warn, error) {
	if _, err := s.chatRepo.GetChat(ctx, chatID); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return []*domain.Warn{}, nil
		}
		return nil, err
	}

	warns, err := s.repo.GetWarns(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	sortWarns(warns)
	return warns, nil
}

// Count returns how many warns a user has in a chat
func (s *Service) Count(ctx context.Context, chatID, userID int64) (int, error) {
	warns, err := s.List(ctx, chatID, userID)
	if err != nil {
		return 0, err
	}
	return len(warns), nil
}

// Remove deletes one warn: the given one, or the most recent when warnID is empty.
// It returns the removed warn and the remaining count.
func (s *Service) Remove(ctx context.Context, chatID, userID int64, warnID string) (*domain.Warn, int, error) {
	unlock := s.locks.Lock(key(chatID, userID))
	defer unlock()

	warns, err := s.List(ctx, chatID, userID)
	if err != nil {
		return nil, 0, err
	}
	if len(warns) == 0 {
		return nil, 0, oops.With("chat_id", chatID, "user_id", userID).Wrapf(errors.ErrNotFound, "no warns")
	}

	target := warns[len(warns)-1]
	if warnID != "" {
		target = nil
		for _, warn := range warns {
			if warn.ID == warnID {
				target = warn
				break
			}
		}
		if target == nil {
			return nil, 0, oops.With("chat_id", chatID, "user_id", userID, "warn_id", warnID).Wrap(errors.ErrNotFound)
		}
	}

	if err := s.repo.DeleteWarn(ctx, chatID, userID, target.ID); err != nil {
		return nil, 0, err
	}
	return target, len(warns) - 1, nil
}

// Reset deletes every warn of a user in a chat and returns how many were removed
func (s *Service) Reset(ctx context.Context, chatID, userID int64) (int, error) {
	unlock := s.locks.Lock(key(chatID, userID))
	defer unlock()

	warns, err := s.repo.GetWarns(ctx, chatID, userID)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, warn := range warns {
		if err := s.repo.DeleteWarn(ctx, chatID, userID, warn.ID); err != nil {
			if stderrors.Is(err, errors.ErrNotFound) {
				continue
			}
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func sortWarns(warns []*domain.Warn) {
	sort.SliceStable(warns, func(i, j int) bool {
		if warns[i].CreatedAt.Equal(warns[j].CreatedAt) {
			return warns[i].ID < warns[j].ID
		}
		return warns[i].CreatedAt.Before(warns[j].CreatedAt)
	})
}

func key(chatID, userID int64) string {
	return fmt.Sprintf("%d:%d", chatID, userID)
}
