package service

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	"github.com/reshetovitsme/groupguard/internal/modules/connection/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/connection/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service tracks which chat each user administers from their private chat
type Service struct {
	repo     repository.Repository
	chatRepo chatRepo.Repository
	locks    *store.KeyLock
	now      func() time.Time
}

// New creates a new connection service
func New(repo repository.Repository, chatRepo chatRepo.Repository) *Service {
	return &Service{
		repo:     repo,
		chatRepo: chatRepo,
		locks:    store.NewKeyLock(),
		now:      time.Now,
	}
}

// Connect makes chatID the user's current connection. An existing entry for the chat is
// moved to the end and the history is trimmed to the most recent entries.
func (s *Service) Connect(ctx context.Context, userID, chatID int64, chatTitle string) (*domain.Connection, error) {
	if _, err := s.chatRepo.GetChat(ctx, chatID); err != nil {
		return nil, err
	}

	var connection domain.Connection
	err := s.update(ctx, userID, func(history *domain.History) error {
		connection = domain.Connection{
			ChatID:      chatID,
			ChatTitle:   chatTitle,
			ConnectedAt: s.now(),
		}
		entries := lo.Reject(history.Entries, func(entry domain.Connection, _ int) bool {
			return entry.ChatID == chatID
		})
		entries = append(entries, connection)
		if len(entries) > domain.HistoryLimit {
			entries = entries[len(entries)-domain.HistoryLimit:]
		}
		history.Entries = entries
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &connection, nil
}

// Disconnect removes the entry for chatID, or every entry when chatID is nil.
// It returns the number of entries removed.
func (s *Service) Disconnect(ctx context.Context, userID int64, chatID *int64) (int, error) {
	removed := 0
	err := s.update(ctx, userID, func(history *domain.History) error {
		current, ok := history.Current()
		before := len(history.Entries)
		if chatID == nil {
			history.Entries = []domain.Connection{}
		} else {
			history.Entries = lo.Reject(history.Entries, func(entry domain.Connection, _ int) bool {
				return entry.ChatID == *chatID
			})
		}
		removed = before - len(history.Entries)

		if ok && (chatID == nil || current.ChatID == *chatID) {
			history.LastActive = &current
		}
		return nil
	})
	return removed, err
}

// LastActive returns the connection that was current before the last disconnect
func (s *Service) LastActive(ctx context.Context, userID int64) (*domain.Connection, error) {
	history, err := s.repo.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if history.LastActive == nil {
		return nil, oops.With("user_id", userID).Wrapf(errors.ErrNotFound, "nothing to reconnect to")
	}
	last := *history.LastActive
	return &last, nil
}

// Current returns the most recent connection. A connection to a chat that no longer
// exists is not current.
func (s *Service) Current(ctx context.Context, userID int64) (*domain.Connection, error) {
	history, err := s.repo.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	current, ok := history.Current()
	if !ok {
		return nil, oops.With("user_id", userID).Wrapf(errors.ErrNotFound, "not connected")
	}
	if _, err := s.chatRepo.GetChat(ctx, current.ChatID); err != nil {
		return nil, err
	}
	return &current, nil
}

// History returns the user's connections, most recent last
func (s *Service) History(ctx context.Context, userID int64) ([]domain.Connection, error) {
	history, err := s.repo.GetHistory(ctx, userID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return []domain.Connection{}, nil
		}
		return nil, err
	}
	return history.Entries, nil
}

func (s *Service) update(ctx context.Context, userID int64, fn func(history *domain.History) error) error {
	unlock := s.locks.Lock(strconv.FormatInt(userID, 10))
	defer unlock()

	history, err := s.repo.GetHistory(ctx, userID)
	if err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			return err
		}
		history = &domain.History{UserID: userID, Entries: []domain.Connection{}}
	}

	if err := fn(history); err != nil {
		return err
	}
	if err := s.repo.SaveHistory(ctx, history); err != nil {
		return oops.With("user_id", userID, "context", "failed to save connection history").Wrap(err)
	}
	return nil
}
