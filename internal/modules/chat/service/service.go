package service

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service handles chat settings
type Service struct {
	repo  repository.Repository
	locks *store.KeyLock
	now   func() time.Time
}

// New creates a new chat service
func New(repo repository.Repository) *Service {
	return &Service{
		repo:  repo,
		locks: store.NewKeyLock(),
		now:   time.Now,
	}
}

// Observe records bot activity in a chat, creating it with default settings the first time
func (s *Service) Observe(ctx context.Context, chatID int64, title string, chatType domain.ChatType) (*domain.Chat, error) {
	unlock := s.locks.Lock(strconv.FormatInt(chatID, 10))
	defer unlock()

	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
		chat = &domain.Chat{
			ID:             chatID,
			WelcomeEnabled: true,
			GoodbyeEnabled: true,
			LockedTypes:    []domain.LockType{},
			CleanTypes:     []domain.CleanType{},
			CreatedAt:      s.now(),
		}
	} else if chat.Title == title && chat.Type == chatType {
		return chat, nil
	}

	chat.Title = title
	chat.Type = chatType
	if err := s.repo.SaveChat(ctx, chat); err != nil {
		return nil, oops.With("chat_id", chatID, "context", "failed to save chat").Wrap(err)
	}
	return chat, nil
}

// GetChat retrieves a chat by ID
func (s *Service) GetChat(ctx context.Context, chatID int64) (*domain.Chat, error) {
	return s.repo.GetChat(ctx, chatID)
}

// GetAllChats retrieves all chats
func (s *Service) GetAllChats(ctx context.Context) ([]*domain.Chat, error) {
	return s.repo.GetAllChats(ctx)
}

// Update applies fn to an existing chat under its lock
func (s *Service) Update(ctx context.Context, chatID int64, fn func(chat *domain.Chat) error) (*domain.Chat, error) {
	unlock := s.locks.Lock(strconv.FormatInt(chatID, 10))
	defer unlock()

	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if err := fn(chat); err != nil {
		return nil, err
	}

	if err := s.repo.SaveChat(ctx, chat); err != nil {
		return nil, oops.With("chat_id", chatID, "context", "failed to save chat").Wrap(err)
	}
	return chat, nil
}

// SetWelcome stores and enables the welcome template
func (s *Service) SetWelcome(ctx context.Context, chatID int64, template string) error {
	_, err := s.Update(ctx, chatID, func(chat *domain.Chat) error {
		chat.WelcomeTemplate = template
		chat.WelcomeEnabled = true
		return nil
	})
	return err
}

// UnsetWelcome removes the welcome template
func (s *Service) UnsetWelcome(ctx context.Context, chatID int64) error {
	_, err := s.Update(ctx, chatID, func(chat *domain.Chat) error {
		chat.WelcomeTemplate = ""
		chat.WelcomeEnabled = false
		return nil
	})
	return err
}

// SetGoodbye stores and enables the goodbye template
func (s *Service) SetGoodbye(ctx context.Context, chatID int64, template string) error {
	_, err := s.Update(ctx, chatID, func(chat *domain.Chat) error {
		chat.GoodbyeTemplate = template
		chat.GoodbyeEnabled = true
		return nil
	})
	return err
}

// UnsetGoodbye removes the goodbye template
func (s *Service) UnsetGoodbye(ctx context.Context, chatID int64) error {
	_, err := s.Update(ctx, chatID, func(chat *domain.Chat) error {
		chat.GoodbyeTemplate = ""
		chat.GoodbyeEnabled = false
		return nil
	})
	return err
}

// SetRules replaces the rules text, an empty text clears them
func (s *Service) SetRules(ctx context.Context, chatID int64, rules string) error {
	_, err := s.Update(ctx, chatID, func(chat *domain.Chat) error {
		chat.RulesText = rules
		return nil
	})
	return err
}

// Lock adds lock types. Locking "all" locks the chat fully.
func (s *Service) Lock(ctx context.Context, chatID int64, types ...domain.LockType) (*domain.Chat, error) {
	return s.Update(ctx, chatID, func(chat *domain.Chat) error {
		if lo.Contains(types, domain.LockTypeAll) {
			chat.FullyLocked = true
		}
		chat.LockedTypes = lo.Uniq(append(chat.LockedTypes, lo.Without(types, domain.LockTypeAll)...))
		return nil
	})
}

// Unlock removes lock types. Unlocking "all" clears every lock.
func (s *Service) Unlock(ctx context.Context, chatID int64, types ...domain.LockType) (*domain.Chat, error) {
	return s.Update(ctx, chatID, func(chat *domain.Chat) error {
		if lo.Contains(types, domain.LockTypeAll) {
			chat.FullyLocked = false
			chat.LockedTypes = []domain.LockType{}
			return nil
		}
		chat.LockedTypes = lo.Without(chat.LockedTypes, types...)
		return nil
	})
}

// SetClean enables or disables cleanup of bot message categories
func (s *Service) SetClean(ctx context.Context, chatID int64, enabled bool, types ...domain.CleanType) (*domain.Chat, error) {
	return s.Update(ctx, chatID, func(chat *domain.Chat) error {
		if enabled {
			chat.CleanTypes = lo.Uniq(append(chat.CleanTypes, types...))
			return nil
		}
		if lo.Contains(types, domain.CleanTypeAll) {
			chat.CleanTypes = []domain.CleanType{}
			return nil
		}
		chat.CleanTypes = lo.Without(chat.CleanTypes, types...)
		return nil
	})
}

// SetFederation attaches the chat to a federation; an empty fedID detaches it
func (s *Service) SetFederation(ctx context.Context, chatID int64, fedID string) error {
	_, err := s.Update(ctx, chatID, func(chat *domain.Chat) error {
		chat.FedID = fedID
		return nil
	})
	return err
}
