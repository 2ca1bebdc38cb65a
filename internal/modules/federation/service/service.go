package service

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	chatService "github.com/reshetovitsme/groupguard/internal/modules/chat/service"
	"github.com/reshetovitsme/groupguard/internal/modules/federation/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/federation/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service manages federations and their ban lists. Fed bans are only recorded here,
// enforcing them in member chats is up to the caller.
type Service struct {
	repo  repository.Repository
	chats *chatService.Service
	locks *store.KeyLock
	now   func() time.Time
}

// New creates a new federation service
func New(repo repository.Repository, chats *chatService.Service) *Service {
	return &Service{
		repo:  repo,
		chats: chats,
		locks: store.NewKeyLock(),
		now:   time.Now,
	}
}

// Create starts a new federation owned by ownerID
func (s *Service) Create(ctx context.Context, name string, ownerID int64) (*domain.Federation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, oops.With("owner_id", ownerID).Wrap(errors.ErrInvalidArgument)
	}

	fed := &domain.Federation{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		AdminIDs:  []int64{},
		ChatIDs:   []int64{},
		Bans:      map[int64]domain.FedBan{},
		CreatedAt: s.now(),
	}
	if err := s.repo.SaveFederation(ctx, fed); err != nil {
		return nil, oops.With("fed_id", fed.ID, "context", "failed to save federation").Wrap(err)
	}
	return fed, nil
}

// Get returns a federation by ID
func (s *Service) Get(ctx context.Context, fedID string) (*domain.Federation, error) {
	return s.repo.GetFederation(ctx, fedID)
}

// Delete removes a federation. Only its owner may do so.
func (s *Service) Delete(ctx context.Context, fedID string, actorID int64) error {
	unlock := s.locks.Lock(fedID)
	defer unlock()

	fed, err := s.repo.GetFederation(ctx, fedID)
	if err != nil {
		return err
	}
	if !fed.IsOwner(actorID) {
		return oops.With("fed_id", fedID, "actor_id", actorID).Wrap(errors.ErrPermissionDenied)
	}
	return s.repo.DeleteFederation(ctx, fedID)
}

// AddAdmin promotes userID to federation admin. Only the owner may do so.
func (s *Service) AddAdmin(ctx context.Context, fedID string, userID, actorID int64) (*domain.Federation, error) {
	return s.update(ctx, fedID, func(fed *domain.Federation) error {
		if !fed.IsOwner(actorID) {
			return oops.With("fed_id", fedID, "actor_id", actorID).Wrap(errors.ErrPermissionDenied)
		}
		if fed.IsAdmin(userID) {
			return oops.With("fed_id", fedID, "user_id", userID).Wrap(errors.ErrAlreadyExists)
		}
		fed.AdminIDs = append(fed.AdminIDs, userID)
		return nil
	})
}

// RemoveAdmin demotes a federation admin. Only the owner may do so.
func (s *Service) RemoveAdmin(ctx context.Context, fedID string, userID, actorID int64) (*domain.Federation, error) {
	return s.update(ctx, fedID, func(fed *domain.Federation) error {
		if !fed.IsOwner(actorID) {
			return oops.With("fed_id", fedID, "actor_id", actorID).Wrap(errors.ErrPermissionDenied)
		}
		if !lo.Contains(fed.AdminIDs, userID) {
			return oops.With("fed_id", fedID, "user_id", userID).Wrap(errors.ErrNotFound)
		}
		fed.AdminIDs = lo.Without(fed.AdminIDs, userID)
		return nil
	})
}

// Ban records a fed ban. The owner and admins may ban; the owner cannot be banned.
// Banning an already banned user updates the reason.
func (s *Service) Ban(ctx context.Context, fedID string, userID int64, reason string, actorID int64) (*domain.Federation, error) {
	return s.update(ctx, fedID, func(fed *domain.Federation) error {
		if !fed.IsAdmin(actorID) {
			return oops.With("fed_id", fedID, "actor_id", actorID).Wrap(errors.ErrPermissionDenied)
		}
		if fed.IsOwner(userID) {
			return oops.With("fed_id", fedID, "user_id", userID).Wrap(errors.ErrInvalidTarget)
		}
		if fed.Bans == nil {
			fed.Bans = map[int64]domain.FedBan{}
		}
		fed.Bans[userID] = domain.FedBan{
			Reason:    reason,
			IssuerID:  actorID,
			CreatedAt: s.now(),
		}
		return nil
	})
}

// Unban lifts a fed ban
func (s *Service) Unban(ctx context.Context, fedID string, userID, actorID int64) (*domain.Federation, error) {
	return s.update(ctx, fedID, func(fed *domain.Federation) error {
		if !fed.IsAdmin(actorID) {
			return oops.With("fed_id", fedID, "actor_id", actorID).Wrap(errors.ErrPermissionDenied)
		}
		if !fed.IsBanned(userID) {
			return oops.With("fed_id", fedID, "user_id", userID).Wrap(errors.ErrNotFound)
		}
		delete(fed.Bans, userID)
		return nil
	})
}

// JoinChat attaches a chat to a federation, leaving any previous one
func (s *Service) JoinChat(ctx context.Context, fedID string, chatID int64) (*domain.Federation, error) {
	if _, err := s.chats.GetChat(ctx, chatID); err != nil {
		return nil, err
	}
	if err := s.LeaveChat(ctx, chatID); err != nil && !stderrors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	fed, err := s.update(ctx, fedID, func(fed *domain.Federation) error {
		fed.ChatIDs = lo.Uniq(append(fed.ChatIDs, chatID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.chats.SetFederation(ctx, chatID, fedID); err != nil {
		return nil, err
	}
	return fed, nil
}

// LeaveChat detaches a chat from its federation
func (s *Service) LeaveChat(ctx context.Context, chatID int64) error {
	fed, err := s.ChatFederation(ctx, chatID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			// The federation may be gone while the chat still points at it
			return s.chats.SetFederation(ctx, chatID, "")
		}
		return err
	}

	if _, err := s.update(ctx, fed.ID, func(fed *domain.Federation) error {
		fed.ChatIDs = lo.Without(fed.ChatIDs, chatID)
		return nil
	}); err != nil && !stderrors.Is(err, errors.ErrNotFound) {
		return err
	}
	return s.chats.SetFederation(ctx, chatID, "")
}

// ChatFederation returns the federation a chat belongs to. A chat pointing at a deleted
// federation belongs to none.
func (s *Service) ChatFederation(ctx context.Context, chatID int64) (*domain.Federation, error) {
	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.FedID == "" {
		return nil, oops.With("chat_id", chatID).Wrap(errors.ErrNotFound)
	}
	return s.repo.GetFederation(ctx, chat.FedID)
}

// ListOwned returns the federations owned by ownerID, oldest first
func (s *Service) ListOwned(ctx context.Context, ownerID int64) ([]*domain.Federation, error) {
	feds, err := s.repo.GetAllFederations(ctx)
	if err != nil {
		return nil, err
	}
	owned := lo.Filter(feds, func(fed *domain.Federation, _ int) bool {
		return fed.IsOwner(ownerID)
	})
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})
	return owned, nil
}

func (s *Service) update(ctx context.Context, fedID string, fn func(fed *domain.Federation) error) (*domain.Federation, error) {
	unlock := s.locks.Lock(fedID)
	defer unlock()

	fed, err := s.repo.GetFederation(ctx, fedID)
	if err != nil {
		return nil, err
	}
	if err := fn(fed); err != nil {
		return nil, err
	}
	if err := s.repo.SaveFederation(ctx, fed); err != nil {
		return nil, oops.With("fed_id", fedID, "context", "failed to save federation").Wrap(err)
	}
	return fed, nil
}
