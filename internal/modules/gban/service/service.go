package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sort"
	"time"

	"github.com/reshetovitsme/groupguard/internal/modules/gban/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/gban/repository"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	userService "github.com/reshetovitsme/groupguard/internal/modules/user/service"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service manages global bans. The ban record and the user's IsGloballyBanned flag are
// changed together under the user's lock; if the user write fails the record change is
// undone.
type Service struct {
	repo  repository.Repository
	users *userService.Service
	now   func() time.Time
}

// New creates a new global ban service
func New(repo repository.Repository, users *userService.Service) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   time.Now,
	}
}

// Add globally bans a user
func (s *Service) Add(ctx context.Context, userID int64, reason string, issuerID int64) (*domain.GlobalBan, error) {
	var ban *domain.GlobalBan

	_, err := s.users.Update(ctx, userID, func(user *userDomain.User) error {
		existing, err := s.repo.GetBan(ctx, userID)
		if err == nil && existing != nil {
			return oops.With("user_id", userID).Wrap(errors.ErrAlreadyExists)
		}
		if err != nil && !stderrors.Is(err, errors.ErrNotFound) {
			return err
		}

		ban = &domain.GlobalBan{
			UserID:    userID,
			Reason:    reason,
			IssuerID:  issuerID,
			CreatedAt: s.now(),
		}
		if err := s.repo.SaveBan(ctx, ban); err != nil {
			ban = nil
			return oops.With("user_id", userID, "context", "failed to save global ban").Wrap(err)
		}
		user.IsGloballyBanned = true
		return nil
	})
	if err != nil {
		if ban != nil {
			// The record was written but the user flag was not
			if rbErr := s.repo.DeleteBan(ctx, userID); rbErr != nil {
				slog.Error("Failed to roll back global ban", "user_id", userID, "error", rbErr)
			}
		}
		return nil, err
	}
	return ban, nil
}

// Remove lifts a global ban
func (s *Service) Remove(ctx context.Context, userID int64) (*domain.GlobalBan, error) {
	var removed *domain.GlobalBan

	_, err := s.users.Update(ctx, userID, func(user *userDomain.User) error {
		ban, err := s.repo.GetBan(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteBan(ctx, userID); err != nil {
			return oops.With("user_id", userID, "context", "failed to delete global ban").Wrap(err)
		}
		removed = ban
		user.IsGloballyBanned = false
		return nil
	})
	if err != nil {
		if removed != nil {
			if rbErr := s.repo.SaveBan(ctx, removed); rbErr != nil {
				slog.Error("Failed to roll back global unban", "user_id", userID, "error", rbErr)
			}
		}
		return nil, err
	}
	return removed, nil
}

// IsGloballyBanned reports whether a ban record exists for the user
func (s *Service) IsGloballyBanned(ctx context.Context, userID int64) (bool, error) {
	_, err := s.repo.GetBan(ctx, userID)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, errors.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Get returns the ban record of a user
func (s *Service) Get(ctx context.Context, userID int64) (*domain.GlobalBan, error) {
	return s.repo.GetBan(ctx, userID)
}

// List returns every global ban, oldest first
func (s *Service) List(ctx context.Context) ([]*domain.GlobalBan, error) {
	bans, err := s.repo.GetAllBans(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bans, func(i, j int) bool {
		return bans[i].CreatedAt.Before(bans[j].CreatedAt)
	})
	return bans, nil
}

// Inconsistent returns the IDs of users whose flag disagrees with the ban records. Each
// candidate is checked again under the user's lock, so bans still being written are skipped.
func (s *Service) Inconsistent(ctx context.Context) ([]int64, error) {
	bans, err := s.repo.GetAllBans(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	banned := lo.SliceToMap(bans, func(ban *domain.GlobalBan) (int64, bool) {
		return ban.UserID, true
	})
	flagged := lo.SliceToMap(users, func(user *userDomain.User) (int64, bool) {
		return user.ID, user.IsGloballyBanned
	})

	candidates := lo.Uniq(append(
		lo.Filter(lo.Keys(banned), func(userID int64, _ int) bool { return !flagged[userID] }),
		lo.Filter(lo.Keys(flagged), func(userID int64, _ int) bool { return flagged[userID] && !banned[userID] })...,
	))

	var mismatched []int64
	for _, userID := range candidates {
		err := s.users.View(ctx, userID, func(user *userDomain.User) error {
			_, err := s.repo.GetBan(ctx, userID)
			if err != nil && !stderrors.Is(err, errors.ErrNotFound) {
				return err
			}
			if user.IsGloballyBanned != (err == nil) {
				mismatched = append(mismatched, userID)
			}
			return nil
		})
		if err != nil {
			return nil, oops.With("user_id", userID, "context", "failed to check global ban").Wrap(err)
		}
	}
	sort.Slice(mismatched, func(i, j int) bool { return mismatched[i] < mismatched[j] })
	return mismatched, nil
}
