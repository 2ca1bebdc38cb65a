package service

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/user/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service handles user business logic
type Service struct {
	repo  repository.Repository
	locks *store.KeyLock
	now   func() time.Time
}

// New creates a new user service
func New(repo repository.Repository) *Service {
	return &Service{
		repo:  repo,
		locks: store.NewKeyLock(),
		now:   time.Now,
	}
}

// Observe records a sighting of a user, creating the record on first interaction
func (s *Service) Observe(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	return s.Update(ctx, profile.ID, func(user *domain.User) error {
		user.FirstName = profile.FirstName
		user.LastName = profile.LastName
		user.Username = profile.Username
		user.LastSeen = s.now()
		return nil
	})
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.GetUser(ctx, userID)
}

// GetAllUsers retrieves all users
func (s *Service) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// Update loads (or creates) the user and applies fn while holding the user's lock.
// Nothing is written when fn fails.
func (s *Service) Update(ctx context.Context, userID int64, fn func(user *domain.User) error) (*domain.User, error) {
	unlock := s.locks.Lock(strconv.FormatInt(userID, 10))
	defer unlock()

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
		now := s.now()
		user = &domain.User{ID: userID, FirstSeen: now, LastSeen: now}
	}

	if err := fn(user); err != nil {
		return nil, err
	}

	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, oops.With("user_id", userID, "context", "failed to save user").Wrap(err)
	}
	return user, nil
}

// View loads the user and applies fn while holding the user's lock, without writing.
// A user never seen is passed as an empty record.
func (s *Service) View(ctx context.Context, userID int64, fn func(user *domain.User) error) error {
	unlock := s.locks.Lock(strconv.FormatInt(userID, 10))
	defer unlock()

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			return err
		}
		user = &domain.User{ID: userID}
	}
	return fn(user)
}

// FindByUsername looks a user up by username, case-insensitively and with or without "@"
func (s *Service) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, oops.Wrap(errors.ErrNotFound)
	}

	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	user, found := lo.Find(users, func(u *domain.User) bool {
		return strings.EqualFold(u.Username, username)
	})
	if !found {
		return nil, oops.With("username", username).Wrap(errors.ErrNotFound)
	}
	return user, nil
}

// SetSudo promotes or demotes a user. It reports whether the flag changed.
func (s *Service) SetSudo(ctx context.Context, userID int64, sudo bool) (bool, error) {
	changed := false
	_, err := s.Update(ctx, userID, func(user *domain.User) error {
		changed = user.IsSudo != sudo
		user.IsSudo = sudo
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// ListSudo returns every user promoted at runtime
func (s *Service) ListSudo(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(users, func(u *domain.User, _ int) bool {
		return u.IsSudo
	}), nil
}
