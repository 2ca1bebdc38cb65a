package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/reshetovitsme/groupguard/internal/modules/modlog/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/modlog/repository"
	"github.com/samber/oops"
)

// Service records who did what to whom
type Service struct {
	repo repository.Repository
	now  func() time.Time
}

// New creates a new moderation log service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record appends an entry to scope
func (s *Service) Record(ctx context.Context, scope string, action domain.Action, actorID, targetID int64, reason string) (*domain.Entry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, oops.With("scope", scope, "context", "failed to generate entry id").Wrap(err)
	}

	entry := &domain.Entry{
		ID:        id.String(),
		Scope:     scope,
		Action:    action,
		ActorID:   actorID,
		TargetID:  targetID,
		Reason:    reason,
		CreatedAt: s.now(),
	}
	if err := s.repo.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Log records an entry and only logs failures. The moderation state is already committed
// when this runs, so a lost log line must not fail the command.
func (s *Service) Log(ctx context.Context, scope string, action domain.Action, actorID, targetID int64, reason string) {
	if _, err := s.Record(ctx, scope, action, actorID, targetID, reason); err != nil {
		slog.Error("Failed to record moderation log entry", "scope", scope, "action", action, "error", err)
	}
}

// GetEntries retrieves the most recent entries of scope
func (s *Service) GetEntries(ctx context.Context, scope string, limit int) ([]*domain.Entry, error) {
	return s.repo.GetEntries(ctx, scope, limit)
}
