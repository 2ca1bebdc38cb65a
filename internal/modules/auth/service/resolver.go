package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/reshetovitsme/groupguard/internal/modules/auth/domain"
	userRepo "github.com/reshetovitsme/groupguard/internal/modules/user/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/platform"
)

// Resolver computes the permission tier of an actor in a chat
type Resolver struct {
	authority domain.Authority
	users     userRepo.Repository
	admins    platform.AdminLookup
	timeout   time.Duration
}

// NewResolver creates a resolver. timeout bounds each admin lookup; zero means no bound.
func NewResolver(authority domain.Authority, users userRepo.Repository, admins platform.AdminLookup, timeout time.Duration) *Resolver {
	return &Resolver{
		authority: authority,
		users:     users,
		admins:    admins,
		timeout:   timeout,
	}
}

// Authority returns the configured owner and sudo set
func (r *Resolver) Authority() domain.Authority {
	return r.authority
}

// Resolve returns the actor's tier. Without a group context (private chat) every actor is at
// least ChatAdmin. A failed or timed out admin lookup resolves to Member.
func (r *Resolver) Resolve(ctx context.Context, actorID, chatID int64, private bool) domain.Tier {
	if r.authority.IsOwner(actorID) {
		return domain.TierOwner
	}
	if r.IsSudo(ctx, actorID) {
		return domain.TierSudo
	}
	if private {
		return domain.TierChatAdmin
	}
	if r.isChatAdmin(ctx, actorID, chatID) {
		return domain.TierChatAdmin
	}
	return domain.TierMember
}

// IsSudo reports whether the actor is a configured or runtime-promoted sudo user
func (r *Resolver) IsSudo(ctx context.Context, actorID int64) bool {
	if r.authority.IsConfiguredSudo(actorID) {
		return true
	}

	user, err := r.users.GetUser(ctx, actorID)
	if err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			slog.Warn("Failed to load user for sudo check", "user_id", actorID, "error", err)
		}
		return false
	}
	return user.IsSudo
}

func (r *Resolver) isChatAdmin(ctx context.Context, actorID, chatID int64) bool {
	if r.admins == nil {
		return false
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	type lookup struct {
		admin bool
		err   error
	}
	done := make(chan lookup, 1)
	go func() {
		admin, err := r.admins.IsChatAdmin(ctx, chatID, actorID)
		done <- lookup{admin: admin, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			slog.Warn("Admin lookup failed, treating as member", "chat_id", chatID, "user_id", actorID, "error", res.err)
			return false
		}
		return res.admin
	case <-ctx.Done():
		slog.Warn("Admin lookup timed out, treating as member", "chat_id", chatID, "user_id", actorID, "error", ctx.Err())
		return false
	}
}
