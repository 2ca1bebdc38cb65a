package service

import (
	"context"
	stderrors "errors"
	"log/slog"

	authDomain "github.com/reshetovitsme/groupguard/internal/modules/auth/domain"
	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
)

// Request is a command on its way through the guard chain
type Request struct {
	Cmd *domain.Command
	// ChatID is the chat the command acts on: the connected chat when the command is sent
	// from a private chat, the chat it was sent in otherwise
	ChatID    int64
	ChatTitle string
	Remote    bool
	Tier      authDomain.Tier
	// Privileged is set once an admin tier check passed
	Privileged bool
	// Clean is the category of the command message for cleanup
	Clean chatDomain.CleanType
}

// HandlerFunc handles a command
type HandlerFunc func(ctx context.Context, req *Request) (domain.Result, error)

// Guard wraps a handler with a precondition
type Guard func(next HandlerFunc) HandlerFunc

// Chain applies guards to h. The first guard runs first.
func Chain(h HandlerFunc, guards ...Guard) HandlerFunc {
	for i := len(guards) - 1; i >= 0; i-- {
		h = guards[i](h)
	}
	return h
}

// userError carries the text shown to the user for an error
type userError struct {
	err error
	msg string
}

func (e *userError) Error() string {
	return e.err.Error()
}

func (e *userError) Unwrap() error {
	return e.err
}

func reject(err error, msg string) error {
	return &userError{err: err, msg: msg}
}

func userMessage(err error) (string, bool) {
	var ue *userError
	if stderrors.As(err, &ue) {
		return ue.msg, true
	}
	return "", false
}

// RequireGroup rejects commands sent outside groups
func RequireGroup(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req *Request) (domain.Result, error) {
		if !req.Cmd.IsGroup() {
			return domain.Result{}, reject(errors.ErrGroupOnly, msgGroupOnly)
		}
		return next(ctx, req)
	}
}

// RequirePrivate rejects commands sent outside private chats
func RequirePrivate(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req *Request) (domain.Result, error) {
		if !req.Cmd.IsPrivate() {
			return domain.Result{}, reject(errors.ErrPrivateOnly, msgPrivateOnly)
		}
		return next(ctx, req)
	}
}

// ConnectedChat points commands sent from a private chat at the user's current connection
func (d *Dispatcher) ConnectedChat(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req *Request) (domain.Result, error) {
		if !req.Cmd.IsPrivate() {
			return next(ctx, req)
		}

		connection, err := d.connections.Current(ctx, req.Cmd.Actor.ID)
		if err != nil {
			if stderrors.Is(err, errors.ErrNotFound) {
				return domain.Result{}, reject(errors.ErrNotFound, msgNotConnected)
			}
			return domain.Result{}, err
		}

		req.ChatID = connection.ChatID
		req.ChatTitle = connection.ChatTitle
		req.Remote = true
		return next(ctx, req)
	}
}

// RequireTier rejects actors below the required tier in the target chat
func (d *Dispatcher) RequireTier(required authDomain.Tier) Guard {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) (domain.Result, error) {
			private := req.Cmd.IsPrivate() && !req.Remote
			req.Tier = d.resolver.Resolve(ctx, req.Cmd.Actor.ID, req.ChatID, private)

			if !req.Tier.Satisfies(required) {
				slog.Info("Admin command denied",
					"user_id", req.Cmd.Actor.ID,
					"chat_id", req.ChatID,
					"command", req.Cmd.Name,
					"tier", req.Tier,
					"required", required)
				return domain.Result{}, reject(errors.ErrPermissionDenied, deniedMessage(required))
			}

			if required >= authDomain.TierChatAdmin {
				req.Privileged = true
			}
			return next(ctx, req)
		}
	}
}

func deniedMessage(required authDomain.Tier) string {
	switch required {
	case authDomain.TierOwner:
		return msgOwnerOnly
	case authDomain.TierSudo:
		return msgSudoOnly
	case authDomain.TierChatAdmin:
		return msgNeedAdmin
	default:
		return msgNoPermission
	}
}
