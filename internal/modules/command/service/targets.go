package service

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"

	authDomain "github.com/reshetovitsme/groupguard/internal/modules/auth/domain"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/samber/oops"
)

// target resolves the user a command acts on: the author of the replied message, a numeric
// ID or an @username. It returns the arguments left after the user reference.
func (d *Dispatcher) target(ctx context.Context, req *Request) (userDomain.Profile, []string, error) {
	args := req.Cmd.Args

	if reply := req.Cmd.ReplyTo; reply != nil && !req.Remote && reply.Author.ID != 0 {
		return reply.Author, args, nil
	}
	if len(args) == 0 {
		return userDomain.Profile{}, nil, reject(errors.ErrInvalidTarget, msgUserNotFound)
	}

	ref := args[0]
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		profile := userDomain.Profile{ID: id}
		if user, err := d.users.GetUser(ctx, id); err == nil {
			profile = user.Profile()
		}
		return profile, args[1:], nil
	}

	if strings.HasPrefix(ref, "@") {
		user, err := d.users.FindByUsername(ctx, ref)
		if err != nil {
			if stderrors.Is(err, errors.ErrNotFound) {
				return userDomain.Profile{}, nil, reject(errors.ErrInvalidTarget, msgUserNotFound)
			}
			return userDomain.Profile{}, nil, err
		}
		return user.Profile(), args[1:], nil
	}

	return userDomain.Profile{}, nil, reject(oops.With("ref", ref).Wrap(errors.ErrInvalidTarget), msgUserNotFound)
}

// targetOrSelf is target falling back to the actor when no user is referenced
func (d *Dispatcher) targetOrSelf(ctx context.Context, req *Request) (userDomain.Profile, []string, error) {
	if len(req.Cmd.Args) == 0 && (req.Cmd.ReplyTo == nil || req.Remote) {
		return req.Cmd.Actor, nil, nil
	}
	return d.target(ctx, req)
}

// protect refuses to act on the bot itself and on anyone with admin rights in the chat
func (d *Dispatcher) protect(ctx context.Context, req *Request, target userDomain.Profile) error {
	if d.botID != 0 && target.ID == d.botID {
		return reject(errors.ErrInvalidTarget, "❌ I'm not going to do that to myself!")
	}
	if d.resolver.Resolve(ctx, target.ID, req.ChatID, false).Satisfies(authDomain.TierChatAdmin) {
		return reject(errors.ErrInvalidTarget, msgProtected)
	}
	return nil
}

// protectGlobal refuses to act on the owner and sudo users
func (d *Dispatcher) protectGlobal(ctx context.Context, target userDomain.Profile) error {
	if d.botID != 0 && target.ID == d.botID {
		return reject(errors.ErrInvalidTarget, "❌ I'm not going to do that to myself!")
	}
	if d.resolver.Authority().IsOwner(target.ID) || d.resolver.IsSudo(ctx, target.ID) {
		return reject(errors.ErrInvalidTarget, "❌ I can't do that to a sudo user!")
	}
	return nil
}

func reason(args []string) string {
	return strings.Join(args, " ")
}
