package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	authDomain "github.com/reshetovitsme/groupguard/internal/modules/auth/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
)

// connect links the actor to a chat. In a group it connects to that group; in a private chat
// it takes a chat ID, or lists recent connections without one.
func (d *Dispatcher) connect(ctx context.Context, req *Request) (domain.Result, error) {
	chatID := req.Cmd.ChatID
	if req.Cmd.IsPrivate() {
		if len(req.Cmd.Args) == 0 {
			return d.recentConnections(ctx, req)
		}
		id, err := strconv.ParseInt(req.Cmd.Args[0], 10, 64)
		if err != nil {
			return domain.Failure("Usage: /connect <chat id>"), nil
		}
		chatID = id
	} else if !req.Cmd.IsGroup() {
		return domain.Result{}, reject(errors.ErrGroupOnly, msgGroupOnly)
	}

	chat, err := d.chats.GetChat(ctx, chatID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Result{}, reject(err, "❌ I don't know that chat. Add me there first.")
		}
		return domain.Result{}, err
	}

	if !d.resolver.Resolve(ctx, req.Cmd.Actor.ID, chatID, false).Satisfies(authDomain.TierChatAdmin) {
		return domain.Result{}, reject(errors.ErrPermissionDenied, msgNeedAdmin)
	}

	if _, err := d.connections.Connect(ctx, req.Cmd.Actor.ID, chat.ID, chat.Title); err != nil {
		return domain.Result{}, err
	}

	if req.Cmd.IsGroup() {
		return domain.Success("✅ Connected to this chat!\nSend me commands in private to manage it."), nil
	}
	return domain.Success(fmt.Sprintf("✅ Connected to chat: %s\nUse /connection to see info\nUse /disconnect to disconnect", chat.Title)), nil
}

func (d *Dispatcher) recentConnections(ctx context.Context, req *Request) (domain.Result, error) {
	history, err := d.connections.History(ctx, req.Cmd.Actor.ID)
	if err != nil {
		return domain.Result{}, err
	}
	if len(history) == 0 {
		return domain.Success("Usage: /connect <chat id>\nOr send /connect in the group you want to manage."), nil
	}

	var text strings.Builder
	text.WriteString("Recent connections:\n")
	for i := len(history) - 1; i >= 0; i-- {
		text.WriteString(fmt.Sprintf("• %s (%d)\n", history[i].ChatTitle, history[i].ChatID))
	}
	text.WriteString("\nUsage: /connect <chat id>")
	return domain.Success(text.String()), nil
}

func (d *Dispatcher) disconnect(ctx context.Context, req *Request) (domain.Result, error) {
	var chatID *int64
	if len(req.Cmd.Args) > 0 {
		id, err := strconv.ParseInt(req.Cmd.Args[0], 10, 64)
		if err != nil {
			return domain.Failure("Usage: /disconnect [chat id]"), nil
		}
		chatID = &id
	}

	removed, err := d.connections.Disconnect(ctx, req.Cmd.Actor.ID, chatID)
	if err != nil {
		return domain.Result{}, err
	}
	if removed == 0 {
		return domain.Failure("ℹ️ You were not connected."), nil
	}
	return domain.Success("✅ Disconnected."), nil
}

func (d *Dispatcher) reconnect(ctx context.Context, req *Request) (domain.Result, error) {
	last, err := d.connections.LastActive(ctx, req.Cmd.Actor.ID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Result{}, reject(err, "❌ No previous connection to restore.")
		}
		return domain.Result{}, err
	}

	if !d.resolver.Resolve(ctx, req.Cmd.Actor.ID, last.ChatID, false).Satisfies(authDomain.TierChatAdmin) {
		return domain.Result{}, reject(errors.ErrPermissionDenied, msgNeedAdmin)
	}

	if _, err := d.connections.Connect(ctx, req.Cmd.Actor.ID, last.ChatID, last.ChatTitle); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("✅ Reconnected to %s.", last.ChatTitle)), nil
}

func (d *Dispatcher) connection(ctx context.Context, req *Request) (domain.Result, error) {
	current, err := d.connections.Current(ctx, req.Cmd.Actor.ID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Result{}, reject(err, msgNotConnected)
		}
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("🔗 Connected to: %s\nChat ID: %d\nSince: %s",
		current.ChatTitle, current.ChatID, current.ConnectedAt.Format("2006-01-02 15:04"))), nil
}
