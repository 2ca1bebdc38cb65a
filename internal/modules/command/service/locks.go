package service

import (
	"context"
	"fmt"
	"strings"

	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
	"github.com/samber/lo"
)

func parseLockTypes(args []string) ([]chatDomain.LockType, []string) {
	var (
		types   []chatDomain.LockType
		invalid []string
	)
	for _, arg := range args {
		t, err := chatDomain.ParseLockType(arg)
		if err != nil {
			invalid = append(invalid, arg)
			continue
		}
		types = append(types, t)
	}
	return lo.Uniq(types), invalid
}

func (d *Dispatcher) lock(ctx context.Context, req *Request) (domain.Result, error) {
	types, invalid := parseLockTypes(req.Cmd.Args)
	if len(types) == 0 || len(invalid) > 0 {
		return domain.Failure(lockUsage("lock", invalid)), nil
	}
	chat, err := d.chats.Lock(ctx, req.ChatID, types...)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("🔒 Locked: %s\nCurrent locks: %s", joinTypes(types), lockSummary(chat))), nil
}

func (d *Dispatcher) unlock(ctx context.Context, req *Request) (domain.Result, error) {
	types, invalid := parseLockTypes(req.Cmd.Args)
	if len(types) == 0 || len(invalid) > 0 {
		return domain.Failure(lockUsage("unlock", invalid)), nil
	}
	chat, err := d.chats.Unlock(ctx, req.ChatID, types...)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("🔓 Unlocked: %s\nCurrent locks: %s", joinTypes(types), lockSummary(chat))), nil
}

func (d *Dispatcher) lockAll(ctx context.Context, req *Request) (domain.Result, error) {
	if _, err := d.chats.Lock(ctx, req.ChatID, chatDomain.LockTypeAll); err != nil {
		return domain.Result{}, err
	}
	return domain.Success("🔒 Chat fully locked. Only admins can post."), nil
}

func (d *Dispatcher) unlockAll(ctx context.Context, req *Request) (domain.Result, error) {
	if _, err := d.chats.Unlock(ctx, req.ChatID, chatDomain.LockTypeAll); err != nil {
		return domain.Result{}, err
	}
	return domain.Success("🔓 All locks removed."), nil
}

func (d *Dispatcher) locks(ctx context.Context, req *Request) (domain.Result, error) {
	chat, err := d.chats.GetChat(ctx, req.ChatID)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Success("🔒 Current locks: " + lockSummary(chat)), nil
}

func (d *Dispatcher) lockTypes(_ context.Context, _ *Request) (domain.Result, error) {
	return domain.Success(fmt.Sprintf("🔒 Lockable types:\n%s\n\nUse /lockall or /lock all to lock everything.", joinTypes(chatDomain.LockableTypes()))), nil
}

func parseCleanTypes(args []string) ([]chatDomain.CleanType, []string) {
	var (
		types   []chatDomain.CleanType
		invalid []string
	)
	for _, arg := range args {
		t, err := chatDomain.ParseCleanType(arg)
		if err != nil {
			invalid = append(invalid, arg)
			continue
		}
		types = append(types, t)
	}
	return lo.Uniq(types), invalid
}

func (d *Dispatcher) cleanMsg(ctx context.Context, req *Request) (domain.Result, error) {
	return d.setClean(ctx, req, true)
}

func (d *Dispatcher) keepMsg(ctx context.Context, req *Request) (domain.Result, error) {
	return d.setClean(ctx, req, false)
}

func (d *Dispatcher) setClean(ctx context.Context, req *Request, enabled bool) (domain.Result, error) {
	types, invalid := parseCleanTypes(req.Cmd.Args)
	if len(types) == 0 || len(invalid) > 0 {
		text := fmt.Sprintf("Usage: /%s <type>\nTypes: %s", req.Cmd.Name, strings.Join(chatDomain.CleanTypeNames(), ", "))
		if len(invalid) > 0 {
			text = fmt.Sprintf("❌ Unknown type: %s\n%s", strings.Join(invalid, ", "), text)
		}
		return domain.Failure(text), nil
	}

	chat, err := d.chats.SetClean(ctx, req.ChatID, enabled, types...)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Success("🧹 Cleaning: " + cleanSummary(chat)), nil
}

func (d *Dispatcher) cleanMsgTypes(_ context.Context, _ *Request) (domain.Result, error) {
	return domain.Success(`🧹 Cleanable types:
• action - moderation commands
• note - note requests
• warn - warn commands
• report - reports
• filter - messages that triggered a filter
• all - everything above`), nil
}

func lockUsage(name string, invalid []string) string {
	text := fmt.Sprintf("Usage: /%s <type>\nTypes: %s", name, strings.Join(chatDomain.LockTypeNames(), ", "))
	if len(invalid) > 0 {
		text = fmt.Sprintf("❌ Unknown type: %s\n%s", strings.Join(invalid, ", "), text)
	}
	return text
}

func joinTypes[T ~string](types []T) string {
	return strings.Join(lo.Map(types, func(t T, _ int) string { return string(t) }), ", ")
}

func lockSummary(chat *chatDomain.Chat) string {
	if chat.FullyLocked {
		return "all"
	}
	if len(chat.LockedTypes) == 0 {
		return "none"
	}
	return joinTypes(chat.LockedTypes)
}

func cleanSummary(chat *chatDomain.Chat) string {
	if len(chat.CleanTypes) == 0 {
		return "none"
	}
	return joinTypes(chat.CleanTypes)
}
