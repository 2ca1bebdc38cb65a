package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
	modlogDomain "github.com/reshetovitsme/groupguard/internal/modules/modlog/domain"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	"github.com/samber/lo"
)

func (d *Dispatcher) start(_ context.Context, _ *Request) (domain.Result, error) {
	text := startMessage
	if d.cfg.SupportChat != "" {
		text += "\nSupport: " + d.cfg.SupportChat
	}
	return domain.Success(text), nil
}

func (d *Dispatcher) help(_ context.Context, _ *Request) (domain.Result, error) {
	return domain.Success(helpMessage), nil
}

func (d *Dispatcher) id(_ context.Context, req *Request) (domain.Result, error) {
	if reply := req.Cmd.ReplyTo; reply != nil && reply.Author.ID != 0 {
		return domain.Success(fmt.Sprintf("👤 %s's ID: %d", reply.Author.Mention(), reply.Author.ID)), nil
	}

	text := fmt.Sprintf("👤 Your ID: %d", req.Cmd.Actor.ID)
	if req.Cmd.IsGroup() {
		text += fmt.Sprintf("\n💬 Chat ID: %d", req.Cmd.ChatID)
	}
	return domain.Success(text), nil
}

func (d *Dispatcher) addSudo(ctx context.Context, req *Request) (domain.Result, error) {
	target, _, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	if d.resolver.Authority().IsOwner(target.ID) || d.resolver.IsSudo(ctx, target.ID) {
		return domain.Failure(fmt.Sprintf("ℹ️ %s is already a sudo user.", target.Mention())), nil
	}

	if _, err := d.users.SetSudo(ctx, target.ID, true); err != nil {
		return domain.Result{}, err
	}
	d.modlog.Log(ctx, modlogDomain.GlobalScope, modlogDomain.ActionSudoAdd, req.Cmd.Actor.ID, target.ID, "")
	return domain.Success(fmt.Sprintf("✅ %s is now a sudo user.", target.Mention())), nil
}

func (d *Dispatcher) removeSudo(ctx context.Context, req *Request) (domain.Result, error) {
	target, _, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	if d.resolver.Authority().IsConfiguredSudo(target.ID) {
		return domain.Failure(fmt.Sprintf("❌ %s is a sudo user in the bot configuration and can't be removed here.", target.Mention())), nil
	}

	changed, err := d.users.SetSudo(ctx, target.ID, false)
	if err != nil {
		return domain.Result{}, err
	}
	if !changed {
		return domain.Failure(fmt.Sprintf("ℹ️ %s is not a sudo user.", target.Mention())), nil
	}
	d.modlog.Log(ctx, modlogDomain.GlobalScope, modlogDomain.ActionSudoRemove, req.Cmd.Actor.ID, target.ID, "")
	return domain.Success(fmt.Sprintf("✅ %s is no longer a sudo user.", target.Mention())), nil
}

func (d *Dispatcher) sudoList(ctx context.Context, _ *Request) (domain.Result, error) {
	promoted, err := d.users.ListSudo(ctx)
	if err != nil {
		return domain.Result{}, err
	}

	var text strings.Builder
	text.WriteString("👑 Sudo users:\n")
	if owner := d.resolver.Authority().OwnerID(); owner != 0 {
		text.WriteString(fmt.Sprintf("• %d (owner)\n", owner))
	}
	for _, id := range d.resolver.Authority().SudoIDs() {
		text.WriteString(fmt.Sprintf("• %d (config)\n", id))
	}
	for _, user := range lo.Reject(promoted, func(u *userDomain.User, _ int) bool {
		return d.resolver.Authority().IsConfiguredSudo(u.ID)
	}) {
		text.WriteString(fmt.Sprintf("• %d %s\n", user.ID, user.Profile().Mention()))
	}
	return domain.Success(strings.TrimRight(text.String(), "\n")), nil
}

func (d *Dispatcher) stats(ctx context.Context, _ *Request) (domain.Result, error) {
	chats, err := d.chats.GetAllChats(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	users, err := d.users.GetAllUsers(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	bans, err := d.gbans.List(ctx)
	if err != nil {
		return domain.Result{}, err
	}

	text := fmt.Sprintf("📊 Stats:\n\nChats: %d\nUsers: %d\nGlobal bans: %d", len(chats), len(users), len(bans))

	inconsistent, err := d.gbans.Inconsistent(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	if len(inconsistent) > 0 {
		text += fmt.Sprintf("\n⚠️ Users with a stale global ban flag: %v", inconsistent)
	}
	return domain.Success(text), nil
}
