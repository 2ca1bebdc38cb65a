package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
	fedDomain "github.com/reshetovitsme/groupguard/internal/modules/federation/domain"
	modlogDomain "github.com/reshetovitsme/groupguard/internal/modules/modlog/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
)

func (d *Dispatcher) globalBan(ctx context.Context, req *Request) (domain.Result, error) {
	target, rest, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	if err := d.protectGlobal(ctx, target); err != nil {
		return domain.Result{}, err
	}

	var chatID int64
	if req.Cmd.IsGroup() {
		chatID = req.Cmd.ChatID
	}

	_, outcome, err := d.moderation.GlobalBan(ctx, target.ID, req.Cmd.Actor.ID, reason(rest), chatID)
	if err != nil {
		if stderrors.Is(err, errors.ErrAlreadyExists) {
			return domain.Failure(fmt.Sprintf("ℹ️ %s is already globally banned.", target.Mention())), nil
		}
		return domain.Result{}, err
	}

	text := fmt.Sprintf("🌍 %s has been globally banned.", target.Mention())
	if r := reason(rest); r != "" {
		text += "\nReason: " + r
	}
	return domain.Success(text, outcome.Actions...), nil
}

func (d *Dispatcher) removeGlobalBan(ctx context.Context, req *Request) (domain.Result, error) {
	target, _, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}

	if err := d.moderation.RemoveGlobalBan(ctx, target.ID, req.Cmd.Actor.ID); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Failure(fmt.Sprintf("ℹ️ %s is not globally banned.", target.Mention())), nil
		}
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("✅ %s is no longer globally banned.", target.Mention())), nil
}

func (d *Dispatcher) globalBanList(ctx context.Context, _ *Request) (domain.Result, error) {
	bans, err := d.gbans.List(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	if len(bans) == 0 {
		return domain.Success("📭 No globally banned users."), nil
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("🌍 Globally banned users (%d):\n", len(bans)))
	for _, ban := range bans {
		text.WriteString(fmt.Sprintf("• %d", ban.UserID))
		if ban.Reason != "" {
			text.WriteString(" - " + ban.Reason)
		}
		text.WriteString("\n")
	}
	return domain.Success(strings.TrimRight(text.String(), "\n")), nil
}

func (d *Dispatcher) newFed(ctx context.Context, req *Request) (domain.Result, error) {
	name := req.Cmd.RawArgs
	if name == "" {
		return domain.Failure("Usage: /newfed <name>"), nil
	}

	fed, err := d.feds.Create(ctx, name, req.Cmd.Actor.ID)
	if err != nil {
		return domain.Result{}, err
	}
	d.modlog.Log(ctx, modlogDomain.FedScope(fed.ID), modlogDomain.ActionFedCreate, req.Cmd.Actor.ID, 0, fed.Name)
	return domain.Success(fmt.Sprintf("✅ Federation created!\nName: %s\nID: %s\n\nUse /joinfed %s in a group to add it.", fed.Name, fed.ID, fed.ID)), nil
}

func (d *Dispatcher) deleteFed(ctx context.Context, req *Request) (domain.Result, error) {
	if len(req.Cmd.Args) == 0 {
		return domain.Failure("Usage: /delfed <fed id>"), nil
	}
	fedID := req.Cmd.Args[0]

	if err := d.feds.Delete(ctx, fedID, req.Cmd.Actor.ID); err != nil {
		if stderrors.Is(err, errors.ErrPermissionDenied) {
			return domain.Result{}, reject(err, "❌ Only the federation owner can delete it!")
		}
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Result{}, reject(err, "❌ Federation not found!")
		}
		return domain.Result{}, err
	}
	d.modlog.Log(ctx, modlogDomain.FedScope(fedID), modlogDomain.ActionFedDelete, req.Cmd.Actor.ID, 0, "")
	return domain.Success("🗑 Federation deleted."), nil
}

func (d *Dispatcher) fedInfo(ctx context.Context, req *Request) (domain.Result, error) {
	var (
		fed *fedDomain.Federation
		err error
	)
	switch {
	case len(req.Cmd.Args) > 0:
		fed, err = d.feds.Get(ctx, req.Cmd.Args[0])
	case req.Cmd.IsGroup():
		fed, err = d.feds.ChatFederation(ctx, req.Cmd.ChatID)
	default:
		return domain.Failure("Usage: /fedinfo <fed id>"), nil
	}
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Result{}, reject(err, "❌ Federation not found!")
		}
		return domain.Result{}, err
	}

	return domain.Success(fmt.Sprintf("🏛 Federation info\nName: %s\nID: %s\nOwner: %d\nAdmins: %d\nChats: %d\nBanned users: %d",
		fed.Name, fed.ID, fed.OwnerID, len(fed.AdminIDs), len(fed.ChatIDs), len(fed.Bans))), nil
}

// chatFed returns the federation of the chat a fed command is used in
func (d *Dispatcher) chatFed(ctx context.Context, req *Request) (*fedDomain.Federation, error) {
	fed, err := d.feds.ChatFederation(ctx, req.ChatID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return nil, reject(err, "❌ This chat is not in any federation!")
		}
		return nil, err
	}
	return fed, nil
}

func fedError(err error) error {
	if stderrors.Is(err, errors.ErrPermissionDenied) {
		return reject(err, "❌ Only federation admins can do that!")
	}
	return err
}

func (d *Dispatcher) fedBan(ctx context.Context, req *Request) (domain.Result, error) {
	fed, err := d.chatFed(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	target, rest, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	if d.botID != 0 && target.ID == d.botID {
		return domain.Result{}, reject(errors.ErrInvalidTarget, "❌ I'm not going to do that to myself!")
	}

	if _, err := d.moderation.FedBan(ctx, fed.ID, target.ID, req.Cmd.Actor.ID, reason(rest)); err != nil {
		if stderrors.Is(err, errors.ErrInvalidTarget) {
			return domain.Result{}, reject(err, "❌ The federation owner can't be banned!")
		}
		return domain.Result{}, fedError(err)
	}
	return domain.Success(fmt.Sprintf("🏛 %s has been banned in federation %s.", target.Mention(), fed.Name)), nil
}

func (d *Dispatcher) fedUnban(ctx context.Context, req *Request) (domain.Result, error) {
	fed, err := d.chatFed(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	target, _, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}

	if _, err := d.moderation.FedUnban(ctx, fed.ID, target.ID, req.Cmd.Actor.ID); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Failure(fmt.Sprintf("ℹ️ %s is not banned in this federation.", target.Mention())), nil
		}
		return domain.Result{}, fedError(err)
	}
	return domain.Success(fmt.Sprintf("✅ %s has been unbanned in federation %s.", target.Mention(), fed.Name)), nil
}

func (d *Dispatcher) fedPromote(ctx context.Context, req *Request) (domain.Result, error) {
	fed, err := d.chatFed(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	target, _, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}

	if _, err := d.feds.AddAdmin(ctx, fed.ID, target.ID, req.Cmd.Actor.ID); err != nil {
		if stderrors.Is(err, errors.ErrPermissionDenied) {
			return domain.Result{}, reject(err, "❌ Only the federation owner can do that!")
		}
		if stderrors.Is(err, errors.ErrAlreadyExists) {
			return domain.Failure(fmt.Sprintf("ℹ️ %s is already a federation admin.", target.Mention())), nil
		}
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("✅ %s is now an admin of %s.", target.Mention(), fed.Name)), nil
}

func (d *Dispatcher) fedDemote(ctx context.Context, req *Request) (domain.Result, error) {
	fed, err := d.chatFed(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	target, _, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}

	if _, err := d.feds.RemoveAdmin(ctx, fed.ID, target.ID, req.Cmd.Actor.ID); err != nil {
		if stderrors.Is(err, errors.ErrPermissionDenied) {
			return domain.Result{}, reject(err, "❌ Only the federation owner can do that!")
		}
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Failure(fmt.Sprintf("ℹ️ %s is not a federation admin.", target.Mention())), nil
		}
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("✅ %s is no longer an admin of %s.", target.Mention(), fed.Name)), nil
}

func (d *Dispatcher) joinFed(ctx context.Context, req *Request) (domain.Result, error) {
	if len(req.Cmd.Args) == 0 {
		return domain.Failure("Usage: /joinfed <fed id>"), nil
	}

	fed, err := d.feds.JoinChat(ctx, req.Cmd.Args[0], req.ChatID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Result{}, reject(err, "❌ Federation not found!")
		}
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("✅ This chat joined federation %s.", fed.Name)), nil
}

func (d *Dispatcher) leaveFed(ctx context.Context, req *Request) (domain.Result, error) {
	fed, err := d.chatFed(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	if err := d.feds.LeaveChat(ctx, req.ChatID); err != nil {
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("✅ This chat left federation %s.", fed.Name)), nil
}

func (d *Dispatcher) myFeds(ctx context.Context, req *Request) (domain.Result, error) {
	feds, err := d.feds.ListOwned(ctx, req.Cmd.Actor.ID)
	if err != nil {
		return domain.Result{}, err
	}
	if len(feds) == 0 {
		return domain.Success("📭 You don't own any federations. Use /newfed to create one."), nil
	}

	var text strings.Builder
	text.WriteString("🏛 Your federations:\n")
	for _, fed := range feds {
		text.WriteString(fmt.Sprintf("• %s (%s)\n", fed.Name, fed.ID))
	}
	return domain.Success(strings.TrimRight(text.String(), "\n")), nil
}
