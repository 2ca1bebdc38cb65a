package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
	moderationService "github.com/reshetovitsme/groupguard/internal/modules/moderation/service"
	"github.com/reshetovitsme/groupguard/internal/shared/platform"
	"github.com/samber/lo"
)

// purgeLimit bounds the number of messages a single /purge deletes
const purgeLimit = 100

func (d *Dispatcher) ban(ctx context.Context, req *Request) (domain.Result, error) {
	req.Clean = chatDomain.CleanTypeAction
	target, rest, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	if err := d.protect(ctx, req, target); err != nil {
		return domain.Result{}, err
	}

	why := reason(rest)
	outcome, err := d.moderation.Ban(ctx, req.ChatID, target.ID, req.Cmd.Actor.ID, why)
	if err != nil {
		return domain.Result{}, err
	}
	if !outcome.Changed {
		return domain.Success(fmt.Sprintf("ℹ️ %s is already banned.", target.Mention())), nil
	}
	return domain.Success(withReason(fmt.Sprintf("🔨 Banned %s!", target.Mention()), why), outcome.Actions...), nil
}

func (d *Dispatcher) unban(ctx context.Context, req *Request) (domain.Result, error) {
	req.Clean = chatDomain.CleanTypeAction
	target, _, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}

	outcome, err := d.moderation.Unban(ctx, req.ChatID, target.ID, req.Cmd.Actor.ID)
	if err != nil {
		return domain.Result{}, err
	}
	if !outcome.Changed {
		return domain.Failure(fmt.Sprintf("ℹ️ %s is not banned.", target.Mention())), nil
	}
	return domain.Success(fmt.Sprintf("✅ Unbanned %s!", target.Mention()), outcome.Actions...), nil
}

func (d *Dispatcher) mute(ctx context.Context, req *Request) (domain.Result, error) {
	req.Clean = chatDomain.CleanTypeAction
	target, rest, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	if err := d.protect(ctx, req, target); err != nil {
		return domain.Result{}, err
	}

	var duration time.Duration
	if len(rest) > 0 {
		if parsed, err := moderationService.ParseDuration(rest[0]); err == nil {
			duration = parsed
			rest = rest[1:]
		}
	}

	why := reason(rest)
	outcome, err := d.moderation.Mute(ctx, req.ChatID, target.ID, req.Cmd.Actor.ID, duration, why)
	if err != nil {
		return domain.Result{}, err
	}

	text := fmt.Sprintf("🔇 Muted %s!", target.Mention())
	if duration > 0 {
		text = fmt.Sprintf("🔇 Muted %s for %s!", target.Mention(), duration)
	}
	return domain.Success(withReason(text, why), outcome.Actions...), nil
}

func (d *Dispatcher) unmute(ctx context.Context, req *Request) (domain.Result, error) {
	req.Clean = chatDomain.CleanTypeAction
	target, _, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}

	outcome, err := d.moderation.Unmute(ctx, req.ChatID, target.ID, req.Cmd.Actor.ID)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("🔊 Unmuted %s!", target.Mention()), outcome.Actions...), nil
}

func (d *Dispatcher) kick(ctx context.Context, req *Request) (domain.Result, error) {
	req.Clean = chatDomain.CleanTypeAction
	target, rest, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	if err := d.protect(ctx, req, target); err != nil {
		return domain.Result{}, err
	}

	why := reason(rest)
	outcome, err := d.moderation.Kick(ctx, req.ChatID, target.ID, req.Cmd.Actor.ID, why)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Success(withReason(fmt.Sprintf("👢 Kicked %s!", target.Mention()), why), outcome.Actions...), nil
}

func (d *Dispatcher) warn(ctx context.Context, req *Request) (domain.Result, error) {
	req.Clean = chatDomain.CleanTypeWarn
	target, rest, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	if err := d.protect(ctx, req, target); err != nil {
		return domain.Result{}, err
	}

	why := reason(rest)
	outcome, err := d.moderation.Warn(ctx, req.ChatID, target.ID, req.Cmd.Actor.ID, why)
	if err != nil {
		return domain.Result{}, err
	}

	text := fmt.Sprintf("⚠️ %s has been warned (%d/%d)", target.Mention(), outcome.Count, outcome.Limit)
	if outcome.Count >= outcome.Limit {
		if outcome.Banned {
			text = fmt.Sprintf("🔨 %s reached the warn limit (%d/%d) and has been banned!", target.Mention(), outcome.Count, outcome.Limit)
		} else {
			text = fmt.Sprintf("⚠️ %s has been warned (%d/%d) and is already banned.", target.Mention(), outcome.Count, outcome.Limit)
		}
	}
	return domain.Success(withReason(text, why), outcome.Actions...), nil
}

func (d *Dispatcher) unwarn(ctx context.Context, req *Request) (domain.Result, error) {
	req.Clean = chatDomain.CleanTypeWarn
	target, rest, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}

	warnID := ""
	if len(rest) > 0 {
		warnID = rest[0]
	}
	_, remaining, err := d.moderation.Unwarn(ctx, req.ChatID, target.ID, req.Cmd.Actor.ID, warnID)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("✅ Removed a warning from %s (%d left).", target.Mention(), remaining)), nil
}

func (d *Dispatcher) warns(ctx context.Context, req *Request) (domain.Result, error) {
	target, _, err := d.targetOrSelf(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}

	warns, err := d.moderation.Warns(ctx, req.ChatID, target.ID)
	if err != nil {
		return domain.Result{}, err
	}
	if len(warns) == 0 {
		return domain.Success(fmt.Sprintf("✅ %s has no warnings.", target.Mention())), nil
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("⚠️ %s has %d warning(s):\n", target.Mention(), len(warns)))
	for i, w := range warns {
		why := lo.Ternary(w.Reason == "", "no reason", w.Reason)
		text.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, why, w.ID))
	}
	return domain.Success(strings.TrimRight(text.String(), "\n")), nil
}

func (d *Dispatcher) resetWarns(ctx context.Context, req *Request) (domain.Result, error) {
	req.Clean = chatDomain.CleanTypeWarn
	target, _, err := d.target(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}

	removed, err := d.moderation.ResetWarns(ctx, req.ChatID, target.ID, req.Cmd.Actor.ID)
	if err != nil {
		return domain.Result{}, err
	}
	if removed == 0 {
		return domain.Success(fmt.Sprintf("ℹ️ %s has no warnings.", target.Mention())), nil
	}
	return domain.Success(fmt.Sprintf("✅ Cleared %d warning(s) of %s.", removed, target.Mention())), nil
}

func (d *Dispatcher) del(_ context.Context, req *Request) (domain.Result, error) {
	if req.Cmd.ReplyTo == nil {
		return domain.Failure("Reply to the message you want to delete."), nil
	}
	return domain.Result{
		OK: true,
		Actions: []platform.Action{
			platform.DeleteMessage(req.ChatID, req.Cmd.ReplyTo.MessageID),
			platform.DeleteMessage(req.ChatID, req.Cmd.MessageID),
		},
	}, nil
}

// purge deletes every message from the replied one up to the command, newest last
func (d *Dispatcher) purge(_ context.Context, req *Request) (domain.Result, error) {
	if req.Cmd.ReplyTo == nil {
		return domain.Failure("Reply to the message you want to purge from."), nil
	}

	from, to := req.Cmd.ReplyTo.MessageID, req.Cmd.MessageID
	if from > to {
		from, to = to, from
	}
	if to-from+1 > purgeLimit {
		from = to - purgeLimit + 1
	}

	actions := lo.Map(lo.RangeFrom(from, to-from+1), func(id int, _ int) platform.Action {
		return platform.DeleteMessage(req.ChatID, id)
	})
	return domain.Success(fmt.Sprintf("🧹 Purged %d message(s).", len(actions)), actions...), nil
}

func withReason(text, why string) string {
	if why == "" {
		return text
	}
	return text + "\nReason: " + why
}
