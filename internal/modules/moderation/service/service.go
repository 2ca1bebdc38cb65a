package service

import (
	"context"
	"time"

	fedDomain "github.com/reshetovitsme/groupguard/internal/modules/federation/domain"
	fedService "github.com/reshetovitsme/groupguard/internal/modules/federation/service"
	gbanDomain "github.com/reshetovitsme/groupguard/internal/modules/gban/domain"
	gbanService "github.com/reshetovitsme/groupguard/internal/modules/gban/service"
	modlogDomain "github.com/reshetovitsme/groupguard/internal/modules/modlog/domain"
	modlogService "github.com/reshetovitsme/groupguard/internal/modules/modlog/service"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	userService "github.com/reshetovitsme/groupguard/internal/modules/user/service"
	warnDomain "github.com/reshetovitsme/groupguard/internal/modules/warn/domain"
	warnService "github.com/reshetovitsme/groupguard/internal/modules/warn/service"
	"github.com/reshetovitsme/groupguard/internal/shared/platform"
	"github.com/samber/lo"
)

// Outcome is what a moderation step changed and which platform actions it requests.
// Changed is false when the step was a no-op, for example banning a user twice.
type Outcome struct {
	Changed bool
	Actions []platform.Action
}

// WarnOutcome describes an issued warn and whether it triggered a ban
type WarnOutcome struct {
	Warn    *warnDomain.Warn
	Count   int
	Limit   int
	Banned  bool
	Actions []platform.Action
}

// Service is the moderation state machine: chat bans, mutes, kicks, warns with automatic
// ban, global bans and federation bans. Every step is recorded in the moderation log.
type Service struct {
	users  *userService.Service
	warns  *warnService.Service
	gbans  *gbanService.Service
	feds   *fedService.Service
	modlog *modlogService.Service
	now    func() time.Time
}

// New creates a new moderation service
func New(
	users *userService.Service,
	warns *warnService.Service,
	gbans *gbanService.Service,
	feds *fedService.Service,
	modlog *modlogService.Service,
) *Service {
	return &Service{
		users:  users,
		warns:  warns,
		gbans:  gbans,
		feds:   feds,
		modlog: modlog,
		now:    time.Now,
	}
}

// Ban bans a user from a chat. Banning an already banned user changes nothing.
func (s *Service) Ban(ctx context.Context, chatID, userID, actorID int64, reason string) (Outcome, error) {
	changed, err := s.setBanned(ctx, chatID, userID, true)
	if err != nil {
		return Outcome{}, err
	}
	if !changed {
		return Outcome{}, nil
	}

	s.modlog.Log(ctx, modlogDomain.ChatScope(chatID), modlogDomain.ActionBan, actorID, userID, reason)
	return Outcome{
		Changed: true,
		Actions: []platform.Action{platform.BanMember(chatID, userID)},
	}, nil
}

// Unban lifts a chat ban. Unbanning a user who is not banned changes nothing.
func (s *Service) Unban(ctx context.Context, chatID, userID, actorID int64) (Outcome, error) {
	changed, err := s.setBanned(ctx, chatID, userID, false)
	if err != nil {
		return Outcome{}, err
	}
	if !changed {
		return Outcome{}, nil
	}

	s.modlog.Log(ctx, modlogDomain.ChatScope(chatID), modlogDomain.ActionUnban, actorID, userID, "")
	return Outcome{
		Changed: true,
		Actions: []platform.Action{platform.UnbanMember(chatID, userID)},
	}, nil
}

// Mute takes away every send permission. A zero duration mutes permanently.
func (s *Service) Mute(ctx context.Context, chatID, userID, actorID int64, duration time.Duration, reason string) (Outcome, error) {
	var until time.Time
	if duration > 0 {
		until = s.now().Add(duration)
	}

	s.modlog.Log(ctx, modlogDomain.ChatScope(chatID), modlogDomain.ActionMute, actorID, userID, reason)
	return Outcome{
		Changed: true,
		Actions: []platform.Action{platform.RestrictMember(chatID, userID, platform.NoPermissions(), until)},
	}, nil
}

// Unmute restores every send permission
func (s *Service) Unmute(ctx context.Context, chatID, userID, actorID int64) (Outcome, error) {
	s.modlog.Log(ctx, modlogDomain.ChatScope(chatID), modlogDomain.ActionUnmute, actorID, userID, "")
	return Outcome{
		Changed: true,
		Actions: []platform.Action{platform.RestrictMember(chatID, userID, platform.FullPermissions(), time.Time{})},
	}, nil
}

// Kick removes a user from a chat without keeping them banned
func (s *Service) Kick(ctx context.Context, chatID, userID, actorID int64, reason string) (Outcome, error) {
	s.modlog.Log(ctx, modlogDomain.ChatScope(chatID), modlogDomain.ActionKick, actorID, userID, reason)
	return Outcome{
		Changed: true,
		Actions: []platform.Action{
			platform.BanMember(chatID, userID),
			platform.UnbanMember(chatID, userID),
		},
	}, nil
}

// Warn records a warn. Reaching the warn limit bans the user unless they are already banned;
// the warn history is kept.
func (s *Service) Warn(ctx context.Context, chatID, userID, actorID int64, reason string) (WarnOutcome, error) {
	warn, count, err := s.warns.Issue(ctx, chatID, userID, actorID, reason)
	if err != nil {
		return WarnOutcome{}, err
	}
	s.modlog.Log(ctx, modlogDomain.ChatScope(chatID), modlogDomain.ActionWarn, actorID, userID, reason)

	outcome := WarnOutcome{
		Warn:    warn,
		Count:   count,
		Limit:   warnDomain.Limit,
		Actions: []platform.Action{},
	}
	if count < warnDomain.Limit {
		return outcome, nil
	}

	ban, err := s.Ban(ctx, chatID, userID, actorID, "warn limit reached")
	if err != nil {
		return WarnOutcome{}, err
	}
	outcome.Banned = ban.Changed
	outcome.Actions = append(outcome.Actions, ban.Actions...)
	return outcome, nil
}

// Unwarn removes one warn, the most recent unless warnID is given
func (s *Service) Unwarn(ctx context.Context, chatID, userID, actorID int64, warnID string) (*warnDomain.Warn, int, error) {
	warn, remaining, err := s.warns.Remove(ctx, chatID, userID, warnID)
	if err != nil {
		return nil, 0, err
	}
	s.modlog.Log(ctx, modlogDomain.ChatScope(chatID), modlogDomain.ActionUnwarn, actorID, userID, warn.Reason)
	return warn, remaining, nil
}

// ResetWarns clears every warn of a user in a chat
func (s *Service) ResetWarns(ctx context.Context, chatID, userID, actorID int64) (int, error) {
	removed, err := s.warns.Reset(ctx, chatID, userID)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.modlog.Log(ctx, modlogDomain.ChatScope(chatID), modlogDomain.ActionResetWarns, actorID, userID, "")
	}
	return removed, nil
}

// Warns lists a user's warns in a chat, oldest first
func (s *Service) Warns(ctx context.Context, chatID, userID int64) ([]*warnDomain.Warn, error) {
	return s.warns.List(ctx, chatID, userID)
}

// GlobalBan records a global ban and bans the user from chatID when it is non-zero
func (s *Service) GlobalBan(ctx context.Context, userID, actorID int64, reason string, chatID int64) (*gbanDomain.GlobalBan, Outcome, error) {
	ban, err := s.gbans.Add(ctx, userID, reason, actorID)
	if err != nil {
		return nil, Outcome{}, err
	}
	s.modlog.Log(ctx, modlogDomain.GlobalScope, modlogDomain.ActionGban, actorID, userID, reason)

	outcome := Outcome{Changed: true}
	if chatID != 0 {
		outcome.Actions = []platform.Action{platform.BanMember(chatID, userID)}
	}
	return ban, outcome, nil
}

// RemoveGlobalBan lifts a global ban. Chat bans issued while it was active stay in place.
func (s *Service) RemoveGlobalBan(ctx context.Context, userID, actorID int64) error {
	ban, err := s.gbans.Remove(ctx, userID)
	if err != nil {
		return err
	}
	s.modlog.Log(ctx, modlogDomain.GlobalScope, modlogDomain.ActionUngban, actorID, userID, ban.Reason)
	return nil
}

// FedBan records a ban in a federation. Member chats are not touched.
func (s *Service) FedBan(ctx context.Context, fedID string, userID, actorID int64, reason string) (*fedDomain.Federation, error) {
	fed, err := s.feds.Ban(ctx, fedID, userID, reason, actorID)
	if err != nil {
		return nil, err
	}
	s.modlog.Log(ctx, modlogDomain.FedScope(fedID), modlogDomain.ActionFban, actorID, userID, reason)
	return fed, nil
}

// FedUnban lifts a ban in a federation
func (s *Service) FedUnban(ctx context.Context, fedID string, userID, actorID int64) (*fedDomain.Federation, error) {
	fed, err := s.feds.Unban(ctx, fedID, userID, actorID)
	if err != nil {
		return nil, err
	}
	s.modlog.Log(ctx, modlogDomain.FedScope(fedID), modlogDomain.ActionUnfban, actorID, userID, "")
	return fed, nil
}

// CheckJoin returns the actions to take when a user joins a chat. Globally banned users are
// banned on sight.
func (s *Service) CheckJoin(ctx context.Context, chatID, userID int64) ([]platform.Action, error) {
	banned, err := s.gbans.IsGloballyBanned(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !banned {
		return nil, nil
	}
	return []platform.Action{platform.BanMember(chatID, userID)}, nil
}

func (s *Service) setBanned(ctx context.Context, chatID, userID int64, banned bool) (bool, error) {
	changed := false
	_, err := s.users.Update(ctx, userID, func(user *userDomain.User) error {
		if user.IsBannedIn(chatID) == banned {
			return nil
		}
		changed = true
		if banned {
			user.BannedIn = append(user.BannedIn, chatID)
		} else {
			user.BannedIn = lo.Without(user.BannedIn, chatID)
		}
		return nil
	})
	return changed, err
}
