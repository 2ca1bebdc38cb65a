package telegram

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/platform"
	"github.com/samber/oops"
)

// Client is the part of the Telegram Bot API the adapter uses. *bot.Bot implements it.
type Client interface {
	GetMe(ctx context.Context) (*models.User, error)
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	BanChatMember(ctx context.Context, params *bot.BanChatMemberParams) (bool, error)
	UnbanChatMember(ctx context.Context, params *bot.UnbanChatMemberParams) (bool, error)
	RestrictChatMember(ctx context.Context, params *bot.RestrictChatMemberParams) (bool, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
	GetChatMemberCount(ctx context.Context, params *bot.GetChatMemberCountParams) (int, error)
}

// Platform executes engine actions and answers admin lookups against Telegram
type Platform struct {
	client  Client
	timeout time.Duration
}

// NewPlatform creates the adapter. timeout bounds each API call; zero means no bound.
func NewPlatform(client Client, timeout time.Duration) *Platform {
	return &Platform{client: client, timeout: timeout}
}

// SetClient sets the API client. It must be called before the first update is handled.
func (p *Platform) SetClient(client Client) {
	p.client = client
}

func (p *Platform) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

// Execute performs one action
func (p *Platform) Execute(ctx context.Context, action platform.Action) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var err error
	switch action.Kind {
	case platform.ActionKindBanMember:
		_, err = p.client.BanChatMember(ctx, &bot.BanChatMemberParams{
			ChatID:    action.ChatID,
			UserID:    action.UserID,
			UntilDate: untilDate(action.Until),
		})
	case platform.ActionKindUnbanMember:
		_, err = p.client.UnbanChatMember(ctx, &bot.UnbanChatMemberParams{
			ChatID:       action.ChatID,
			UserID:       action.UserID,
			OnlyIfBanned: true,
		})
	case platform.ActionKindRestrictMember:
		_, err = p.client.RestrictChatMember(ctx, &bot.RestrictChatMemberParams{
			ChatID:      action.ChatID,
			UserID:      action.UserID,
			Permissions: chatPermissions(action.Permissions),
			UntilDate:   untilDate(action.Until),
		})
	case platform.ActionKindDeleteMessage:
		_, err = p.client.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    action.ChatID,
			MessageID: action.MessageID,
		})
	case platform.ActionKindSendMessage:
		_, err = p.client.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: action.ChatID,
			Text:   action.Text,
		})
	default:
		return oops.With("kind", action.Kind).Wrapf(errors.ErrInvalidArgument, "unknown action")
	}

	if err != nil {
		return oops.With("action", action.String()).Wrap(stderrors.Join(errors.ErrExternalCallFailed, err))
	}
	return nil
}

// Reply sends text to a chat as a reply to messageID. The text is still sent when that
// message is gone.
func (p *Platform) Reply(ctx context.Context, chatID int64, messageID int, text string) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	params := &bot.SendMessageParams{ChatID: chatID, Text: text}
	if messageID != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID:                messageID,
			AllowSendingWithoutReply: true,
		}
	}
	if _, err := p.client.SendMessage(ctx, params); err != nil {
		return oops.With("chat_id", chatID).Wrap(stderrors.Join(errors.ErrExternalCallFailed, err))
	}
	return nil
}

// IsChatAdmin reports whether the user is the creator or an administrator of the chat
func (p *Platform) IsChatAdmin(ctx context.Context, chatID, userID int64) (bool, error) {
	member, err := p.client.GetChatMember(ctx, &bot.GetChatMemberParams{ChatID: chatID, UserID: userID})
	if err != nil {
		return false, oops.With("chat_id", chatID, "user_id", userID).Wrap(stderrors.Join(errors.ErrExternalCallFailed, err))
	}
	return member.Type == models.ChatMemberTypeOwner || member.Type == models.ChatMemberTypeAdministrator, nil
}

// MemberCount returns the number of members of a chat, zero when it can't be fetched
func (p *Platform) MemberCount(ctx context.Context, chatID int64) int {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	count, err := p.client.GetChatMemberCount(ctx, &bot.GetChatMemberCountParams{ChatID: chatID})
	if err != nil {
		return 0
	}
	return count
}

func untilDate(until time.Time) int {
	if until.IsZero() {
		return 0
	}
	return int(until.Unix())
}

func chatPermissions(p platform.Permissions) *models.ChatPermissions {
	return &models.ChatPermissions{
		CanSendMessages:       p.CanSendMessages,
		CanSendAudios:         p.CanSendMedia,
		CanSendDocuments:      p.CanSendMedia,
		CanSendPhotos:         p.CanSendMedia,
		CanSendVideos:         p.CanSendMedia,
		CanSendVideoNotes:     p.CanSendMedia,
		CanSendVoiceNotes:     p.CanSendMedia,
		CanSendPolls:          p.CanSendPolls,
		CanSendOtherMessages:  p.CanSendOther,
		CanAddWebPagePreviews: p.CanAddWebPagePreviews,
	}
}
