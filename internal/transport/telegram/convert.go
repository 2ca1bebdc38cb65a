package telegram

import (
	"strings"

	"github.com/go-telegram/bot/models"
	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	"github.com/samber/lo"
)

func toProfile(user *models.User) userDomain.Profile {
	if user == nil {
		return userDomain.Profile{}
	}
	return userDomain.Profile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		IsBot:     user.IsBot,
	}
}

func toChatType(chat models.Chat) chatDomain.ChatType {
	chatType, err := chatDomain.ParseChatType(string(chat.Type))
	if err != nil {
		return chatDomain.ChatTypePrivate
	}
	return chatType
}

func messageText(msg *models.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

// toCommand converts a "/" or "!" command message. ok is false for anything else, including
// commands addressed to a bot other than botUsername.
func toCommand(msg *models.Message, botUsername string) (*domain.Command, bool) {
	if msg == nil || msg.From == nil || msg.Text == "" {
		return nil, false
	}
	if to := domain.AddressedTo(msg.Text); to != "" && botUsername != "" && !strings.EqualFold(to, botUsername) {
		return nil, false
	}
	name, args, raw, ok := domain.Parse(msg.Text)
	if !ok {
		return nil, false
	}

	cmd := &domain.Command{
		Name:      name,
		Actor:     toProfile(msg.From),
		ChatID:    msg.Chat.ID,
		ChatTitle: msg.Chat.Title,
		ChatType:  toChatType(msg.Chat),
		MessageID: msg.ID,
		Args:      args,
		RawArgs:   raw,
	}
	if reply := msg.ReplyToMessage; reply != nil {
		cmd.ReplyTo = &domain.Reply{
			MessageID: reply.ID,
			Author:    toProfile(reply.From),
			Text:      messageText(reply),
		}
	}
	return cmd, true
}

func toMessage(msg *models.Message) *domain.Message {
	return &domain.Message{
		ChatID:       msg.Chat.ID,
		ChatTitle:    msg.Chat.Title,
		ChatType:     toChatType(msg.Chat),
		MessageID:    msg.ID,
		Sender:       toProfile(msg.From),
		Text:         messageText(msg),
		ContentTypes: contentTypes(msg),
	}
}

// memberEvents lists the joins and the leave carried by a service message
func memberEvents(msg *models.Message) []*domain.MemberEvent {
	event := func(user models.User, joined bool) *domain.MemberEvent {
		return &domain.MemberEvent{
			ChatID:    msg.Chat.ID,
			ChatTitle: msg.Chat.Title,
			ChatType:  toChatType(msg.Chat),
			MessageID: msg.ID,
			Member:    toProfile(&user),
			Joined:    joined,
		}
	}

	events := lo.Map(msg.NewChatMembers, func(user models.User, _ int) *domain.MemberEvent {
		return event(user, true)
	})
	if msg.LeftChatMember != nil {
		events = append(events, event(*msg.LeftChatMember, false))
	}
	return events
}

// contentTypes classifies a message by the lock types it falls under
func contentTypes(msg *models.Message) []chatDomain.LockType {
	types := []chatDomain.LockType{}
	add := func(cond bool, t chatDomain.LockType) {
		if cond {
			types = append(types, t)
		}
	}

	add(msg.Text != "", chatDomain.LockTypeText)
	add(len(msg.Photo) > 0, chatDomain.LockTypePhoto)
	add(msg.Sticker != nil, chatDomain.LockTypeSticker)
	add(msg.Animation != nil, chatDomain.LockTypeGif)
	add(msg.Audio != nil, chatDomain.LockTypeAudio)
	add(msg.Voice != nil, chatDomain.LockTypeVoice)
	add(msg.Video != nil || msg.VideoNote != nil, chatDomain.LockTypeVideo)
	add(msg.Document != nil && msg.Animation == nil, chatDomain.LockTypeDocument)
	add(msg.Game != nil, chatDomain.LockTypeGame)
	add(msg.Poll != nil, chatDomain.LockTypePoll)
	add(msg.Location != nil, chatDomain.LockTypeLocation)
	add(msg.Contact != nil, chatDomain.LockTypeContact)
	add(msg.ForwardOrigin != nil, chatDomain.LockTypeForward)
	add(msg.ViaBot != nil, chatDomain.LockTypeInline)
	add(msg.From != nil && msg.From.IsBot, chatDomain.LockTypeBot)
	add(hasLink(msg.Entities) || hasLink(msg.CaptionEntities), chatDomain.LockTypeUrl)
	return types
}

func hasLink(entities []models.MessageEntity) bool {
	return lo.SomeBy(entities, func(e models.MessageEntity) bool {
		return e.Type == models.MessageEntityTypeURL || e.Type == models.MessageEntityTypeTextLink
	})
}
