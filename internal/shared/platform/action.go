package platform

import (
	"context"
	"fmt"
	"time"
)

// Permissions is the set of rights applied by a RestrictMember action
type Permissions struct {
	CanSendMessages       bool `json:"can_send_messages"`
	CanSendMedia          bool `json:"can_send_media"`
	CanSendPolls          bool `json:"can_send_polls"`
	CanSendOther          bool `json:"can_send_other"`
	CanAddWebPagePreviews bool `json:"can_add_web_page_previews"`
}

// NoPermissions mutes a member completely
func NoPermissions() Permissions {
	return Permissions{}
}

// FullPermissions lifts every restriction
func FullPermissions() Permissions {
	return Permissions{
		CanSendMessages:       true,
		CanSendMedia:          true,
		CanSendPolls:          true,
		CanSendOther:          true,
		CanAddWebPagePreviews: true,
	}
}

// Action is an intent emitted by the engine. The platform adapter executes it; the outcome
// is only logged and never feeds back into engine state.
type Action struct {
	Kind        ActionKind
	ChatID      int64
	UserID      int64
	MessageID   int
	Text        string
	Permissions Permissions
	// Until is zero for permanent bans and restrictions
	Until time.Time
}

func BanMember(chatID, userID int64) Action {
	return Action{Kind: ActionKindBanMember, ChatID: chatID, UserID: userID}
}

func UnbanMember(chatID, userID int64) Action {
	return Action{Kind: ActionKindUnbanMember, ChatID: chatID, UserID: userID}
}

func RestrictMember(chatID, userID int64, permissions Permissions, until time.Time) Action {
	return Action{Kind: ActionKindRestrictMember, ChatID: chatID, UserID: userID, Permissions: permissions, Until: until}
}

func DeleteMessage(chatID int64, messageID int) Action {
	return Action{Kind: ActionKindDeleteMessage, ChatID: chatID, MessageID: messageID}
}

func SendMessage(chatID int64, text string) Action {
	return Action{Kind: ActionKindSendMessage, ChatID: chatID, Text: text}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionKindDeleteMessage:
		return fmt.Sprintf("%s(chat=%d, message=%d)", a.Kind, a.ChatID, a.MessageID)
	case ActionKindSendMessage:
		return fmt.Sprintf("%s(chat=%d)", a.Kind, a.ChatID)
	default:
		return fmt.Sprintf("%s(chat=%d, user=%d)", a.Kind, a.ChatID, a.UserID)
	}
}

// Executor runs actions against the chat platform
type Executor interface {
	Execute(ctx context.Context, action Action) error
}

// AdminLookup reports whether a user administers a chat on the platform
type AdminLookup interface {
	IsChatAdmin(ctx context.Context, chatID, userID int64) (bool, error)
}
