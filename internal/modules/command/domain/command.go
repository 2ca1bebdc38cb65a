package domain

import (
	"strings"

	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/platform"
)

// Command is a normalized bot command. Name is lowercase without prefix or bot mention.
type Command struct {
	Name      string
	Actor     userDomain.Profile
	ChatID    int64
	ChatTitle string
	ChatType  chatDomain.ChatType
	MessageID int
	Args      []string
	// RawArgs is everything after the command name with its original spacing
	RawArgs string
	ReplyTo *Reply
}

// Reply is the message a command was sent in reply to
type Reply struct {
	MessageID int
	Author    userDomain.Profile
	Text      string
}

// IsPrivate reports whether the command was sent in a private chat
func (c *Command) IsPrivate() bool {
	return c.ChatType == chatDomain.ChatTypePrivate
}

// IsGroup reports whether the command was sent in a group or supergroup
func (c *Command) IsGroup() bool {
	return c.ChatType.IsGroup()
}

// Parse splits "/ban@mybot 123 spam" into its name, args and raw args.
// ok is false when text is not a "/" or "!" command.
func Parse(text string) (name string, args []string, raw string, ok bool) {
	head, rest, ok := split(text)
	if !ok {
		return "", nil, "", false
	}
	head, _, _ = strings.Cut(head, "@")
	if head == "" {
		return "", nil, "", false
	}

	raw = strings.TrimSpace(rest)
	return strings.ToLower(head), strings.Fields(raw), raw, true
}

// AddressedTo returns the bot username a command mentions, "mybot" for "/ban@mybot 123",
// or "" when the command names no bot.
func AddressedTo(text string) string {
	head, _, ok := split(text)
	if !ok {
		return ""
	}
	_, bot, _ := strings.Cut(head, "@")
	return bot
}

func split(text string) (head, rest string, ok bool) {
	text = strings.TrimSpace(text)
	if len(text) < 2 || (text[0] != '/' && text[0] != '!') {
		return "", "", false
	}

	head, rest, _ = strings.Cut(text[1:], " ")
	if i := strings.IndexAny(head, "\n\t"); i >= 0 {
		rest = head[i:] + " " + rest
		head = head[:i]
	}
	return head, rest, true
}

// Result is the outcome of a command: whether it succeeded, the text to show the user and the
// platform actions to execute.
type Result struct {
	OK      bool
	Message string
	Actions []platform.Action
}

// Success builds a successful result
func Success(message string, actions ...platform.Action) Result {
	return Result{OK: true, Message: message, Actions: actions}
}

// Failure builds a failed result without actions
func Failure(message string) Result {
	return Result{OK: false, Message: message}
}

// Message is a plain inbound message
type Message struct {
	ChatID       int64
	ChatTitle    string
	ChatType     chatDomain.ChatType
	MessageID    int
	Sender       userDomain.Profile
	Text         string
	ContentTypes []chatDomain.LockType
}

// MemberEvent is a member joining or leaving a chat
type MemberEvent struct {
	ChatID      int64
	ChatTitle   string
	ChatType    chatDomain.ChatType
	MessageID   int
	Member      userDomain.Profile
	MemberCount int
	Joined      bool
}
