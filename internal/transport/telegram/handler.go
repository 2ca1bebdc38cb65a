package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
)

// Dispatcher turns normalized updates into results
type Dispatcher interface {
	Known(name string) bool
	Handle(ctx context.Context, cmd *domain.Command) domain.Result
	HandleMessage(ctx context.Context, msg *domain.Message) domain.Result
	HandleMember(ctx context.Context, event *domain.MemberEvent) domain.Result
}

// Handler feeds Telegram updates to the dispatcher and carries out the results
type Handler struct {
	dispatcher  Dispatcher
	platform    *Platform
	botUsername string
}

// New creates a new Telegram handler
func New(dispatcher Dispatcher, platform *Platform) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		platform:   platform,
	}
}

// SetBotUsername sets the username commands must mention, if they mention a bot at all
func (h *Handler) SetBotUsername(username string) {
	h.botUsername = username
}

// RegisterCommands routes "/" and "!" messages to the command dispatcher
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, h.handleCommand)
	b.RegisterHandler(bot.HandlerTypeMessageText, "!", bot.MatchTypePrefix, h.handleCommand)
}

// HandleUpdate processes every update: commands, member joins and leaves and plain group
// messages. Text that only looks like a command goes through the message path.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	if cmd, ok := toCommand(msg, h.botUsername); ok && h.dispatcher.Known(cmd.Name) {
		h.deliver(ctx, msg, h.dispatcher.Handle(ctx, cmd))
		return
	}

	if events := memberEvents(msg); len(events) > 0 {
		for _, event := range events {
			if event.Joined {
				event.MemberCount = h.platform.MemberCount(ctx, event.ChatID)
			}
			h.deliver(ctx, msg, h.dispatcher.HandleMember(ctx, event))
		}
		return
	}

	if msg.From == nil {
		return
	}
	h.deliver(ctx, msg, h.dispatcher.HandleMessage(ctx, toMessage(msg)))
}

func (h *Handler) handleCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.HandleUpdate(ctx, b, update)
}

// deliver replies with the result text and executes its actions in order. A failed action is
// logged and the rest still run.
func (h *Handler) deliver(ctx context.Context, msg *models.Message, result domain.Result) {
	if result.Message != "" {
		if err := h.platform.Reply(ctx, msg.Chat.ID, msg.ID, result.Message); err != nil {
			slog.Error("Failed to send reply", "chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
		}
	}

	for _, action := range result.Actions {
		if err := h.platform.Execute(ctx, action); err != nil {
			slog.Warn("Platform action failed", "action", action.String(), "error", err)
		}
	}
}
