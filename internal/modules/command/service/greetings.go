package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	chatService "github.com/reshetovitsme/groupguard/internal/modules/chat/service"
	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
)

// templateText is the command argument, or the replied message text when there is none
func templateText(req *Request) string {
	if req.Cmd.RawArgs != "" {
		return req.Cmd.RawArgs
	}
	if req.Cmd.ReplyTo != nil && !req.Remote {
		return req.Cmd.ReplyTo.Text
	}
	return ""
}

func (d *Dispatcher) setWelcome(ctx context.Context, req *Request) (domain.Result, error) {
	text := templateText(req)
	if text == "" {
		return domain.Failure("Usage: /setwelcome <text>\nPlaceholders: {first} {last} {fullname} {username} {id} {chat} {count} {mention}"), nil
	}
	if err := d.chats.SetWelcome(ctx, req.ChatID, text); err != nil {
		return domain.Result{}, err
	}
	return domain.Success("✅ Welcome message set!"), nil
}

func (d *Dispatcher) unsetWelcome(ctx context.Context, req *Request) (domain.Result, error) {
	if err := d.chats.UnsetWelcome(ctx, req.ChatID); err != nil {
		return domain.Result{}, err
	}
	return domain.Success("✅ Welcome message removed!"), nil
}

func (d *Dispatcher) setGoodbye(ctx context.Context, req *Request) (domain.Result, error) {
	text := templateText(req)
	if text == "" {
		return domain.Failure("Usage: /setgoodbye <text>"), nil
	}
	if err := d.chats.SetGoodbye(ctx, req.ChatID, text); err != nil {
		return domain.Result{}, err
	}
	return domain.Success("✅ Goodbye message set!"), nil
}

func (d *Dispatcher) unsetGoodbye(ctx context.Context, req *Request) (domain.Result, error) {
	if err := d.chats.UnsetGoodbye(ctx, req.ChatID); err != nil {
		return domain.Result{}, err
	}
	return domain.Success("✅ Goodbye message removed!"), nil
}

func (d *Dispatcher) welcome(ctx context.Context, req *Request) (domain.Result, error) {
	return d.greeting(ctx, req, "Welcome", defaultWelcome, func(chat *chatDomain.Chat) (*bool, string) {
		return &chat.WelcomeEnabled, chat.WelcomeTemplate
	})
}

func (d *Dispatcher) goodbye(ctx context.Context, req *Request) (domain.Result, error) {
	return d.greeting(ctx, req, "Goodbye", defaultGoodbye, func(chat *chatDomain.Chat) (*bool, string) {
		return &chat.GoodbyeEnabled, chat.GoodbyeTemplate
	})
}

// greeting shows a greeting setting, or toggles it with "on"/"off"
func (d *Dispatcher) greeting(ctx context.Context, req *Request, label, fallback string, field func(chat *chatDomain.Chat) (*bool, string)) (domain.Result, error) {
	if len(req.Cmd.Args) > 0 {
		var enabled bool
		switch strings.ToLower(req.Cmd.Args[0]) {
		case "on", "yes":
			enabled = true
		case "off", "no":
			enabled = false
		default:
			return domain.Failure(fmt.Sprintf("Usage: /%s [on/off]", req.Cmd.Name)), nil
		}

		if _, err := d.chats.Update(ctx, req.ChatID, func(chat *chatDomain.Chat) error {
			flag, _ := field(chat)
			*flag = enabled
			return nil
		}); err != nil {
			return domain.Result{}, err
		}
		return domain.Success(fmt.Sprintf("✅ %s messages turned %s.", label, onOff(enabled))), nil
	}

	chat, err := d.chats.GetChat(ctx, req.ChatID)
	if err != nil {
		return domain.Result{}, err
	}
	flag, template := field(chat)
	if template == "" {
		template = fallback + " (default)"
	}
	return domain.Success(fmt.Sprintf("%s messages: %s\n\n%s", label, onOff(*flag), template)), nil
}

func (d *Dispatcher) rules(ctx context.Context, req *Request) (domain.Result, error) {
	chat, err := d.chats.GetChat(ctx, req.ChatID)
	if err != nil {
		return domain.Result{}, err
	}
	if chat.RulesText == "" {
		return domain.Success("📜 No rules set for this chat."), nil
	}
	return domain.Success(fmt.Sprintf("📜 Rules for %s:\n\n%s", chat.Title, chat.RulesText)), nil
}

func (d *Dispatcher) setRules(ctx context.Context, req *Request) (domain.Result, error) {
	text := templateText(req)
	if err := d.chats.SetRules(ctx, req.ChatID, text); err != nil {
		return domain.Result{}, err
	}
	if text == "" {
		return domain.Success("✅ Rules cleared!"), nil
	}
	return domain.Success("✅ Rules updated!"), nil
}

func (d *Dispatcher) settings(ctx context.Context, req *Request) (domain.Result, error) {
	chat, err := d.chats.GetChat(ctx, req.ChatID)
	if err != nil {
		return domain.Result{}, err
	}
	filters, err := d.filters.ListFilters(ctx, req.ChatID)
	if err != nil {
		return domain.Result{}, err
	}
	notes, err := d.notes.ListNotes(ctx, req.ChatID)
	if err != nil {
		return domain.Result{}, err
	}

	fed := "none"
	if f, err := d.feds.ChatFederation(ctx, req.ChatID); err == nil {
		fed = f.Name
	}

	return domain.Success(fmt.Sprintf(`⚙️ Settings for %s

Welcome: %s
Goodbye: %s
Rules: %s
Locks: %s
Clean: %s
Filters: %d
Notes: %d
Federation: %s`,
		chat.Title,
		onOff(chat.WelcomeEnabled),
		onOff(chat.GoodbyeEnabled),
		onOff(chat.RulesText != ""),
		lockSummary(chat),
		cleanSummary(chat),
		len(filters),
		len(notes),
		fed)), nil
}

// HandleMember greets members and bans globally banned users on sight
func (d *Dispatcher) HandleMember(ctx context.Context, event *domain.MemberEvent) domain.Result {
	if event.Member.IsBot && event.Member.ID == d.botID {
		return domain.Result{}
	}
	d.observe(ctx, event.Member, event.ChatID, event.ChatTitle, event.ChatType)

	chat, err := d.chats.GetChat(ctx, event.ChatID)
	if err != nil {
		slog.Warn("Member event for unknown chat", "chat_id", event.ChatID, "error", err)
		return domain.Result{}
	}

	if !event.Joined {
		if !chat.GoodbyeEnabled {
			return domain.Result{}
		}
		return domain.Success(render(chat.GoodbyeTemplate, defaultGoodbye, event))
	}

	actions, err := d.moderation.CheckJoin(ctx, event.ChatID, event.Member.ID)
	if err != nil {
		slog.Error("Failed to check global ban", "chat_id", event.ChatID, "user_id", event.Member.ID, "error", err)
	}
	if len(actions) > 0 {
		return domain.Success(fmt.Sprintf("🌍 %s is globally banned and has been removed.", event.Member.Mention()), actions...)
	}

	if !chat.WelcomeEnabled {
		return domain.Result{}
	}
	return domain.Success(render(chat.WelcomeTemplate, defaultWelcome, event))
}

func render(template, fallback string, event *domain.MemberEvent) string {
	if template == "" {
		template = fallback
	}
	return chatService.RenderTemplate(template, chatService.GreetingVars(event.Member, event.ChatTitle, event.MemberCount))
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
