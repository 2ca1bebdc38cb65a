package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	authDomain "github.com/reshetovitsme/groupguard/internal/modules/auth/domain"
	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/platform"
	"github.com/samber/lo"
)

// splitKeyword takes the leading keyword off raw, which may be quoted to hold spaces
func splitKeyword(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, `"`) {
		if end := strings.Index(raw[1:], `"`); end >= 0 {
			return raw[1 : end+1], strings.TrimSpace(raw[end+2:])
		}
	}
	keyword, rest, _ := strings.Cut(raw, " ")
	return keyword, strings.TrimSpace(rest)
}

// contentArg is the text after the keyword, or the replied message text
func contentArg(req *Request, rest string) string {
	if rest != "" {
		return rest
	}
	if req.Cmd.ReplyTo != nil && !req.Remote {
		return req.Cmd.ReplyTo.Text
	}
	return ""
}

func (d *Dispatcher) addFilter(ctx context.Context, req *Request) (domain.Result, error) {
	keyword, rest := splitKeyword(req.Cmd.RawArgs)
	reply := contentArg(req, rest)
	if keyword == "" || reply == "" {
		return domain.Failure("Usage: /filter <keyword> <reply>\nOr reply to a message with /filter <keyword>"), nil
	}

	filter, err := d.filters.AddFilter(ctx, req.ChatID, keyword, reply, req.Cmd.Actor.ID)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("✅ Filter '%s' saved!", filter.Keyword)), nil
}

func (d *Dispatcher) stopFilter(ctx context.Context, req *Request) (domain.Result, error) {
	keyword, _ := splitKeyword(req.Cmd.RawArgs)
	if keyword == "" {
		return domain.Failure("Usage: /stop <keyword>"), nil
	}
	if err := d.filters.RemoveFilter(ctx, req.ChatID, keyword); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Result{}, reject(err, fmt.Sprintf("❌ No filter '%s' in this chat.", keyword))
		}
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("✅ Filter '%s' removed!", strings.ToLower(keyword))), nil
}

func (d *Dispatcher) listFilters(ctx context.Context, req *Request) (domain.Result, error) {
	filters, err := d.filters.ListFilters(ctx, req.ChatID)
	if err != nil {
		return domain.Result{}, err
	}
	if len(filters) == 0 {
		return domain.Success("No filters in this chat."), nil
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("🔎 Filters in %s:\n", req.ChatTitle))
	for _, f := range filters {
		text.WriteString(fmt.Sprintf("• %s\n", f.Keyword))
	}
	return domain.Success(strings.TrimRight(text.String(), "\n")), nil
}

func (d *Dispatcher) saveNote(ctx context.Context, req *Request) (domain.Result, error) {
	name, rest := splitKeyword(req.Cmd.RawArgs)
	content := contentArg(req, rest)
	if name == "" || content == "" {
		return domain.Failure("Usage: /save <name> <content>\nOr reply to a message with /save <name>"), nil
	}

	note, err := d.notes.SaveNote(ctx, req.ChatID, name, content, req.Cmd.Actor.ID)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Success(fmt.Sprintf("✅ Note '%s' saved! Get it with /get %s or #%s", note.Name, note.Name, note.Name)), nil
}

func (d *Dispatcher) getNote(ctx context.Context, req *Request) (domain.Result, error) {
	req.Clean = chatDomain.CleanTypeNote
	if len(req.Cmd.Args) == 0 {
		return domain.Failure("Usage: /get <name>"), nil
	}

	note, err := d.notes.GetNote(ctx, req.ChatID, req.Cmd.Args[0])
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Result{}, reject(err, fmt.Sprintf("❌ No note '%s' in this chat.", req.Cmd.Args[0]))
		}
		return domain.Result{}, err
	}
	return domain.Success(note.Content), nil
}

func (d *Dispatcher) clearNote(ctx context.Context, req *Request) (domain.Result, error) {
	if len(req.Cmd.Args) == 0 {
		return domain.Failure("Usage: /clear <name>"), nil
	}
	if err := d.notes.ClearNote(ctx, req.ChatID, req.Cmd.Args[0]); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return domain.Result{}, reject(err, fmt.Sprintf("❌ No note '%s' in this chat.", req.Cmd.Args[0]))
		}
		return domain.Result{}, err
	}
	return domain.Success("✅ Note removed!"), nil
}

func (d *Dispatcher) listNotes(ctx context.Context, req *Request) (domain.Result, error) {
	notes, err := d.notes.ListNotes(ctx, req.ChatID)
	if err != nil {
		return domain.Result{}, err
	}
	if len(notes) == 0 {
		return domain.Success("No notes in this chat."), nil
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("📝 Notes in %s:\n", req.ChatTitle))
	for _, n := range notes {
		text.WriteString(fmt.Sprintf("• #%s\n", n.Name))
	}
	return domain.Success(strings.TrimRight(text.String(), "\n")), nil
}

func (d *Dispatcher) report(ctx context.Context, req *Request) (domain.Result, error) {
	req.Clean = chatDomain.CleanTypeReport
	if req.Cmd.ReplyTo == nil || req.Cmd.ReplyTo.Author.ID == 0 {
		return domain.Failure("Reply to the message you want to report."), nil
	}

	reported := req.Cmd.ReplyTo.Author
	if reported.ID == req.Cmd.Actor.ID {
		return domain.Failure("❌ You can't report yourself."), nil
	}
	if d.resolver.Resolve(ctx, reported.ID, req.ChatID, false).Satisfies(authDomain.TierChatAdmin) {
		return domain.Failure("❌ Admins can't be reported."), nil
	}

	slog.Info("User reported",
		"chat_id", req.ChatID,
		"reporter_id", req.Cmd.Actor.ID,
		"reported_id", reported.ID,
		"message_id", req.Cmd.ReplyTo.MessageID)
	return domain.Success(withReason(fmt.Sprintf("📣 %s reported %s to the admins.", req.Cmd.Actor.Mention(), reported.Mention()), req.Cmd.RawArgs)), nil
}

// HandleMessage applies locks, #note lookups and filters to a plain group message
func (d *Dispatcher) HandleMessage(ctx context.Context, msg *domain.Message) domain.Result {
	if !msg.ChatType.IsGroup() || msg.Sender.ID == d.botID {
		return domain.Result{}
	}
	d.observe(ctx, msg.Sender, msg.ChatID, msg.ChatTitle, msg.ChatType)

	chat, err := d.chats.GetChat(ctx, msg.ChatID)
	if err != nil {
		slog.Warn("Message for unknown chat", "chat_id", msg.ChatID, "error", err)
		return domain.Result{}
	}

	if d.violatesLocks(ctx, chat, msg) {
		return domain.Success("", platform.DeleteMessage(msg.ChatID, msg.MessageID))
	}

	if name, ok := noteReference(msg.Text); ok {
		note, err := d.notes.GetNote(ctx, msg.ChatID, name)
		switch {
		case err == nil:
			return d.triggered(chat, msg, note.Content, chatDomain.CleanTypeNote)
		case !stderrors.Is(err, errors.ErrNotFound):
			slog.Error("Failed to get note", "chat_id", msg.ChatID, "note", name, "error", err)
		}
	}

	filter, ok, err := d.filters.Match(ctx, msg.ChatID, msg.Text)
	if err != nil {
		slog.Error("Failed to match filters", "chat_id", msg.ChatID, "error", err)
		return domain.Result{}
	}
	if ok {
		return d.triggered(chat, msg, filter.Reply, chatDomain.CleanTypeFilter)
	}
	return domain.Result{}
}

// violatesLocks reports whether msg carries locked content and its sender is not an admin
func (d *Dispatcher) violatesLocks(ctx context.Context, chat *chatDomain.Chat, msg *domain.Message) bool {
	locked := chat.FullyLocked || lo.SomeBy(msg.ContentTypes, chat.IsLocked)
	if !locked {
		return false
	}
	return !d.resolver.Resolve(ctx, msg.Sender.ID, msg.ChatID, false).Satisfies(authDomain.TierChatAdmin)
}

func (d *Dispatcher) triggered(chat *chatDomain.Chat, msg *domain.Message, reply string, clean chatDomain.CleanType) domain.Result {
	if chat.Cleans(clean) {
		return domain.Success(reply, platform.DeleteMessage(msg.ChatID, msg.MessageID))
	}
	return domain.Success(reply)
}

// noteReference extracts the note name from a message starting with #name
func noteReference(text string) (string, bool) {
	if !strings.HasPrefix(text, "#") {
		return "", false
	}
	name := strings.Fields(text)[0][1:]
	return name, name != ""
}
