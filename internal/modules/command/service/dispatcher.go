package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	authDomain "github.com/reshetovitsme/groupguard/internal/modules/auth/domain"
	authService "github.com/reshetovitsme/groupguard/internal/modules/auth/service"
	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	chatService "github.com/reshetovitsme/groupguard/internal/modules/chat/service"
	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
	connectionService "github.com/reshetovitsme/groupguard/internal/modules/connection/service"
	fedService "github.com/reshetovitsme/groupguard/internal/modules/federation/service"
	filterService "github.com/reshetovitsme/groupguard/internal/modules/filter/service"
	gbanService "github.com/reshetovitsme/groupguard/internal/modules/gban/service"
	moderationService "github.com/reshetovitsme/groupguard/internal/modules/moderation/service"
	modlogService "github.com/reshetovitsme/groupguard/internal/modules/modlog/service"
	noteService "github.com/reshetovitsme/groupguard/internal/modules/note/service"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	userService "github.com/reshetovitsme/groupguard/internal/modules/user/service"
	"github.com/reshetovitsme/groupguard/internal/shared/config"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/platform"
	"github.com/samber/lo"
)

const (
	outcomeOK     = "ok"
	outcomeFailed = "failed"
	outcomeDenied = "denied"
	outcomeError  = "error"
)

var commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "groupguard_commands_total",
	Help: "Commands handled, by command and outcome.",
}, []string{"command", "outcome"})

// Dependencies are the services commands act on
type Dependencies struct {
	Resolver    *authService.Resolver
	Users       *userService.Service
	Chats       *chatService.Service
	Filters     *filterService.Service
	Notes       *noteService.Service
	Moderation  *moderationService.Service
	Federations *fedService.Service
	GlobalBans  *gbanService.Service
	Connections *connectionService.Service
	Modlog      *modlogService.Service
}

// Dispatcher routes normalized commands, messages and member events to their handlers.
// It is the error boundary: nothing it returns is an error, failures become failed results.
type Dispatcher struct {
	cfg         *config.Config
	resolver    *authService.Resolver
	users       *userService.Service
	chats       *chatService.Service
	filters     *filterService.Service
	notes       *noteService.Service
	moderation  *moderationService.Service
	feds        *fedService.Service
	gbans       *gbanService.Service
	connections *connectionService.Service
	modlog      *modlogService.Service
	routes      map[string]HandlerFunc
	botID       int64
}

// New creates a dispatcher with every command registered
func New(cfg *config.Config, deps Dependencies) *Dispatcher {
	d := &Dispatcher{
		cfg:         cfg,
		resolver:    deps.Resolver,
		users:       deps.Users,
		chats:       deps.Chats,
		filters:     deps.Filters,
		notes:       deps.Notes,
		moderation:  deps.Moderation,
		feds:        deps.Federations,
		gbans:       deps.GlobalBans,
		connections: deps.Connections,
		modlog:      deps.Modlog,
		routes:      map[string]HandlerFunc{},
	}
	d.registerRoutes()
	return d
}

// SetBotID tells the dispatcher which user is the bot itself
func (d *Dispatcher) SetBotID(id int64) {
	d.botID = id
}

// Commands returns the registered command names
func (d *Dispatcher) Commands() []string {
	return lo.Keys(d.routes)
}

// Known reports whether name is a registered command
func (d *Dispatcher) Known(name string) bool {
	_, ok := d.routes[name]
	return ok
}

func (d *Dispatcher) route(name string, h HandlerFunc, guards ...Guard) {
	d.routes[name] = Chain(h, guards...)
}

func (d *Dispatcher) registerRoutes() {
	admin := []Guard{d.ConnectedChat, d.RequireTier(authDomain.TierChatAdmin)}
	groupAdmin := []Guard{RequireGroup, d.RequireTier(authDomain.TierChatAdmin)}
	sudo := d.RequireTier(authDomain.TierSudo)
	owner := d.RequireTier(authDomain.TierOwner)

	d.route("start", d.start)
	d.route("help", d.help)
	d.route("id", d.id)

	d.route("addsudo", d.addSudo, owner)
	d.route("rmsudo", d.removeSudo, owner)
	d.route("sudolist", d.sudoList, sudo)
	d.route("stats", d.stats, owner)

	d.route("gban", d.globalBan, sudo)
	d.route("ungban", d.removeGlobalBan, sudo)
	d.route("gbanlist", d.globalBanList, sudo)

	d.route("newfed", d.newFed)
	d.route("delfed", d.deleteFed)
	d.route("fedinfo", d.fedInfo)
	d.route("fban", d.fedBan, RequireGroup)
	d.route("unfban", d.fedUnban, RequireGroup)
	d.route("fpromote", d.fedPromote, RequireGroup)
	d.route("fdemote", d.fedDemote, RequireGroup)
	d.route("joinfed", d.joinFed, groupAdmin...)
	d.route("leavefed", d.leaveFed, groupAdmin...)
	d.route("myfeds", d.myFeds)

	d.route("setwelcome", d.setWelcome, admin...)
	d.route("unsetwelcome", d.unsetWelcome, admin...)
	d.route("setgoodbye", d.setGoodbye, admin...)
	d.route("unsetgoodbye", d.unsetGoodbye, admin...)
	d.route("welcome", d.welcome, admin...)
	d.route("goodbye", d.goodbye, admin...)

	d.route("lock", d.lock, admin...)
	d.route("unlock", d.unlock, admin...)
	d.route("lockall", d.lockAll, admin...)
	d.route("unlockall", d.unlockAll, admin...)
	d.route("locks", d.locks, d.ConnectedChat)
	d.route("locktypes", d.lockTypes)

	d.route("cleanmsg", d.cleanMsg, admin...)
	d.route("keepmsg", d.keepMsg, admin...)
	d.route("nocleanmsg", d.keepMsg, admin...)
	d.route("cleanmsgtypes", d.cleanMsgTypes)

	d.route("connect", d.connect)
	d.route("disconnect", d.disconnect, RequirePrivate)
	d.route("reconnect", d.reconnect, RequirePrivate)
	d.route("connection", d.connection, RequirePrivate)

	d.route("ban", d.ban, admin...)
	d.route("unban", d.unban, admin...)
	d.route("mute", d.mute, admin...)
	d.route("unmute", d.unmute, admin...)
	d.route("kick", d.kick, admin...)
	d.route("warn", d.warn, admin...)
	d.route("unwarn", d.unwarn, admin...)
	d.route("warns", d.warns, d.ConnectedChat)
	d.route("resetwarns", d.resetWarns, admin...)
	d.route("del", d.del, groupAdmin...)
	d.route("purge", d.purge, groupAdmin...)

	d.route("filter", d.addFilter, admin...)
	d.route("stop", d.stopFilter, admin...)
	d.route("filters", d.listFilters, d.ConnectedChat)

	d.route("save", d.saveNote, admin...)
	d.route("get", d.getNote, d.ConnectedChat)
	d.route("clear", d.clearNote, admin...)
	d.route("notes", d.listNotes, d.ConnectedChat)

	d.route("rules", d.rules, d.ConnectedChat)
	d.route("setrules", d.setRules, admin...)
	d.route("report", d.report, RequireGroup)
	d.route("settings", d.settings, admin...)
}

// Handle runs a command. Unknown commands yield an empty failed result, which callers
// should not deliver.
func (d *Dispatcher) Handle(ctx context.Context, cmd *domain.Command) (result domain.Result) {
	h, ok := d.routes[cmd.Name]
	if !ok {
		return domain.Result{}
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Command handler panicked",
				"command", cmd.Name,
				"chat_id", cmd.ChatID,
				"user_id", cmd.Actor.ID,
				"panic", r,
				"stack", string(debug.Stack()))
			commandsTotal.WithLabelValues(cmd.Name, outcomeError).Inc()
			result = domain.Failure(msgInternalError)
		}
	}()

	d.observe(ctx, cmd.Actor, cmd.ChatID, cmd.ChatTitle, cmd.ChatType)
	if cmd.ReplyTo != nil && cmd.ReplyTo.Author.ID != 0 && !cmd.ReplyTo.Author.IsBot {
		d.observeUser(ctx, cmd.ReplyTo.Author)
	}

	req := &Request{Cmd: cmd, ChatID: cmd.ChatID, ChatTitle: cmd.ChatTitle}
	res, err := h(ctx, req)
	if err != nil {
		outcome, failed := d.failure(cmd, err)
		commandsTotal.WithLabelValues(cmd.Name, outcome).Inc()
		return failed
	}

	res = d.finish(ctx, req, res)
	commandsTotal.WithLabelValues(cmd.Name, lo.Ternary(res.OK, outcomeOK, outcomeFailed)).Inc()
	return res
}

// finish appends cleanup of the command message
func (d *Dispatcher) finish(ctx context.Context, req *Request, res domain.Result) domain.Result {
	if !res.OK || !req.Cmd.IsGroup() {
		return res
	}

	deleteCommand := req.Privileged && d.cfg.DeleteCommands
	if !deleteCommand && req.Clean != "" {
		chat, err := d.chats.GetChat(ctx, req.Cmd.ChatID)
		deleteCommand = err == nil && chat.Cleans(req.Clean)
	}
	if deleteCommand {
		res.Actions = lo.Uniq(append(res.Actions, platform.DeleteMessage(req.Cmd.ChatID, req.Cmd.MessageID)))
	}
	return res
}

func (d *Dispatcher) failure(cmd *domain.Command, err error) (string, domain.Result) {
	outcome := outcomeFailed
	if stderrors.Is(err, errors.ErrPermissionDenied) {
		outcome = outcomeDenied
	}

	if msg, ok := userMessage(err); ok {
		return outcome, domain.Failure(msg)
	}

	switch {
	case stderrors.Is(err, errors.ErrPermissionDenied):
		return outcome, domain.Failure(msgNoPermission)
	case stderrors.Is(err, errors.ErrInvalidTarget):
		return outcome, domain.Failure(msgUserNotFound)
	case stderrors.Is(err, errors.ErrNotFound):
		return outcome, domain.Failure(msgNotFound)
	case stderrors.Is(err, errors.ErrAlreadyExists):
		return outcome, domain.Failure(msgAlreadyExists)
	case stderrors.Is(err, errors.ErrInvalidArgument):
		return outcome, domain.Failure(msgInvalidArgs)
	case stderrors.Is(err, errors.ErrGroupOnly):
		return outcome, domain.Failure(msgGroupOnly)
	case stderrors.Is(err, errors.ErrPrivateOnly):
		return outcome, domain.Failure(msgPrivateOnly)
	case stderrors.Is(err, errors.ErrExternalCallFailed):
		return outcome, domain.Failure(fmt.Sprintf("%s: %v", msgExternalFailed, err))
	default:
		slog.Error("Command failed",
			"command", cmd.Name,
			"chat_id", cmd.ChatID,
			"user_id", cmd.Actor.ID,
			"error", err)
		return outcomeError, domain.Failure(msgInternalError)
	}
}

// observe records the actor and, in groups, the chat. Failures are logged only.
func (d *Dispatcher) observe(ctx context.Context, actor userDomain.Profile, chatID int64, chatTitle string, chatType chatDomain.ChatType) {
	if actor.ID != 0 && !actor.IsBot {
		d.observeUser(ctx, actor)
	}
	if !chatType.IsGroup() {
		return
	}
	if _, err := d.chats.Observe(ctx, chatID, chatTitle, chatType); err != nil {
		slog.Warn("Failed to record chat", "chat_id", chatID, "error", err)
	}
}

func (d *Dispatcher) observeUser(ctx context.Context, profile userDomain.Profile) {
	if _, err := d.users.Observe(ctx, profile); err != nil {
		slog.Warn("Failed to record user", "user_id", profile.ID, "error", err)
	}
}
