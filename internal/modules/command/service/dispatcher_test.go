package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	authDomain "github.com/reshetovitsme/groupguard/internal/modules/auth/domain"
	authService "github.com/reshetovitsme/groupguard/internal/modules/auth/service"
	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	chatService "github.com/reshetovitsme/groupguard/internal/modules/chat/service"
	"github.com/reshetovitsme/groupguard/internal/modules/command/domain"
	connectionRepo "github.com/reshetovitsme/groupguard/internal/modules/connection/repository"
	connectionService "github.com/reshetovitsme/groupguard/internal/modules/connection/service"
	fedRepo "github.com/reshetovitsme/groupguard/internal/modules/federation/repository"
	fedService "github.com/reshetovitsme/groupguard/internal/modules/federation/service"
	filterRepo "github.com/reshetovitsme/groupguard/internal/modules/filter/repository"
	filterService "github.com/reshetovitsme/groupguard/internal/modules/filter/service"
	gbanRepo "github.com/reshetovitsme/groupguard/internal/modules/gban/repository"
	gbanService "github.com/reshetovitsme/groupguard/internal/modules/gban/service"
	moderationService "github.com/reshetovitsme/groupguard/internal/modules/moderation/service"
	modlogRepo "github.com/reshetovitsme/groupguard/internal/modules/modlog/repository"
	modlogService "github.com/reshetovitsme/groupguard/internal/modules/modlog/service"
	noteRepo "github.com/reshetovitsme/groupguard/internal/modules/note/repository"
	noteService "github.com/reshetovitsme/groupguard/internal/modules/note/service"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	userRepo "github.com/reshetovitsme/groupguard/internal/modules/user/repository"
	userService "github.com/reshetovitsme/groupguard/internal/modules/user/service"
	warnRepo "github.com/reshetovitsme/groupguard/internal/modules/warn/repository"
	warnService "github.com/reshetovitsme/groupguard/internal/modules/warn/service"
	"github.com/reshetovitsme/groupguard/internal/shared/config"
	"github.com/reshetovitsme/groupguard/internal/shared/platform"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	groupID  = int64(-1001)
	ownerID  = int64(1)
	adminID  = int64(2)
	memberID = int64(3)
	otherID  = int64(4)
	botID    = int64(99)
)

var (
	owner  = userDomain.Profile{ID: ownerID, FirstName: "Olga", Username: "olga"}
	admin  = userDomain.Profile{ID: adminID, FirstName: "Anna", Username: "anna"}
	member = userDomain.Profile{ID: memberID, FirstName: "Mark", Username: "mark"}
	other  = userDomain.Profile{ID: otherID, FirstName: "Otto", Username: "otto"}
)

type stubAdmins struct {
	admins map[int64]bool
	err    error
}

func (s *stubAdmins) IsChatAdmin(_ context.Context, _, userID int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.admins[userID], nil
}

type fixture struct {
	dispatcher  *Dispatcher
	cfg         *config.Config
	admins      *stubAdmins
	chats       *chatService.Service
	users       *userService.Service
	gbans       *gbanService.Service
	modlog      *modlogService.Service
	connections *connectionService.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := store.NewMemoryBackend()
	t.Cleanup(func() { _ = backend.Close() })

	chats := chatService.New(chatRepo.NewStorage(backend))
	users := userService.New(userRepo.NewStorage(backend))
	warns := warnService.New(warnRepo.NewStorage(backend), chatRepo.NewStorage(backend))
	gbans := gbanService.New(gbanRepo.NewStorage(backend), users)
	feds := fedService.New(fedRepo.NewStorage(backend), chats)
	modlog := modlogService.New(modlogRepo.NewStorage(backend))
	connections := connectionService.New(connectionRepo.NewStorage(backend), chatRepo.NewStorage(backend))

	admins := &stubAdmins{admins: map[int64]bool{adminID: true}}
	cfg := &config.Config{OwnerID: ownerID, DeleteCommands: true}
	resolver := authService.NewResolver(authDomain.NewAuthority(ownerID, nil), userRepo.NewStorage(backend), admins, time.Second)

	d := New(cfg, Dependencies{
		Resolver:    resolver,
		Users:       users,
		Chats:       chats,
		Filters:     filterService.New(filterRepo.NewStorage(backend), chatRepo.NewStorage(backend)),
		Notes:       noteService.New(noteRepo.NewStorage(backend), chatRepo.NewStorage(backend)),
		Moderation:  moderationService.New(users, warns, gbans, feds, modlog),
		Federations: feds,
		GlobalBans:  gbans,
		Connections: connections,
		Modlog:      modlog,
	})
	d.SetBotID(botID)

	return &fixture{
		dispatcher:  d,
		cfg:         cfg,
		admins:      admins,
		chats:       chats,
		users:       users,
		gbans:       gbans,
		modlog:      modlog,
		connections: connections,
	}
}

var nextMessageID = 100

func groupCommand(t *testing.T, actor userDomain.Profile, text string, reply *userDomain.Profile) *domain.Command {
	t.Helper()
	name, args, raw, ok := domain.Parse(text)
	require.True(t, ok, text)

	nextMessageID++
	cmd := &domain.Command{
		Name:      name,
		Actor:     actor,
		ChatID:    groupID,
		ChatTitle: "Test Group",
		ChatType:  chatDomain.ChatTypeSupergroup,
		MessageID: nextMessageID,
		Args:      args,
		RawArgs:   raw,
	}
	if reply != nil {
		cmd.ReplyTo = &domain.Reply{MessageID: nextMessageID - 50, Author: *reply, Text: "some text"}
	}
	return cmd
}

func privateCommand(t *testing.T, actor userDomain.Profile, text string) *domain.Command {
	t.Helper()
	name, args, raw, ok := domain.Parse(text)
	require.True(t, ok, text)

	nextMessageID++
	return &domain.Command{
		Name:      name,
		Actor:     actor,
		ChatID:    actor.ID,
		ChatType:  chatDomain.ChatTypePrivate,
		MessageID: nextMessageID,
		Args:      args,
		RawArgs:   raw,
	}
}

func countKind(actions []platform.Action, kind platform.ActionKind) int {
	return lo.CountBy(actions, func(action platform.Action) bool {
		return action.Kind == kind
	})
}

func TestMemberCannotBan(t *testing.T) {
	f := newFixture(t)
	res := f.dispatcher.Handle(context.Background(), groupCommand(t, member, "/ban", &other))

	assert.False(t, res.OK)
	assert.Equal(t, msgNeedAdmin, res.Message)
	assert.Empty(t, res.Actions)
}

func TestThirdWarnBans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		res := f.dispatcher.Handle(ctx, groupCommand(t, admin, "/warn spam", &member))
		require.True(t, res.OK, res.Message)
		assert.Contains(t, res.Message, "/3)")
		assert.Zero(t, countKind(res.Actions, platform.ActionKindBanMember))
	}

	res := f.dispatcher.Handle(ctx, groupCommand(t, admin, "/warn spam", &member))
	require.True(t, res.OK, res.Message)
	assert.Contains(t, res.Message, "(3/3)")
	assert.Equal(t, 1, countKind(res.Actions, platform.ActionKindBanMember))

	user, err := f.users.GetUser(ctx, memberID)
	require.NoError(t, err)
	assert.True(t, user.IsBannedIn(groupID))

	res = f.dispatcher.Handle(ctx, groupCommand(t, admin, "/warn again", &member))
	require.True(t, res.OK)
	assert.Contains(t, res.Message, "(4/3)")
	assert.Zero(t, countKind(res.Actions, platform.ActionKindBanMember))
}

func TestAdminCannotBeBanned(t *testing.T) {
	f := newFixture(t)
	res := f.dispatcher.Handle(context.Background(), groupCommand(t, owner, "/ban", &admin))

	assert.False(t, res.OK)
	assert.Equal(t, msgProtected, res.Message)
	assert.Empty(t, res.Actions)
}

func TestBanByUserID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.dispatcher.Handle(ctx, groupCommand(t, admin, "/ban 4 flooding", nil))
	require.True(t, res.OK, res.Message)
	assert.Contains(t, res.Message, "Reason: flooding")
	assert.Equal(t, 1, countKind(res.Actions, platform.ActionKindBanMember))

	res = f.dispatcher.Handle(ctx, groupCommand(t, admin, "/unban 4", nil))
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 1, countKind(res.Actions, platform.ActionKindUnbanMember))

	res = f.dispatcher.Handle(ctx, groupCommand(t, admin, "/unban 4", nil))
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "not banned")
	assert.Empty(t, res.Actions)
}

func TestBanByUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// seen once so the username resolves
	f.dispatcher.Handle(ctx, groupCommand(t, other, "/id", nil))

	res := f.dispatcher.Handle(ctx, groupCommand(t, admin, "/ban @otto", nil))
	require.True(t, res.OK, res.Message)
	assert.Equal(t, []platform.Action{
		platform.BanMember(groupID, otherID),
		platform.DeleteMessage(groupID, nextMessageID),
	}, res.Actions)

	res = f.dispatcher.Handle(ctx, groupCommand(t, admin, "/ban @nobody", nil))
	assert.False(t, res.OK)
	assert.Equal(t, msgUserNotFound, res.Message)
}

func TestDeleteCommandsSetting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cmd := groupCommand(t, admin, "/lock sticker", nil)
	res := f.dispatcher.Handle(ctx, cmd)
	require.True(t, res.OK, res.Message)
	assert.Equal(t, []platform.Action{platform.DeleteMessage(groupID, cmd.MessageID)}, res.Actions)

	f.cfg.DeleteCommands = false
	res = f.dispatcher.Handle(ctx, groupCommand(t, admin, "/unlock sticker", nil))
	require.True(t, res.OK, res.Message)
	assert.Empty(t, res.Actions)
}

func TestCleanTypeDeletesCommand(t *testing.T) {
	f := newFixture(t)
	f.cfg.DeleteCommands = false
	ctx := context.Background()

	require.True(t, f.dispatcher.Handle(ctx, groupCommand(t, admin, "/save rules be nice", nil)).OK)

	res := f.dispatcher.Handle(ctx, groupCommand(t, member, "/get rules", nil))
	require.True(t, res.OK)
	assert.Equal(t, "be nice", res.Message)
	assert.Empty(t, res.Actions)

	require.True(t, f.dispatcher.Handle(ctx, groupCommand(t, admin, "/cleanmsg note", nil)).OK)

	cmd := groupCommand(t, member, "/get rules", nil)
	res = f.dispatcher.Handle(ctx, cmd)
	require.True(t, res.OK)
	assert.Equal(t, []platform.Action{platform.DeleteMessage(groupID, cmd.MessageID)}, res.Actions)
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t)
	res := f.dispatcher.Handle(context.Background(), groupCommand(t, admin, "/nope", nil))

	assert.Equal(t, domain.Result{}, res)
}

func TestGroupOnlyAndPrivateOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.dispatcher.Handle(ctx, privateCommand(t, admin, "/del"))
	assert.False(t, res.OK)
	assert.Equal(t, msgGroupOnly, res.Message)

	res = f.dispatcher.Handle(ctx, groupCommand(t, admin, "/connection", nil))
	assert.False(t, res.OK)
	assert.Equal(t, msgPrivateOnly, res.Message)
}

func TestConnectedChatCommands(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.dispatcher.Handle(ctx, privateCommand(t, admin, "/lock sticker"))
	assert.False(t, res.OK)
	assert.Equal(t, msgNotConnected, res.Message)

	require.True(t, f.dispatcher.Handle(ctx, groupCommand(t, member, "/id", nil)).OK)

	res = f.dispatcher.Handle(ctx, privateCommand(t, member, "/connect -1001"))
	assert.False(t, res.OK)
	assert.Equal(t, msgNeedAdmin, res.Message)

	res = f.dispatcher.Handle(ctx, privateCommand(t, admin, "/connect -1001"))
	require.True(t, res.OK, res.Message)
	assert.Contains(t, res.Message, "Test Group")

	res = f.dispatcher.Handle(ctx, privateCommand(t, admin, "/lock sticker"))
	require.True(t, res.OK, res.Message)
	assert.Empty(t, res.Actions)

	chat, err := f.chats.GetChat(ctx, groupID)
	require.NoError(t, err)
	assert.True(t, chat.IsLocked(chatDomain.LockTypeSticker))

	// an admin who lost their rights can no longer act through the connection
	f.admins.admins[adminID] = false
	res = f.dispatcher.Handle(ctx, privateCommand(t, admin, "/unlock sticker"))
	assert.False(t, res.OK)
	assert.Equal(t, msgNeedAdmin, res.Message)

	res = f.dispatcher.Handle(ctx, privateCommand(t, admin, "/disconnect"))
	require.True(t, res.OK)
	res = f.dispatcher.Handle(ctx, privateCommand(t, admin, "/connection"))
	assert.False(t, res.OK)
	assert.Equal(t, msgNotConnected, res.Message)
}

func TestReconnect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.dispatcher.Handle(ctx, privateCommand(t, admin, "/reconnect"))
	assert.False(t, res.OK)

	require.True(t, f.dispatcher.Handle(ctx, groupCommand(t, admin, "/id", nil)).OK)
	require.True(t, f.dispatcher.Handle(ctx, privateCommand(t, admin, "/connect -1001")).OK)
	require.True(t, f.dispatcher.Handle(ctx, privateCommand(t, admin, "/disconnect")).OK)

	before, err := f.connections.LastActive(ctx, adminID)
	require.NoError(t, err)

	// a denied reconnect leaves the history untouched
	f.admins.admins[adminID] = false
	res = f.dispatcher.Handle(ctx, privateCommand(t, admin, "/reconnect"))
	assert.False(t, res.OK)
	assert.Equal(t, msgNeedAdmin, res.Message)

	after, err := f.connections.LastActive(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	_, err = f.connections.Current(ctx, adminID)
	assert.Error(t, err)

	f.admins.admins[adminID] = true
	res = f.dispatcher.Handle(ctx, privateCommand(t, admin, "/reconnect"))
	require.True(t, res.OK, res.Message)
	assert.Contains(t, res.Message, "Test Group")

	current, err := f.connections.Current(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, groupID, current.ChatID)
}

func TestAdminLookupFailureIsMember(t *testing.T) {
	f := newFixture(t)
	f.admins.err = stderrors.New("telegram down")

	res := f.dispatcher.Handle(context.Background(), groupCommand(t, admin, "/ban", &member))
	assert.False(t, res.OK)
	assert.Equal(t, msgNeedAdmin, res.Message)
}

func TestOwnerOnlyCommands(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.dispatcher.Handle(ctx, privateCommand(t, admin, "/addsudo 3"))
	assert.False(t, res.OK)
	assert.Equal(t, msgOwnerOnly, res.Message)

	res = f.dispatcher.Handle(ctx, privateCommand(t, owner, "/addsudo 3"))
	require.True(t, res.OK, res.Message)

	user, err := f.users.GetUser(ctx, memberID)
	require.NoError(t, err)
	assert.True(t, user.IsSudo)

	res = f.dispatcher.Handle(ctx, privateCommand(t, member, "/gban 4 spam"))
	require.True(t, res.OK, res.Message)

	banned, err := f.gbans.IsGloballyBanned(ctx, otherID)
	require.NoError(t, err)
	assert.True(t, banned)
}

func TestGlobalBanProtectsSudo(t *testing.T) {
	f := newFixture(t)
	res := f.dispatcher.Handle(context.Background(), privateCommand(t, owner, "/gban 1"))

	assert.False(t, res.OK)
	assert.Empty(t, res.Actions)
}

func TestPurgeBounded(t *testing.T) {
	f := newFixture(t)
	cmd := groupCommand(t, admin, "/purge", &member)
	cmd.ReplyTo.MessageID = cmd.MessageID - 500

	res := f.dispatcher.Handle(context.Background(), cmd)
	require.True(t, res.OK, res.Message)
	assert.Len(t, res.Actions, purgeLimit)
	assert.Equal(t, platform.DeleteMessage(groupID, cmd.MessageID), res.Actions[len(res.Actions)-1])
}

func TestHandleMessageLocksAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.dispatcher.Handle(ctx, groupCommand(t, admin, "/lock sticker", nil)).OK)
	require.True(t, f.dispatcher.Handle(ctx, groupCommand(t, admin, `/filter "good morning" Morning!`, nil)).OK)
	require.True(t, f.dispatcher.Handle(ctx, groupCommand(t, admin, "/save faq read the pinned message", nil)).OK)

	message := func(sender userDomain.Profile, text string, types ...chatDomain.LockType) *domain.Message {
		nextMessageID++
		return &domain.Message{
			ChatID:       groupID,
			ChatTitle:    "Test Group",
			ChatType:     chatDomain.ChatTypeSupergroup,
			MessageID:    nextMessageID,
			Sender:       sender,
			Text:         text,
			ContentTypes: types,
		}
	}

	sticker := message(member, "", chatDomain.LockTypeSticker)
	res := f.dispatcher.HandleMessage(ctx, sticker)
	assert.Equal(t, []platform.Action{platform.DeleteMessage(groupID, sticker.MessageID)}, res.Actions)
	assert.Empty(t, res.Message)

	res = f.dispatcher.HandleMessage(ctx, message(admin, "", chatDomain.LockTypeSticker))
	assert.Empty(t, res.Actions)

	res = f.dispatcher.HandleMessage(ctx, message(member, "Good Morning everyone", chatDomain.LockTypeText))
	assert.True(t, res.OK)
	assert.Equal(t, "Morning!", res.Message)
	assert.Empty(t, res.Actions)

	res = f.dispatcher.HandleMessage(ctx, message(member, "#faq please", chatDomain.LockTypeText))
	assert.Equal(t, "read the pinned message", res.Message)

	res = f.dispatcher.HandleMessage(ctx, message(member, "nothing here", chatDomain.LockTypeText))
	assert.Equal(t, domain.Result{}, res)
}

func TestCommandLookalikesAreModerated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.True(t, f.dispatcher.Known("ban"))
	assert.False(t, f.dispatcher.Known("buy"))
	assert.False(t, f.dispatcher.Known("home/user"))

	require.True(t, f.dispatcher.Handle(ctx, groupCommand(t, admin, "/lock url", nil)).OK)

	nextMessageID++
	spam := &domain.Message{
		ChatID:       groupID,
		ChatTitle:    "Test Group",
		ChatType:     chatDomain.ChatTypeSupergroup,
		MessageID:    nextMessageID,
		Sender:       member,
		Text:         "!buy cheap pills http://spam.example",
		ContentTypes: []chatDomain.LockType{chatDomain.LockTypeText, chatDomain.LockTypeUrl},
	}
	res := f.dispatcher.HandleMessage(ctx, spam)
	assert.Equal(t, []platform.Action{platform.DeleteMessage(groupID, spam.MessageID)}, res.Actions)
}

func TestJoinOfGloballyBannedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.True(t, f.dispatcher.Handle(ctx, groupCommand(t, admin, "/welcome on", nil)).OK)

	event := &domain.MemberEvent{
		ChatID:      groupID,
		ChatTitle:   "Test Group",
		ChatType:    chatDomain.ChatTypeSupergroup,
		Member:      member,
		MemberCount: 10,
		Joined:      true,
	}
	res := f.dispatcher.HandleMember(ctx, event)
	require.True(t, res.OK)
	assert.Contains(t, res.Message, "welcome to Test Group")
	assert.Empty(t, res.Actions)

	_, err := f.gbans.Add(ctx, memberID, "spam", ownerID)
	require.NoError(t, err)

	res = f.dispatcher.HandleMember(ctx, event)
	require.True(t, res.OK)
	assert.Equal(t, []platform.Action{platform.BanMember(groupID, memberID)}, res.Actions)
}

func TestPanicBecomesFailure(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.route("boom", func(context.Context, *Request) (domain.Result, error) {
		panic("boom")
	})

	res := f.dispatcher.Handle(context.Background(), privateCommand(t, admin, "/boom"))
	assert.False(t, res.OK)
	assert.Equal(t, msgInternalError, res.Message)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.True(t, f.dispatcher.Handle(ctx, groupCommand(t, member, "/id", nil)).OK)

	res := f.dispatcher.Handle(ctx, privateCommand(t, admin, "/stats"))
	assert.False(t, res.OK)

	res = f.dispatcher.Handle(ctx, privateCommand(t, owner, "/stats"))
	require.True(t, res.OK, res.Message)
	assert.Contains(t, res.Message, "Chats: 1")
	assert.Contains(t, res.Message, "Global bans: 0")
	assert.NotContains(t, res.Message, "stale")
}
