package service

import (
	"context"
	"testing"

	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	chatService "github.com/reshetovitsme/groupguard/internal/modules/chat/service"
	"github.com/reshetovitsme/groupguard/internal/modules/federation/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner  = int64(1)
	admin  = int64(2)
	member = int64(3)
)

func newService(t *testing.T) (*Service, *chatService.Service) {
	t.Helper()
	backend := store.NewMemoryBackend()
	chats := chatService.New(chatRepo.NewStorage(backend))
	_, err := chats.Observe(context.Background(), -100, "Test", chatDomain.ChatTypeSupergroup)
	require.NoError(t, err)
	return New(repository.NewStorage(backend), chats), chats
}

func TestDeleteRequiresOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	fed, err := svc.Create(ctx, "Spam Watch", owner)
	require.NoError(t, err)

	err = svc.Delete(ctx, fed.ID, member)
	assert.ErrorIs(t, err, errors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, fed.ID, owner))

	_, err = svc.Get(ctx, fed.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestBanPermissions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	fed, err := svc.Create(ctx, "Fed", owner)
	require.NoError(t, err)

	_, err = svc.AddAdmin(ctx, fed.ID, admin, member)
	assert.ErrorIs(t, err, errors.ErrPermissionDenied)

	_, err = svc.AddAdmin(ctx, fed.ID, admin, owner)
	require.NoError(t, err)

	_, err = svc.Ban(ctx, fed.ID, 99, "spam", member)
	assert.ErrorIs(t, err, errors.ErrPermissionDenied)

	_, err = svc.Ban(ctx, fed.ID, owner, "coup", admin)
	assert.ErrorIs(t, err, errors.ErrInvalidTarget)

	fed, err = svc.Ban(ctx, fed.ID, 99, "spam", admin)
	require.NoError(t, err)
	assert.True(t, fed.IsBanned(99))
	assert.Equal(t, "spam", fed.Bans[99].Reason)

	_, err = svc.Unban(ctx, fed.ID, 98, admin)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	fed, err = svc.Unban(ctx, fed.ID, 99, owner)
	require.NoError(t, err)
	assert.False(t, fed.IsBanned(99))

	_, err = svc.RemoveAdmin(ctx, fed.ID, admin, owner)
	require.NoError(t, err)

	_, err = svc.Ban(ctx, fed.ID, 99, "spam", admin)
	assert.ErrorIs(t, err, errors.ErrPermissionDenied)
}

func TestJoinAndLeave(t *testing.T) {
	ctx := context.Background()
	svc, chats := newService(t)

	first, err := svc.Create(ctx, "First", owner)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "Second", owner)
	require.NoError(t, err)

	_, err = svc.JoinChat(ctx, first.ID, -100)
	require.NoError(t, err)

	joined, err := svc.JoinChat(ctx, second.ID, -100)
	require.NoError(t, err)
	assert.Equal(t, []int64{-100}, joined.ChatIDs)

	first, err = svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, first.ChatIDs)

	current, err := svc.ChatFederation(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	// A deleted federation leaves the chat in no federation
	require.NoError(t, svc.Delete(ctx, second.ID, owner))
	_, err = svc.ChatFederation(ctx, -100)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	require.NoError(t, svc.LeaveChat(ctx, -100))
	chat, err := chats.GetChat(ctx, -100)
	require.NoError(t, err)
	assert.Empty(t, chat.FedID)

	owned, err := svc.ListOwned(ctx, owner)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "First", owned[0].Name)
}
