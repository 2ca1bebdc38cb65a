package service

import (
	"context"
	"testing"
	"time"

	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	"github.com/reshetovitsme/groupguard/internal/modules/filter/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatID = int64(-100)

func newService(t *testing.T) *Service {
	t.Helper()
	backend := store.NewMemoryBackend()
	chats := chatRepo.NewStorage(backend)
	require.NoError(t, chats.SaveChat(context.Background(), &chatDomain.Chat{ID: chatID, Title: "Test"}))

	svc := New(repository.NewStorage(backend), chats)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func TestFilterRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.AddFilter(ctx, chatID, "K", "v", 1)
	require.NoError(t, err)

	filter, ok, err := svc.Match(ctx, chatID, "say k please")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", filter.Reply)

	require.NoError(t, svc.RemoveFilter(ctx, chatID, "k"))

	_, ok, err = svc.Match(ctx, chatID, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	err = svc.RemoveFilter(ctx, chatID, "k")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestMatchUsesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.AddFilter(ctx, chatID, "world", "second", 1)
	require.NoError(t, err)
	_, err = svc.AddFilter(ctx, chatID, "hello", "first", 1)
	require.NoError(t, err)

	filter, ok, err := svc.Match(ctx, chatID, "Hello World")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "world", filter.Keyword)

	// Replacing a keyword moves it to the end
	_, err = svc.AddFilter(ctx, chatID, "world", "replaced", 1)
	require.NoError(t, err)

	filter, ok, err = svc.Match(ctx, chatID, "Hello World")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", filter.Keyword)
}

func TestOrphanedChatMatchesNothing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.AddFilter(ctx, -999, "k", "v", 1)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, ok, err := svc.Match(ctx, -999, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddFilterRejectsEmpty(t *testing.T) {
	_, err := newService(t).AddFilter(context.Background(), chatID, "  ", "v", 1)
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)
}
