package service

import (
	"context"
	"sync"
	"testing"

	chatDomain "github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	chatRepo "github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	"github.com/reshetovitsme/groupguard/internal/modules/warn/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chatID = int64(-100)
	userID = int64(7)
)

func newService(t *testing.T) *Service {
	t.Helper()
	backend := store.NewMemoryBackend()
	chats := chatRepo.NewStorage(backend)
	require.NoError(t, chats.SaveChat(context.Background(), &chatDomain.Chat{ID: chatID}))
	return New(repository.NewStorage(backend), chats)
}

func TestIssueCountsPerPair(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for i := 1; i <= 3; i++ {
		_, count, err := svc.Issue(ctx, chatID, userID, 1, "spam")
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	other, err := svc.Count(ctx, chatID, 8)
	require.NoError(t, err)
	assert.Zero(t, other)
}

func TestRemoveMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	first, _, err := svc.Issue(ctx, chatID, userID, 1, "first")
	require.NoError(t, err)
	_, _, err = svc.Issue(ctx, chatID, userID, 1, "second")
	require.NoError(t, err)

	removed, remaining, err := svc.Remove(ctx, chatID, userID, "")
	require.NoError(t, err)
	assert.Equal(t, "second", removed.Reason)
	assert.Equal(t, 1, remaining)

	_, _, err = svc.Remove(ctx, chatID, userID, "missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	removed, remaining, err = svc.Remove(ctx, chatID, userID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", removed.Reason)
	assert.Zero(t, remaining)

	_, _, err = svc.Remove(ctx, chatID, userID, "")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for range 2 {
		_, _, err := svc.Issue(ctx, chatID, userID, 1, "")
		require.NoError(t, err)
	}

	removed, err := svc.Reset(ctx, chatID, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	count, err := svc.Count(ctx, chatID, userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestConcurrentIssueKeepsEveryWarn(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Issue(ctx, chatID, userID, 1, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := svc.Count(ctx, chatID, userID)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestUnknownChat(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, _, err := svc.Issue(ctx, -5, userID, 1, "")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	warns, err := svc.List(ctx, -5, userID)
	require.NoError(t, err)
	assert.Empty(t, warns)
}
