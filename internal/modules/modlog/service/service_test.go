package service

import (
	"context"
	"testing"

	"github.com/reshetovitsme/groupguard/internal/modules/modlog/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/modlog/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewStorage(store.NewMemoryBackend()))
	scope := domain.ChatScope(-100)

	for _, action := range []domain.Action{domain.ActionWarn, domain.ActionMute, domain.ActionBan} {
		_, err := svc.Record(ctx, scope, action, 1, 2, "")
		require.NoError(t, err)
	}
	svc.Log(ctx, domain.GlobalScope, domain.ActionGban, 1, 3, "spam")

	entries, err := svc.GetEntries(ctx, scope, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionBan, entries[0].Action)
	assert.Equal(t, domain.ActionMute, entries[1].Action)

	global, err := svc.GetEntries(ctx, domain.GlobalScope, 50)
	require.NoError(t, err)
	require.Len(t, global, 1)
	assert.Equal(t, "spam", global[0].Reason)
	assert.Equal(t, "chat:-100", scope)
	assert.Equal(t, "fed:abc", domain.FedScope("abc"))
}
