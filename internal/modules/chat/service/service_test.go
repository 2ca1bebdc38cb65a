package service

import (
	"context"
	"testing"

	"github.com/reshetovitsme/groupguard/internal/modules/chat/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/chat/repository"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *Service {
	return New(repository.NewStorage(store.NewMemoryBackend()))
}

func TestObserveDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	chat, err := svc.Observe(ctx, -100, "Test", domain.ChatTypeSupergroup)
	require.NoError(t, err)
	assert.True(t, chat.WelcomeEnabled)
	assert.True(t, chat.GoodbyeEnabled)
	assert.Empty(t, chat.LockedTypes)

	chat, err = svc.Observe(ctx, -100, "Renamed", domain.ChatTypeSupergroup)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", chat.Title)
}

func TestUpdateUnknownChat(t *testing.T) {
	err := newService().SetRules(context.Background(), -1, "be nice")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestLocks(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Observe(ctx, -100, "Test", domain.ChatTypeGroup)
	require.NoError(t, err)

	chat, err := svc.Lock(ctx, -100, domain.LockTypeSticker, domain.LockTypeURL, domain.LockTypeSticker)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.LockType{domain.LockTypeSticker, domain.LockTypeURL}, chat.LockedTypes)
	assert.True(t, chat.IsLocked(domain.LockTypeSticker))
	assert.False(t, chat.IsLocked(domain.LockTypePhoto))

	chat, err = svc.Lock(ctx, -100, domain.LockTypeAll)
	require.NoError(t, err)
	assert.True(t, chat.FullyLocked)
	assert.True(t, chat.IsLocked(domain.LockTypePhoto))

	chat, err = svc.Unlock(ctx, -100, domain.LockTypeURL)
	require.NoError(t, err)
	assert.True(t, chat.FullyLocked)
	assert.Equal(t, []domain.LockType{domain.LockTypeSticker}, chat.LockedTypes)

	chat, err = svc.Unlock(ctx, -100, domain.LockTypeAll)
	require.NoError(t, err)
	assert.False(t, chat.FullyLocked)
	assert.Empty(t, chat.LockedTypes)
	assert.False(t, chat.IsLocked(domain.LockTypeSticker))
}

func TestWelcomeLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Observe(ctx, -100, "Test", domain.ChatTypeGroup)
	require.NoError(t, err)

	require.NoError(t, svc.SetWelcome(ctx, -100, "Hi {first}"))
	chat, err := svc.GetChat(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, "Hi {first}", chat.WelcomeTemplate)

	require.NoError(t, svc.UnsetWelcome(ctx, -100))
	chat, err = svc.GetChat(ctx, -100)
	require.NoError(t, err)
	assert.Empty(t, chat.WelcomeTemplate)
	assert.False(t, chat.WelcomeEnabled)
}

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
	}{
		{
			name:     "known tokens",
			template: "Welcome {first} to {chat}!",
			vars:     map[string]string{"first": "Ann", "chat": "Test"},
			want:     "Welcome Ann to Test!",
		},
		{
			name:     "unknown token kept",
			template: "Hello {first} {foo}",
			vars:     map[string]string{"first": "Ann", "foo": "bar"},
			want:     "Hello Ann {foo}",
		},
		{
			name:     "missing value kept",
			template: "{count} members",
			vars:     map[string]string{},
			want:     "{count} members",
		},
		{
			name:     "single pass",
			template: "{first} in {chat}",
			vars:     map[string]string{"first": "{chat}", "chat": "Test"},
			want:     "{chat} in Test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTemplate(tt.template, tt.vars))
		})
	}
}

func TestGreetingVars(t *testing.T) {
	vars := GreetingVars(userDomain.Profile{ID: 42, FirstName: "Ann", LastName: "Lee", Username: "ann"}, "Test", 10)

	got := RenderTemplate("{fullname} ({username}, {id}) is #{count} in {chat}, hi {mention}", vars)
	assert.Equal(t, "Ann Lee (@ann, 42) is #10 in Test, hi @ann", got)
}
