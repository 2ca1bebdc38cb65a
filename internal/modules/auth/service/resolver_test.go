package service

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/reshetovitsme/groupguard/internal/modules/auth/domain"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	userRepo "github.com/reshetovitsme/groupguard/internal/modules/user/repository"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    = int64(1)
	sudoID     = int64(2)
	promotedID = int64(3)
	adminID    = int64(4)
	memberID   = int64(5)
	chatID     = int64(-100)
)

type stubLookup struct {
	admins map[int64]bool
	err    error
	delay  time.Duration
	calls  atomic.Int32
}

func (s *stubLookup) IsChatAdmin(ctx context.Context, _, userID int64) (bool, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	if s.err != nil {
		return false, s.err
	}
	return s.admins[userID], nil
}

func newResolver(t *testing.T, lookup *stubLookup, timeout time.Duration) *Resolver {
	t.Helper()
	users := userRepo.NewStorage(store.NewMemoryBackend())
	require.NoError(t, users.SaveUser(context.Background(), &userDomain.User{ID: promotedID, IsSudo: true}))
	return NewResolver(domain.NewAuthority(ownerID, []int64{sudoID}), users, lookup, timeout)
}

func TestResolveTiers(t *testing.T) {
	ctx := context.Background()
	resolver := newResolver(t, &stubLookup{admins: map[int64]bool{adminID: true}}, time.Second)

	tests := []struct {
		name    string
		actorID int64
		private bool
		want    domain.Tier
	}{
		{name: "owner", actorID: ownerID, want: domain.TierOwner},
		{name: "configured sudo", actorID: sudoID, want: domain.TierSudo},
		{name: "promoted sudo", actorID: promotedID, want: domain.TierSudo},
		{name: "chat admin", actorID: adminID, want: domain.TierChatAdmin},
		{name: "member", actorID: memberID, want: domain.TierMember},
		{name: "member in private chat", actorID: memberID, private: true, want: domain.TierChatAdmin},
		{name: "owner in private chat", actorID: ownerID, private: true, want: domain.TierOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(ctx, tt.actorID, chatID, tt.private))
		})
	}
}

func TestTierOrdering(t *testing.T) {
	assert.True(t, domain.TierOwner.Satisfies(domain.TierSudo))
	assert.True(t, domain.TierSudo.Satisfies(domain.TierChatAdmin))
	assert.True(t, domain.TierChatAdmin.Satisfies(domain.TierMember))
	assert.False(t, domain.TierMember.Satisfies(domain.TierChatAdmin))
	assert.False(t, domain.TierSudo.Satisfies(domain.TierOwner))
}

func TestLookupFailureIsMember(t *testing.T) {
	ctx := context.Background()

	failing := newResolver(t, &stubLookup{err: stderrors.New("api down")}, time.Second)
	assert.Equal(t, domain.TierMember, failing.Resolve(ctx, adminID, chatID, false))

	slow := newResolver(t, &stubLookup{admins: map[int64]bool{adminID: true}, delay: time.Second}, 10*time.Millisecond)
	assert.Equal(t, domain.TierMember, slow.Resolve(ctx, adminID, chatID, false))
}

func TestCachedAdminLookup(t *testing.T) {
	ctx := context.Background()
	stub := &stubLookup{admins: map[int64]bool{adminID: true}}

	assert.Same(t, stub, WithCache(stub, 0))

	cached := WithCache(stub, time.Minute)
	for range 3 {
		admin, err := cached.IsChatAdmin(ctx, chatID, adminID)
		require.NoError(t, err)
		assert.True(t, admin)
	}
	assert.Equal(t, int32(1), stub.calls.Load())

	stub.err = stderrors.New("api down")
	for range 2 {
		_, err := cached.IsChatAdmin(ctx, chatID, memberID)
		assert.Error(t, err)
	}
	assert.Equal(t, int32(3), stub.calls.Load())

	// a cached answer survives a failing platform
	admin, err := cached.IsChatAdmin(ctx, chatID, adminID)
	require.NoError(t, err)
	assert.True(t, admin)
}

func TestAuthoritySnapshot(t *testing.T) {
	sudo := []int64{9, 3}
	authority := domain.NewAuthority(ownerID, sudo)
	sudo[0] = 100

	assert.Equal(t, []int64{3, 9}, authority.SudoIDs())
	assert.False(t, authority.IsConfiguredSudo(100))
	assert.False(t, domain.NewAuthority(0, nil).IsOwner(0))
}
