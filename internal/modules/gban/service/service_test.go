package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/reshetovitsme/groupguard/internal/modules/gban/domain"
	"github.com/reshetovitsme/groupguard/internal/modules/gban/repository"
	userDomain "github.com/reshetovitsme/groupguard/internal/modules/user/domain"
	userRepo "github.com/reshetovitsme/groupguard/internal/modules/user/repository"
	userService "github.com/reshetovitsme/groupguard/internal/modules/user/service"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/reshetovitsme/groupguard/internal/shared/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingUsers struct {
	userRepo.Repository
	fail bool
}

func (f *failingUsers) SaveUser(ctx context.Context, user *userDomain.User) error {
	if f.fail {
		return stderrors.New("disk full")
	}
	return f.Repository.SaveUser(ctx, user)
}

func newService(t *testing.T) (*Service, *failingUsers) {
	t.Helper()
	backend := store.NewMemoryBackend()
	users := &failingUsers{Repository: userRepo.NewStorage(backend)}
	return New(repository.NewStorage(backend), userService.New(users)), users
}

func assertConsistent(t *testing.T, svc *Service) {
	t.Helper()
	mismatched, err := svc.Inconsistent(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mismatched)
}

func TestAddRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Add(ctx, 7, "spam", 1)
	require.NoError(t, err)
	assertConsistent(t, svc)

	banned, err := svc.IsGloballyBanned(ctx, 7)
	require.NoError(t, err)
	assert.True(t, banned)

	user, err := svc.users.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.True(t, user.IsGloballyBanned)

	_, err = svc.Add(ctx, 7, "again", 1)
	assert.ErrorIs(t, err, errors.ErrAlreadyExists)
	assertConsistent(t, svc)

	removed, err := svc.Remove(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "spam", removed.Reason)
	assertConsistent(t, svc)

	banned, err = svc.IsGloballyBanned(ctx, 7)
	require.NoError(t, err)
	assert.False(t, banned)

	_, err = svc.Remove(ctx, 7)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assertConsistent(t, svc)
}

func TestFailedUserWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	svc, users := newService(t)

	users.fail = true
	_, err := svc.Add(ctx, 7, "spam", 1)
	require.Error(t, err)

	banned, err := svc.IsGloballyBanned(ctx, 7)
	require.NoError(t, err)
	assert.False(t, banned)

	users.fail = false
	_, err = svc.Add(ctx, 7, "spam", 1)
	require.NoError(t, err)

	users.fail = true
	_, err = svc.Remove(ctx, 7)
	require.Error(t, err)

	banned, err = svc.IsGloballyBanned(ctx, 7)
	require.NoError(t, err)
	assert.True(t, banned)

	users.fail = false
	assertConsistent(t, svc)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	for _, id := range []int64{3, 1, 2} {
		_, err := svc.Add(ctx, id, "", 9)
		require.NoError(t, err)
	}

	bans, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bans, 3)
}

func TestInconsistentReportsStaleFlags(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	require.NoError(t, svc.repo.SaveBan(ctx, &domain.GlobalBan{UserID: 7, Reason: "spam"}))
	_, err := svc.users.Update(ctx, 8, func(user *userDomain.User) error {
		user.IsGloballyBanned = true
		return nil
	})
	require.NoError(t, err)

	mismatched, err := svc.Inconsistent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8}, mismatched)
}

func TestInconsistentWaitsForBansInProgress(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	saved := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := svc.users.Update(ctx, 7, func(user *userDomain.User) error {
			if err := svc.repo.SaveBan(ctx, &domain.GlobalBan{UserID: 7, Reason: "spam"}); err != nil {
				return err
			}
			close(saved)
			<-release
			user.IsGloballyBanned = true
			return nil
		})
		done <- err
	}()
	<-saved

	result := make(chan []int64, 1)
	go func() {
		mismatched, err := svc.Inconsistent(ctx)
		assert.NoError(t, err)
		result <- mismatched
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)
	require.NoError(t, <-done)
	assert.Empty(t, <-result)
}
