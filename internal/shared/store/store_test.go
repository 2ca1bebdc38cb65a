package store

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBackends(t *testing.T) map[string]Backend {
	t.Helper()

	fileBackend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sqliteBackend, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { sqliteBackend.Close() })

	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   fileBackend,
		"sqlite": sqliteBackend,
	}
}

func TestBackendRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, backend := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := backend.Get(ctx, "filters", "-100", "hello")
			assert.True(stderrors.Is(err, errors.ErrNotFound))

			require.NoError(t, backend.Put(ctx, "filters", "-100", "hello", []byte(`{"v":1}`)))
			require.NoError(t, backend.Put(ctx, "filters", "-100", "hello", []byte(`{"v":2}`)))
			require.NoError(t, backend.Put(ctx, "filters", "-100", "a/b", []byte(`{"v":3}`)))
			require.NoError(t, backend.Put(ctx, "filters", "-200", "other", []byte(`{"v":4}`)))

			data, err := backend.Get(ctx, "filters", "-100", "hello")
			require.NoError(t, err)
			assert.JSONEq(`{"v":2}`, string(data))

			docs, err := backend.List(ctx, "filters", "-100")
			require.NoError(t, err)
			assert.Len(docs, 2)

			require.NoError(t, backend.Delete(ctx, "filters", "-100", "hello"))
			err = backend.Delete(ctx, "filters", "-100", "hello")
			assert.True(stderrors.Is(err, errors.ErrNotFound))

			docs, err = backend.List(ctx, "filters", "-100")
			require.NoError(t, err)
			assert.Len(docs, 1)

			docs, err = backend.List(ctx, "filters", "missing")
			require.NoError(t, err)
			assert.Empty(docs)
		})
	}
}

func TestBackendTopLevelParent(t *testing.T) {
	ctx := context.Background()

	for name, backend := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, backend.Put(ctx, "users", "", "42", []byte(`{"id":42}`)))
			require.NoError(t, backend.Put(ctx, "users", "", ".hidden", []byte(`{"id":43}`)))

			docs, err := backend.List(ctx, "users", "")
			require.NoError(t, err)
			assert.Len(t, docs, 2)
		})
	}
}

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCollection(t *testing.T) {
	ctx := context.Background()
	col := NewCollection[sample](NewMemoryBackend(), "samples")

	require.NoError(t, col.Put(ctx, "p", "a", &sample{Name: "a", Count: 1}))
	require.NoError(t, col.Put(ctx, "p", "b", &sample{Name: "b", Count: 2}))

	got, err := col.Get(ctx, "p", "b")
	require.NoError(t, err)
	assert.Equal(t, &sample{Name: "b", Count: 2}, got)

	all, err := col.List(ctx, "p")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, col.Delete(ctx, "p", "a"))
	_, err = col.Get(ctx, "p", "a")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestKeyLockSerialisesUpdates(t *testing.T) {
	ctx := context.Background()
	col := NewCollection[sample](NewMemoryBackend(), "samples")
	locks := NewKeyLock()
	require.NoError(t, col.Put(ctx, "", "counter", &sample{Name: "counter"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("counter")
			defer unlock()

			cur, err := col.Get(ctx, "", "counter")
			if err != nil {
				return
			}
			cur.Count++
			_ = col.Put(ctx, "", "counter", cur)
		}()
	}
	wg.Wait()

	got, err := col.Get(ctx, "", "counter")
	require.NoError(t, err)
	assert.Equal(t, 50, got.Count)
	assert.Zero(t, locks.size())
}

func TestKeyLockDropsReleasedKeys(t *testing.T) {
	locks := NewKeyLock()

	unlockA := locks.Lock("user:1")
	unlockB := locks.Lock("user:2")
	assert.Equal(t, 2, locks.size())

	unlockA()
	assert.Equal(t, 1, locks.size())

	// a released key can be locked again
	unlockA = locks.Lock("user:1")
	unlockA()
	unlockB()
	assert.Zero(t, locks.size())
}
