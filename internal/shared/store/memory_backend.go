package store

import (
	"context"
	"sort"
	"sync"

	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/samber/oops"
)

// MemoryBackend keeps documents in process memory. Used by tests and the memory driver.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string]map[string][]byte)}
}

func (b *MemoryBackend) Get(_ context.Context, kind, parent, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.docs[bucket(kind, parent)][key]
	if !ok {
		return nil, oops.With("kind", kind, "parent", parent, "key", key).Wrap(errors.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (b *MemoryBackend) Put(_ context.Context, kind, parent, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	name := bucket(kind, parent)
	if b.docs[name] == nil {
		b.docs[name] = make(map[string][]byte)
	}
	b.docs[name][key] = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, kind, parent, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	name := bucket(kind, parent)
	if _, ok := b.docs[name][key]; !ok {
		return oops.With("kind", kind, "parent", parent, "key", key).Wrap(errors.ErrNotFound)
	}
	delete(b.docs[name], key)
	return nil
}

func (b *MemoryBackend) List(_ context.Context, kind, parent string) ([][]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	docs := b.docs[bucket(kind, parent)]
	keys := make([]string, 0, len(docs))
	for key := range docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([][]byte, 0, len(keys))
	for _, key := range keys {
		result = append(result, append([]byte(nil), docs[key]...))
	}
	return result, nil
}

func (b *MemoryBackend) Close() error {
	return nil
}

func bucket(kind, parent string) string {
	return kind + "\x00" + parent
}
