package store

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// KeyLock hands out one mutex per key. Services hold it across read-modify-write cycles so
// concurrent updates of the same entity never lose writes. A key's entry lives only while
// someone holds or waits for it.
type KeyLock struct {
	locks *xsync.MapOf[string, *keyEntry]
}

type keyEntry struct {
	mu sync.Mutex
	// refs counts holders and waiters, changed only inside Compute
	refs int
}

func NewKeyLock() *KeyLock {
	return &KeyLock{locks: xsync.NewMapOf[string, *keyEntry]()}
}

// Lock blocks until key is free and returns the matching unlock func
func (l *KeyLock) Lock(key string) func() {
	entry, _ := l.locks.Compute(key, func(old *keyEntry, loaded bool) (*keyEntry, bool) {
		if !loaded {
			old = &keyEntry{}
		}
		old.refs++
		return old, false
	})
	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		l.locks.Compute(key, func(old *keyEntry, loaded bool) (*keyEntry, bool) {
			old.refs--
			return old, old.refs == 0
		})
	}
}

// size is the number of keys currently held or waited on
func (l *KeyLock) size() int {
	return l.locks.Size()
}
