package store

import (
	"context"
)

// Backend persists opaque JSON documents addressed by kind, parent and key.
// Top-level records use an empty parent. Implementations return an error wrapping
// errors.ErrNotFound when a record is missing.
//
// This abstraction allows easy replacement of storage implementations
// (e.g., FileBackend -> PostgreSQL via GormBackend).
type Backend interface {
	Get(ctx context.Context, kind, parent, key string) ([]byte, error)
	Put(ctx context.Context, kind, parent, key string, data []byte) error
	Delete(ctx context.Context, kind, parent, key string) error
	List(ctx context.Context, kind, parent string) ([][]byte, error)
	Close() error
}
