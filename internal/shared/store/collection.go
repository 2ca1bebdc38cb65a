package store

import (
	"context"
	"encoding/json"

	"github.com/samber/oops"
)

// Collection is a typed view over one kind of document
type Collection[T any] struct {
	backend Backend
	kind    string
}

// NewCollection binds a kind to a backend
func NewCollection[T any](backend Backend, kind string) *Collection[T] {
	return &Collection[T]{backend: backend, kind: kind}
}

func (c *Collection[T]) Get(ctx context.Context, parent, key string) (*T, error) {
	data, err := c.backend.Get(ctx, c.kind, parent, key)
	if err != nil {
		return nil, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, oops.With("kind", c.kind, "parent", parent, "key", key, "context", "failed to unmarshal document").Wrap(err)
	}
	return &value, nil
}

func (c *Collection[T]) Put(ctx context.Context, parent, key string, value *T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return oops.With("kind", c.kind, "parent", parent, "key", key, "context", "failed to marshal document").Wrap(err)
	}
	return c.backend.Put(ctx, c.kind, parent, key, data)
}

func (c *Collection[T]) Delete(ctx context.Context, parent, key string) error {
	return c.backend.Delete(ctx, c.kind, parent, key)
}

// List returns every document under parent. Documents that fail to decode are skipped.
func (c *Collection[T]) List(ctx context.Context, parent string) ([]*T, error) {
	docs, err := c.backend.List(ctx, c.kind, parent)
	if err != nil {
		return nil, err
	}

	values := make([]*T, 0, len(docs))
	for _, data := range docs {
		var value T
		if err := json.Unmarshal(data, &value); err != nil {
			continue
		}
		values = append(values, &value)
	}
	return values, nil
}
