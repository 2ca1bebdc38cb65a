package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/reshetovitsme/groupguard/internal/shared/platform"
)

const adminCacheSize = 4096

// CachedAdminLookup remembers successful admin lookups for a while. Failed lookups are
// never cached.
type CachedAdminLookup struct {
	next  platform.AdminLookup
	cache *expirable.LRU[string, bool]
}

// WithCache wraps next with a cache when ttl is positive and returns next unchanged otherwise
func WithCache(next platform.AdminLookup, ttl time.Duration) platform.AdminLookup {
	if ttl <= 0 {
		return next
	}
	return &CachedAdminLookup{
		next:  next,
		cache: expirable.NewLRU[string, bool](adminCacheSize, nil, ttl),
	}
}

func (c *CachedAdminLookup) IsChatAdmin(ctx context.Context, chatID, userID int64) (bool, error) {
	key := fmt.Sprintf("%d:%d", chatID, userID)
	if admin, ok := c.cache.Get(key); ok {
		return admin, nil
	}

	admin, err := c.next.IsChatAdmin(ctx, chatID, userID)
	if err != nil {
		return false, err
	}
	c.cache.Add(key, admin)
	return admin, nil
}
