package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent. Callers treat it
// the same as any other cache failure: fall back to the backing store.
var ErrCacheMiss = errors.New("cache: miss")

// Cache is a best-effort key/value store with per-key TTL. No caller may
// depend on a cache write having happened.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ProfileKey is the cache key for a user's profile record.
func ProfileKey(userID uint) string {
	return fmt.Sprintf("user:profile:%d", userID)
}
