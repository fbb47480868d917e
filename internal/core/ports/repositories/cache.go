package repositories

import (
	"context"
	"time"
)

// CacheStore is the cache port injected into services. Implementations must
// treat TTLs as upper bounds; entries may be evicted earlier. A miss is
// reported via the boolean, not an error.
type CacheStore interface {
	// Get returns the cached value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key for at most ttl.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes the given keys. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error
}
