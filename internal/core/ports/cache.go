package ports

import (
	"context"
	"time"
)

// Cache is the byte-level cache behind the caching repositories. Callers
// fall back to the primary store on any error, so implementations may fail
// without breaking reads.
type Cache interface {
	// Get returns the bytes for key; ok is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
