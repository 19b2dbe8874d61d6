package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist or has expired.
var ErrNotFound = errors.New("cache: key not found")

// Cache defines the key/value operations the session repositories rely on.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value by key. Returns ErrNotFound (wrapped) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified TTL. TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
