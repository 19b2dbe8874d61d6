package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter implements the Cache interface using Redis.
type RedisAdapter struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisAdapter creates a new Redis cache adapter.
// The redisURL should be in the format: redis://[:password@]host[:port][/database]
// Every key is namespaced with keyPrefix so several deployments can share a database.
func NewRedisAdapter(redisURL, keyPrefix string) (*RedisAdapter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	return &RedisAdapter{
		client:    redis.NewClient(opts),
		keyPrefix: keyPrefix,
	}, nil
}

func (r *RedisAdapter) key(k string) string {
	return r.keyPrefix + k
}

// Get retrieves a value from Redis by key.
func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// Set stores a value in Redis with the specified TTL.
func (r *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes a value from Redis by key.
func (r *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (r *RedisAdapter) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisAdapter) Close() error {
	return r.client.Close()
}
