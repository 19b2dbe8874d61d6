package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-gateway/internal/core/cache"
	"storefront-gateway/internal/features/cart/domain"
)

const cartKeyPrefix = "cart:"

// RedisStateRepository implements ports.StateRepository on top of the cache.
type RedisStateRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisStateRepository creates a new RedisStateRepository.
// Stored state expires after ttl of inactivity.
func NewRedisStateRepository(c cache.Cache, ttl time.Duration) *RedisStateRepository {
	return &RedisStateRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Get retrieves the state for sessionID.
func (r *RedisStateRepository) Get(ctx context.Context, sessionID string) (*domain.State, error) {
	data, err := r.cache.Get(ctx, cartKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart state from cache: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart state: %w", err)
	}

	return &state, nil
}

// Save stores the state for sessionID and refreshes its TTL.
func (r *RedisStateRepository) Save(ctx context.Context, sessionID string, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal cart state: %w", err)
	}

	if err := r.cache.Set(ctx, cartKeyPrefix+sessionID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save cart state to cache: %w", err)
	}

	return nil
}
