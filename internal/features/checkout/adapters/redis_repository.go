package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-gateway/internal/core/cache"
	"storefront-gateway/internal/features/checkout/domain"
)

const checkoutKeyPrefix = "checkout:"

// RedisCheckoutRepository implements ports.CheckoutRepository on top of the cache.
type RedisCheckoutRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisCheckoutRepository creates a new RedisCheckoutRepository.
func NewRedisCheckoutRepository(c cache.Cache, ttl time.Duration) *RedisCheckoutRepository {
	return &RedisCheckoutRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Get retrieves the checkout for sessionID, or nil if the session has none.
func (r *RedisCheckoutRepository) Get(ctx context.Context, sessionID string) (*domain.State, error) {
	data, err := r.cache.Get(ctx, checkoutKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get checkout state from cache: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout state: %w", err)
	}
	return &state, nil
}

// Save stores the checkout for sessionID.
func (r *RedisCheckoutRepository) Save(ctx context.Context, sessionID string, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout state: %w", err)
	}
	if err := r.cache.Set(ctx, checkoutKeyPrefix+sessionID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save checkout state to cache: %w", err)
	}
	return nil
}

// Delete removes the checkout for sessionID.
func (r *RedisCheckoutRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, checkoutKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete checkout state from cache: %w", err)
	}
	return nil
}
