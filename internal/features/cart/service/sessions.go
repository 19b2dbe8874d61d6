package service

import (
	"context"
	"fmt"

	"storefront-gateway/internal/features/cart/ports"
)

// Sessions builds a CartStore per shopper session and persists it afterwards.
type Sessions struct {
	api  ports.CartAPI
	repo ports.StateRepository
	opts Options
}

// NewSessions creates a new Sessions.
func NewSessions(api ports.CartAPI, repo ports.StateRepository, opts Options) *Sessions {
	return &Sessions{
		api:  api,
		repo: repo,
		opts: opts,
	}
}

// Load returns the store for sessionID, seeded from persisted state.
func (m *Sessions) Load(ctx context.Context, sessionID string) (*CartStore, error) {
	state, err := m.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart state: %w", err)
	}
	return NewCartStore(m.api, state, m.opts), nil
}

// Persist saves the store's state for sessionID.
func (m *Sessions) Persist(ctx context.Context, sessionID string, store *CartStore) error {
	state := store.State()
	if err := m.repo.Save(ctx, sessionID, &state); err != nil {
		return fmt.Errorf("service: failed to save cart state: %w", err)
	}
	return nil
}
