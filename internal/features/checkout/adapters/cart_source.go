package adapters

import (
	"context"
	"errors"
	"fmt"

	cartdomain "storefront-gateway/internal/features/cart/domain"
	cartservice "storefront-gateway/internal/features/cart/service"
)

// ErrCartUnavailable is returned when the cart could not be refreshed from the store.
var ErrCartUnavailable = errors.New("cart unavailable")

// CartSessionSource implements ports.CartSource on top of the per-session cart stores.
type CartSessionSource struct {
	sessions *cartservice.Sessions
}

// NewCartSessionSource creates a new CartSessionSource.
func NewCartSessionSource(sessions *cartservice.Sessions) *CartSessionSource {
	return &CartSessionSource{sessions: sessions}
}

// Snapshot refreshes the session's cart from the store and returns it.
func (s *CartSessionSource) Snapshot(ctx context.Context, sessionID string) (*cartdomain.Cart, error) {
	store, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ok := store.FetchCart(ctx)
	if err := s.sessions.Persist(ctx, sessionID, store); err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCartUnavailable, store.State().Error)
	}

	cart := store.Cart()
	return &cart, nil
}

// Clear empties the session's cart.
func (s *CartSessionSource) Clear(ctx context.Context, sessionID string) error {
	store, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return err
	}

	ok := store.ClearCart(ctx)
	if err := s.sessions.Persist(ctx, sessionID, store); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrCartUnavailable, store.State().Error)
	}
	return nil
}
