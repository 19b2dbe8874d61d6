package ports

import (
	"context"

	"storefront-gateway/internal/features/cart/domain"
)

// CartAPI is the secondary port to the commerce backend's cart endpoints.
// Every mutating call returns the server's recomputed cart.
type CartAPI interface {
	GetCart(ctx context.Context) (*domain.Cart, error)
	AddItem(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, productID, variantID string) (*domain.Cart, error)
	ClearCart(ctx context.Context) error
	ApplyCoupon(ctx context.Context, code string) (*domain.Cart, error)
	RemoveCoupon(ctx context.Context) (*domain.Cart, error)
}

// StateRepository persists each session's cart mirror between requests.
type StateRepository interface {
	// Get returns nil, nil when the session has no stored state.
	Get(ctx context.Context, sessionID string) (*domain.State, error)
	Save(ctx context.Context, sessionID string, state *domain.State) error
}
