package ports

import (
	"context"

	"storefront-gateway/internal/features/orders/domain"
)

// OrderProvider defines the interface for reading and cancelling the shopper's orders.
// This is a Secondary Port (Driven Port).
type OrderProvider interface {
	// GetOrder retrieves an order by its identifier.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	// ListOrders retrieves the shopper's order history, newest first.
	ListOrders(ctx context.Context) ([]domain.Order, error)
	// CancelOrder asks the store to cancel an order and returns its new state.
	CancelOrder(ctx context.Context, orderID string) (*domain.Order, error)
}
