package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/features/orders/domain"
	"storefront-gateway/internal/features/orders/ports"

	"go.uber.org/zap"
)

// ErrOrderNotFound is returned when the order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrUnauthorized is returned when the shopper may not see the order.
var ErrUnauthorized = errors.New("not authorized to view this order")

// ErrNotCancellable is returned when the order has already been delivered or cancelled.
var ErrNotCancellable = errors.New("order can no longer be cancelled")

// OrderService handles the business logic for the order confirmation and history views.
type OrderService struct {
	// provider is the interface for fetching order data from the store.
	provider ports.OrderProvider
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(provider ports.OrderProvider) *OrderService {
	return &OrderService{
		provider: provider,
	}
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.provider.GetOrder(ctx, orderID)
	if err != nil {
		return nil, classify(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders retrieves the shopper's orders.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.provider.ListOrders(ctx)
	if err != nil {
		return nil, classify(err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// CancelOrder cancels an order that has not been delivered yet.
// The current status is re-read first so an already shipped-and-delivered order is refused locally.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(domain.OrderStatusCancelled) {
		return nil, fmt.Errorf("%w: order %s is %s", ErrNotCancellable, orderID, order.Status)
	}

	cancelled, err := s.provider.CancelOrder(ctx, orderID)
	if err != nil {
		if apiclient.KindOf(err) == apiclient.KindRejected {
			return nil, fmt.Errorf("%w: %v", ErrNotCancellable, err)
		}
		return nil, classify(err)
	}

	logger.Get().Info("Order cancelled",
		zap.String("order_id", orderID),
		zap.String("previous_status", string(order.Status)),
	)
	return cancelled, nil
}

func classify(err error) error {
	switch apiclient.KindOf(err) {
	case apiclient.KindNotFound:
		return fmt.Errorf("%w: %v", ErrOrderNotFound, err)
	case apiclient.KindUnauthorized:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return err
}
