package ports

import (
	"context"

	cartdomain "storefront-gateway/internal/features/cart/domain"
	"storefront-gateway/internal/features/checkout/domain"
)

// CreateOrderRequest is what the commerce API needs to place an order.
type CreateOrderRequest struct {
	ShippingAddress domain.ShippingAddress
	PaymentMethod   domain.PaymentMethod
	Items           []cartdomain.CartItem
	CouponCode      string
	// IdempotencyKey lets the API recognize a resubmitted order.
	IdempotencyKey string
}

// PaymentConfirmation is the opaque set of fields the widget hands back on success.
type PaymentConfirmation struct {
	GatewayPaymentID string `json:"gateway_payment_id"`
	GatewayOrderID   string `json:"gateway_order_id"`
	Signature        string `json:"signature"`
}

// PaymentFailure is the structured error emitted by the widget's payment.failed event.
type PaymentFailure struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Source      string `json:"source,omitempty"`
	Step        string `json:"step,omitempty"`
}

// CheckoutAPI is the commerce API surface used by checkout.
type CheckoutAPI interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.OrderRef, error)
	InitializePayment(ctx context.Context, orderID string) (*domain.PaymentSession, error)
	VerifyPayment(ctx context.Context, orderID string, confirmation PaymentConfirmation) error
}

// PaymentWidget loads the hosted payment widget.
type PaymentWidget interface {
	// Load makes sure the widget script is reachable. Callers only invoke it once per session.
	Load(ctx context.Context) error
	// ScriptURL is the script the browser must include.
	ScriptURL() string
}

// CartSource is the checkout's view of the shopper's cart.
type CartSource interface {
	// Snapshot returns the current cart, refreshed from the store.
	Snapshot(ctx context.Context, sessionID string) (*cartdomain.Cart, error)
	// Clear empties the cart after a completed order.
	Clear(ctx context.Context, sessionID string) error
}

// CheckoutRepository persists checkout state per session.
type CheckoutRepository interface {
	// Get returns nil, nil when the session has no checkout yet.
	Get(ctx context.Context, sessionID string) (*domain.State, error)
	Save(ctx context.Context, sessionID string, state *domain.State) error
	Delete(ctx context.Context, sessionID string) error
}
