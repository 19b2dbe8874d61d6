package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	// OrderStatusPending indicates the order has been placed but not yet confirmed by the store.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed indicates the store has accepted the order.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusProcessing indicates the order is being packed.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusShipped indicates the order has been handed to the carrier.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered indicates the order reached the shopper.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled indicates the order was cancelled before delivery.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusOrder ranks the forward lifecycle; cancelled sits outside it.
var statusOrder = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusConfirmed:  1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

// ParseOrderStatus normalizes a status reported by the store. Unknown values map to pending.
func ParseOrderStatus(s string) OrderStatus {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if status == "canceled" {
		return OrderStatusCancelled
	}
	if _, ok := statusOrder[status]; ok || status == OrderStatusCancelled {
		return status
	}
	return OrderStatusPending
}

// CanTransition reports whether the store may move an order from s to next.
// Orders move forward one step at a time, except that confirmation may be skipped,
// and may be cancelled at any point before delivery.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if next == OrderStatusCancelled {
		return s.IsCancellable()
	}
	from, ok := statusOrder[s]
	if !ok {
		return false
	}
	to, ok := statusOrder[next]
	if !ok {
		return false
	}
	return to == from+1 || (s == OrderStatusPending && next == OrderStatusProcessing)
}

// IsCancellable reports whether an order in status s can still be cancelled.
func (s OrderStatus) IsCancellable() bool {
	rank, ok := statusOrder[s]
	return ok && rank < statusOrder[OrderStatusDelivered]
}

// PaymentStatus represents the payment state of an order.
type PaymentStatus string

const (
	// PaymentStatusPending indicates no payment has been captured yet (including COD orders).
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusPaid indicates the payment was captured and verified.
	PaymentStatusPaid PaymentStatus = "paid"
	// PaymentStatusFailed indicates the payment attempt failed.
	PaymentStatusFailed PaymentStatus = "failed"
)

// ParsePaymentStatus normalizes a payment status. Unknown values map to pending.
func ParsePaymentStatus(s string) PaymentStatus {
	switch p := PaymentStatus(strings.ToLower(strings.TrimSpace(s))); p {
	case PaymentStatusPaid, PaymentStatusFailed:
		return p
	}
	return PaymentStatusPending
}

// Address is the shipping address captured on the order.
type Address struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
}

// Order represents a placed order as seen by the shopper.
type Order struct {
	// ID is the store's identifier for the order.
	ID string `json:"id"`
	// OrderNumber is the human-facing reference.
	OrderNumber string `json:"order_number"`
	// Status is the fulfilment state.
	Status OrderStatus `json:"status"`
	// PaymentStatus is the payment state.
	PaymentStatus PaymentStatus `json:"payment_status"`
	// PaymentMethod is cod or online.
	PaymentMethod string `json:"payment_method"`
	// Items is the snapshot of the cart at submission.
	Items []OrderItem `json:"items"`
	// ShippingAddress is where the order ships.
	ShippingAddress Address `json:"shipping_address"`
	// Subtotal is the sum of line totals.
	Subtotal decimal.Decimal `json:"subtotal"`
	// DiscountAmount is the coupon discount.
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	// ShippingFee is the delivery charge.
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	// Total is what the shopper pays.
	Total decimal.Decimal `json:"total"`
	// CreatedAt is the timestamp when the order was placed.
	CreatedAt time.Time `json:"created_at"`
}

// OrderItem represents an individual line within an order.
type OrderItem struct {
	// ProductID identifies the product.
	ProductID string `json:"product_id"`
	// Name is the descriptive name of the product.
	Name string `json:"name"`
	// Image is the URL to an image of the product.
	Image string `json:"image,omitempty"`
	// VariantName is the chosen variant, if any.
	VariantName string `json:"variant_name,omitempty"`
	// SizeName is the chosen size, if any.
	SizeName string `json:"size_name,omitempty"`
	// Quantity is the number of units purchased.
	Quantity int `json:"quantity"`
	// Price is the unit price at purchase.
	Price decimal.Decimal `json:"price"`
}
