package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when a line quantity is below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CouponType determines how a coupon's discount value is interpreted.
type CouponType string

const (
	// CouponTypePercentage discounts a percentage of the subtotal.
	CouponTypePercentage CouponType = "percentage"
	// CouponTypeFixed discounts a fixed currency amount.
	CouponTypeFixed CouponType = "fixed"
)

// Coupon is the single discount code applied to a cart.
type Coupon struct {
	Code          string          `json:"code"`
	Type          CouponType      `json:"type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// ItemRef addresses a line by product plus optional variant and size.
type ItemRef struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	SizeID    string `json:"size_id,omitempty"`
}

// CartItem is a line item. PriceAtAddition is the unit price snapshotted by the
// server when the product was first added and never changes afterwards.
type CartItem struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductImage    string          `json:"product_image,omitempty"`
	VariantID       string          `json:"variant_id,omitempty"`
	VariantName     string          `json:"variant_name,omitempty"`
	SizeID          string          `json:"size_id,omitempty"`
	SizeName        string          `json:"size_name,omitempty"`
	Quantity        int             `json:"quantity"`
	PriceAtAddition decimal.Decimal `json:"price_at_addition"`
}

// LineTotal returns PriceAtAddition × Quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.PriceAtAddition.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Totals are computed by the server. The gateway never derives them locally.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Consistent reports whether Total = Subtotal - Discount + ShippingFee and Total >= 0.
func (t Totals) Consistent() bool {
	expected := t.Subtotal.Sub(t.Discount).Add(t.ShippingFee)
	return t.Total.Equal(expected) && !t.Total.IsNegative()
}

// Cart is the server-authoritative cart snapshot.
type Cart struct {
	Items  []CartItem `json:"items"`
	Coupon *Coupon    `json:"coupon,omitempty"`
	Totals
}

// EmptyCart returns a cart with no items, no coupon and zero totals.
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}}
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the number of units across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// State is the session's mirror of the server cart plus UI status.
type State struct {
	Cart      Cart      `json:"cart"`
	Loading   bool      `json:"loading"`
	Error     string    `json:"error,omitempty"`
	ErrorAt   time.Time `json:"error_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewState returns the state of a session that has not fetched its cart yet.
func NewState() *State {
	return &State{Cart: EmptyCart()}
}

// ActiveError returns Error while it is younger than ttl, and "" afterwards.
func (s State) ActiveError(now time.Time, ttl time.Duration) string {
	if s.Error == "" {
		return ""
	}
	if ttl > 0 && now.Sub(s.ErrorAt) >= ttl {
		return ""
	}
	return s.Error
}
