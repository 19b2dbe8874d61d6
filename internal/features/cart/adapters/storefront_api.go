package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/features/cart/domain"

	"github.com/shopspring/decimal"
)

// StorefrontCartAdapter implements ports.CartAPI against the storefront commerce API.
type StorefrontCartAdapter struct {
	client *apiclient.Client
}

// NewStorefrontCartAdapter creates a new StorefrontCartAdapter.
func NewStorefrontCartAdapter(client *apiclient.Client) *StorefrontCartAdapter {
	return &StorefrontCartAdapter{client: client}
}

// GetCart fetches the shopper's cart.
func (a *StorefrontCartAdapter) GetCart(ctx context.Context) (*domain.Cart, error) {
	res := a.client.Do(ctx, http.MethodGet, a.client.StorePath("cart"), nil)
	if err := res.AsError(); err != nil {
		return nil, err
	}
	if isEmpty(res.Data) {
		empty := domain.EmptyCart()
		return &empty, nil
	}
	return a.decodeCart(ctx, res)
}

// AddItem adds quantity units of the referenced product.
func (a *StorefrontCartAdapter) AddItem(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Cart, error) {
	body := itemRequest{ProductID: ref.ProductID, VariantID: ref.VariantID, SizeID: ref.SizeID, Quantity: quantity}
	res := a.client.Do(ctx, http.MethodPost, a.client.StorePath("cart", "items"), body)
	return a.decodeCart(ctx, res)
}

// UpdateItem sets the quantity of the referenced line.
func (a *StorefrontCartAdapter) UpdateItem(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Cart, error) {
	body := itemRequest{ProductID: ref.ProductID, VariantID: ref.VariantID, SizeID: ref.SizeID, Quantity: quantity}
	res := a.client.Do(ctx, http.MethodPut, a.client.StorePath("cart", "items"), body)
	return a.decodeCart(ctx, res)
}

// RemoveItem deletes the line for productID and variantID.
func (a *StorefrontCartAdapter) RemoveItem(ctx context.Context, productID, variantID string) (*domain.Cart, error) {
	res := a.client.Do(ctx, http.MethodDelete, a.client.StorePath("cart", "items", productID), nil,
		apiclient.WithQuery(map[string]string{"variant_id": variantID}),
	)
	return a.decodeCart(ctx, res)
}

// ClearCart deletes every line, the coupon included.
func (a *StorefrontCartAdapter) ClearCart(ctx context.Context) error {
	res := a.client.Do(ctx, http.MethodDelete, a.client.StorePath("cart"), nil)
	return res.AsError()
}

// ApplyCoupon applies code to the cart.
func (a *StorefrontCartAdapter) ApplyCoupon(ctx context.Context, code string) (*domain.Cart, error) {
	res := a.client.Do(ctx, http.MethodPost, a.client.StorePath("cart", "coupon"), couponRequest{Code: code})
	return a.decodeCart(ctx, res)
}

// RemoveCoupon removes the applied coupon.
func (a *StorefrontCartAdapter) RemoveCoupon(ctx context.Context) (*domain.Cart, error) {
	res := a.client.Do(ctx, http.MethodDelete, a.client.StorePath("cart", "coupon"), nil)
	return a.decodeCart(ctx, res)
}

// decodeCart maps a cart payload to the domain. Some mutations answer without
// a body; the cart is then re-read so local state always comes from the server.
func (a *StorefrontCartAdapter) decodeCart(ctx context.Context, res *apiclient.Result) (*domain.Cart, error) {
	if err := res.AsError(); err != nil {
		return nil, err
	}

	if isEmpty(res.Data) {
		return a.GetCart(ctx)
	}

	var payload apiCart
	if err := res.Decode(&payload); err != nil {
		return nil, err
	}

	// Some endpoints wrap the cart: {"cart": {...}}
	if payload.Cart != nil {
		payload = *payload.Cart
	}

	return mapToDomain(payload), nil
}

func isEmpty(data json.RawMessage) bool {
	return len(bytes.TrimSpace(data)) == 0 || string(data) == "null"
}

// mapToDomain converts an API cart into the domain Cart.
func mapToDomain(c apiCart) *domain.Cart {
	items := make([]domain.CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		item := domain.CartItem{
			ID:              string(it.ID),
			ProductID:       it.Product.ID.or(it.ProductID),
			ProductName:     it.Product.Name,
			ProductImage:    it.Product.image(),
			Quantity:        it.Quantity,
			PriceAtAddition: it.PriceAtAddition,
		}
		if it.Variant != nil {
			item.VariantID = string(it.Variant.ID)
			item.VariantName = it.Variant.Name
		} else {
			item.VariantID = string(it.VariantID)
		}
		if it.Size != nil {
			item.SizeID = string(it.Size.ID)
			item.SizeName = it.Size.Name
		} else {
			item.SizeID = string(it.SizeID)
		}
		items = append(items, item)
	}

	var coupon *domain.Coupon
	if c.Coupon != nil && c.Coupon.Code != "" {
		coupon = &domain.Coupon{
			Code:          c.Coupon.Code,
			Type:          domain.CouponType(c.Coupon.Type),
			DiscountValue: c.Coupon.DiscountValue,
		}
	}

	return &domain.Cart{
		Items:  items,
		Coupon: coupon,
		Totals: domain.Totals{
			Subtotal:    c.Subtotal,
			Discount:    c.Discount,
			ShippingFee: c.ShippingFee,
			Total:       c.Total,
		},
	}
}

// internal structs for mapping

type itemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	SizeID    string `json:"size_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

type couponRequest struct {
	Code string `json:"code"`
}

// apiCart represents the cart payload returned by the commerce API.
type apiCart struct {
	Cart        *apiCart        `json:"cart"`
	Items       []apiCartItem   `json:"items"`
	Coupon      *apiCoupon      `json:"coupon"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
}

type apiCartItem struct {
	ID              flexID          `json:"id"`
	ProductID       flexID          `json:"product_id"`
	Product         apiRef          `json:"product"`
	VariantID       flexID          `json:"variant_id"`
	Variant         *apiRef         `json:"variant"`
	SizeID          flexID          `json:"size_id"`
	Size            *apiRef         `json:"size"`
	Quantity        int             `json:"quantity"`
	PriceAtAddition decimal.Decimal `json:"price_at_addition"`
}

type apiRef struct {
	ID     flexID   `json:"id"`
	Name   string   `json:"name"`
	Image  string   `json:"image"`
	Images []string `json:"images"`
}

func (r apiRef) image() string {
	if r.Image != "" {
		return r.Image
	}
	if len(r.Images) > 0 {
		return r.Images[0]
	}
	return ""
}

type apiCoupon struct {
	Code          string          `json:"code"`
	Type          string          `json:"type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// flexID accepts identifiers encoded either as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(b), err)
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) or(fallback flexID) string {
	if f != "" {
		return string(f)
	}
	return string(fallback)
}
