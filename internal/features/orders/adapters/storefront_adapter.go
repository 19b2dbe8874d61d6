package adapters

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/features/orders/domain"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// StorefrontOrderAdapter implements the OrderProvider interface using the storefront commerce API.
type StorefrontOrderAdapter struct {
	// client is the commerce API client.
	client *apiclient.Client
}

// NewStorefrontOrderAdapter creates a new instance of StorefrontOrderAdapter.
func NewStorefrontOrderAdapter(client *apiclient.Client) *StorefrontOrderAdapter {
	return &StorefrontOrderAdapter{
		client: client,
	}
}

// GetOrder fetches an order and maps it to the domain entity.
func (a *StorefrontOrderAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	res := a.client.Do(ctx, http.MethodGet, a.client.StorePath("orders", orderID), nil)
	if err := res.AsError(); err != nil {
		return nil, err
	}
	return decodeOrder(res.Data)
}

// ListOrders fetches the shopper's order history.
func (a *StorefrontOrderAdapter) ListOrders(ctx context.Context) ([]domain.Order, error) {
	res := a.client.Do(ctx, http.MethodGet, a.client.StorePath("orders"), nil)
	if err := res.AsError(); err != nil {
		return nil, err
	}

	list := gjson.ParseBytes(res.Data)
	if o := list.Get("orders"); o.IsArray() {
		list = o
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("list orders: unexpected payload")
	}

	orders := make([]domain.Order, 0, len(list.Array()))
	for _, item := range list.Array() {
		order, err := mapOrder(item)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// CancelOrder asks the store to cancel orderID.
func (a *StorefrontOrderAdapter) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	res := a.client.Do(ctx, http.MethodPost, a.client.StorePath("orders", orderID, "cancel"), nil)
	if err := res.AsError(); err != nil {
		return nil, err
	}
	if len(res.Data) == 0 || string(res.Data) == "null" {
		return a.GetOrder(ctx, orderID)
	}
	return decodeOrder(res.Data)
}

func decodeOrder(data []byte) (*domain.Order, error) {
	order := gjson.ParseBytes(data)
	if o := order.Get("order"); o.IsObject() {
		order = o
	}
	return mapOrder(order)
}

// mapOrder converts the API representation into the domain entity.
func mapOrder(r gjson.Result) (*domain.Order, error) {
	if !r.IsObject() {
		return nil, fmt.Errorf("order payload is not an object")
	}

	order := &domain.Order{
		ID:            r.Get("id").String(),
		OrderNumber:   r.Get("order_number").String(),
		Status:        domain.ParseOrderStatus(r.Get("status").String()),
		PaymentStatus: domain.ParsePaymentStatus(r.Get("payment_status").String()),
		PaymentMethod: r.Get("payment_method").String(),
		ShippingAddress: domain.Address{
			FullName:     r.Get("shipping_address.full_name").String(),
			Email:        r.Get("shipping_address.email").String(),
			Phone:        r.Get("shipping_address.phone").String(),
			AddressLine1: r.Get("shipping_address.address_line1").String(),
			AddressLine2: r.Get("shipping_address.address_line2").String(),
			City:         r.Get("shipping_address.city").String(),
			State:        r.Get("shipping_address.state").String(),
			Pincode:      r.Get("shipping_address.pincode").String(),
			Country:      r.Get("shipping_address.country").String(),
		},
	}
	if order.ID == "" {
		return nil, fmt.Errorf("order payload carries no id")
	}

	total, err := money(r.Get("total"))
	if err != nil {
		return nil, fmt.Errorf("order %s: invalid total: %w", order.ID, err)
	}
	order.Total = total
	order.Subtotal = amount(order.ID, "subtotal", r.Get("subtotal"))
	order.DiscountAmount = amount(order.ID, "discount_amount", r.Get("discount_amount"))
	order.ShippingFee = amount(order.ID, "shipping_fee", r.Get("shipping_fee"))

	if created := r.Get("created_at").String(); created != "" {
		t, err := parseTime(created)
		if err != nil {
			logger.Get().Warn("Failed to parse order date",
				zap.String("order_id", order.ID),
				zap.String("created_at", created),
				zap.Error(err),
			)
		} else {
			order.CreatedAt = t
		}
	}

	items := r.Get("items").Array()
	order.Items = make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		item := domain.OrderItem{
			ProductID:   firstOf(it, "product_id", "product.id"),
			Name:        firstOf(it, "product_name", "product.name", "name"),
			Image:       firstOf(it, "product_image", "product.image", "product.images.0"),
			VariantName: firstOf(it, "variant_name", "variant.name"),
			SizeName:    firstOf(it, "size_name", "size.name"),
			Quantity:    int(it.Get("quantity").Int()),
		}
		price := it.Get("price")
		if !price.Exists() || price.String() == "" {
			price = it.Get("price_at_addition")
		}
		item.Price = amount(order.ID, "items.price", price)
		order.Items = append(order.Items, item)
	}

	return order, nil
}

// parseTime accepts RFC 3339 and the zone-less form some store versions emit.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// money reads a decimal amount. A missing amount is zero.
func money(r gjson.Result) (decimal.Decimal, error) {
	if !r.Exists() || r.String() == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(r.String())
}

// amount reads a secondary amount, logging and zeroing one the store sent garbled.
func amount(orderID, field string, r gjson.Result) decimal.Decimal {
	d, err := money(r)
	if err != nil {
		logger.Get().Warn("Failed to parse order amount",
			zap.String("order_id", orderID),
			zap.String("field", field),
			zap.String("value", r.String()),
			zap.Error(err),
		)
		return decimal.Zero
	}
	return d
}

func firstOf(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
