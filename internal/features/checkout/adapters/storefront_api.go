package adapters

import (
	"context"
	"fmt"
	"net/http"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/features/checkout/domain"
	"storefront-gateway/internal/features/checkout/ports"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// StorefrontCheckoutAdapter implements ports.CheckoutAPI against the storefront commerce API.
type StorefrontCheckoutAdapter struct {
	client *apiclient.Client
}

// NewStorefrontCheckoutAdapter creates a new StorefrontCheckoutAdapter.
func NewStorefrontCheckoutAdapter(client *apiclient.Client) *StorefrontCheckoutAdapter {
	return &StorefrontCheckoutAdapter{client: client}
}

// CreateOrder places an order. The shipping address doubles as the billing address.
func (a *StorefrontCheckoutAdapter) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (*domain.OrderRef, error) {
	items := make([]orderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orderItem{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			SizeID:    it.SizeID,
			Quantity:  it.Quantity,
		})
	}
	body := createOrderRequest{
		ShippingAddress: toAPIAddress(req.ShippingAddress),
		BillingAddress:  toAPIAddress(req.ShippingAddress),
		PaymentMethod:   string(req.PaymentMethod),
		Items:           items,
		CouponCode:      req.CouponCode,
	}

	var opts []apiclient.RequestOption
	if req.IdempotencyKey != "" {
		opts = append(opts, apiclient.WithHeader("Idempotency-Key", req.IdempotencyKey))
	}

	res := a.client.Do(ctx, http.MethodPost, a.client.StorePath("orders"), body, opts...)
	if err := res.AsError(); err != nil {
		return nil, err
	}

	order := gjson.ParseBytes(res.Data)
	if o := order.Get("order"); o.IsObject() {
		order = o
	}
	id := order.Get("id").String()
	if id == "" {
		return nil, fmt.Errorf("create order: response carries no order id")
	}

	ref := &domain.OrderRef{
		ID:          id,
		OrderNumber: order.Get("order_number").String(),
		Currency:    order.Get("currency").String(),
	}
	if ref.OrderNumber == "" {
		ref.OrderNumber = id
	}
	if total := order.Get("total"); total.Exists() {
		d, err := decimal.NewFromString(total.String())
		if err != nil {
			return nil, fmt.Errorf("create order: invalid total %q: %w", total.String(), err)
		}
		ref.Total = d
	}
	return ref, nil
}

// InitializePayment opens a gateway payment session for orderID.
func (a *StorefrontCheckoutAdapter) InitializePayment(ctx context.Context, orderID string) (*domain.PaymentSession, error) {
	res := a.client.Do(ctx, http.MethodPost, a.client.StorePath("payment", "initialize"), paymentInitRequest{OrderID: orderID})
	if err := res.AsError(); err != nil {
		return nil, err
	}

	data := gjson.ParseBytes(res.Data)
	session := &domain.PaymentSession{
		GatewayOrderID: firstString(data, "gateway_order_id", "razorpay_order_id", "order_id"),
		Amount:         data.Get("amount").Int(),
		Currency:       data.Get("currency").String(),
		KeyID:          firstString(data, "key_id", "key"),
	}
	if session.GatewayOrderID == "" {
		return nil, fmt.Errorf("initialize payment: response carries no gateway order id")
	}
	return session, nil
}

// VerifyPayment asks the store to verify the widget's confirmation for orderID.
func (a *StorefrontCheckoutAdapter) VerifyPayment(ctx context.Context, orderID string, c ports.PaymentConfirmation) error {
	body := paymentCallbackRequest{
		OrderID:           orderID,
		RazorpayPaymentID: c.GatewayPaymentID,
		RazorpayOrderID:   c.GatewayOrderID,
		RazorpaySignature: c.Signature,
	}
	res := a.client.Do(ctx, http.MethodPost, a.client.StorePath("payment", "callback"), body)
	if err := res.AsError(); err != nil {
		return err
	}

	if verified := gjson.GetBytes(res.Data, "verified"); verified.Exists() && !verified.Bool() {
		return &apiclient.Error{Kind: apiclient.KindRejected, Status: res.StatusCode, Message: "payment not verified"}
	}
	return nil
}

func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func toAPIAddress(a domain.ShippingAddress) apiAddress {
	return apiAddress{
		FullName:     a.FullName,
		Email:        a.Email,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		Country:      a.Country,
	}
}

// internal structs for mapping

type apiAddress struct {
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

type orderItem struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	SizeID    string `json:"size_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	ShippingAddress apiAddress  `json:"shipping_address"`
	BillingAddress  apiAddress  `json:"billing_address"`
	PaymentMethod   string      `json:"payment_method"`
	Items           []orderItem `json:"items"`
	CouponCode      string      `json:"coupon_code,omitempty"`
}

type paymentInitRequest struct {
	OrderID string `json:"order_id"`
}

type paymentCallbackRequest struct {
	OrderID           string `json:"order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
