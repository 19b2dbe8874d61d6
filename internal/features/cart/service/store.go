package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/features/cart/domain"
	"storefront-gateway/internal/features/cart/ports"

	"go.uber.org/zap"
)

// DefaultErrorTTL is how long an error banner stays visible.
const DefaultErrorTTL = 5 * time.Second

// Options tunes a CartStore.
type Options struct {
	// ErrorTTL is how long Error stays visible. Defaults to DefaultErrorTTL.
	ErrorTTL time.Duration
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to the global logger.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.ErrorTTL <= 0 {
		o.ErrorTTL = DefaultErrorTTL
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = logger.Get()
	}
	return o
}

// CartStore mirrors one session's server-side cart.
//
// Operations never return errors: they report success as a bool and record a
// message in the shared Error field. Server responses replace local state
// wholesale. The mutex only guards memory; calls are not sequenced, so when two
// mutations overlap the response that lands last wins.
type CartStore struct {
	api  ports.CartAPI
	opts Options

	mu    sync.Mutex
	state domain.State
}

// NewCartStore creates a store seeded with state (nil means a fresh session).
func NewCartStore(api ports.CartAPI, state *domain.State, opts Options) *CartStore {
	if state == nil {
		state = domain.NewState()
	}
	s := *state
	if s.Cart.Items == nil {
		s.Cart.Items = []domain.CartItem{}
	}
	return &CartStore{
		api:   api,
		opts:  opts.withDefaults(),
		state: s,
	}
}

// State returns a copy of the current state.
func (s *CartStore) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Cart.Items = make([]domain.CartItem, len(s.state.Cart.Items))
	copy(st.Cart.Items, s.state.Cart.Items)
	return st
}

// Cart returns a copy of the mirrored cart.
func (s *CartStore) Cart() domain.Cart {
	return s.State().Cart
}

// Error returns the current error banner, or "" once it has expired.
func (s *CartStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveError(s.opts.Now(), s.opts.ErrorTTL)
}

// FetchCart loads the cart from the server. On failure the previous items,
// coupon and totals are left untouched.
func (s *CartStore) FetchCart(ctx context.Context) bool {
	s.begin()
	cart, err := s.api.GetCart(ctx)
	return s.finish("Failed to load cart", cart, err)
}

// AddToCart adds quantity units of a product. The server snapshots the unit price.
func (s *CartStore) AddToCart(ctx context.Context, productID, variantID, sizeID string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	s.begin()
	cart, err := s.api.AddItem(ctx, domain.ItemRef{ProductID: productID, VariantID: variantID, SizeID: sizeID}, quantity)
	return s.finish("Failed to add item to cart", cart, err)
}

// UpdateCartItem sets the quantity of a line. A quantity below one is ignored
// without contacting the server.
func (s *CartStore) UpdateCartItem(ctx context.Context, productID string, quantity int, variantID, sizeID string) bool {
	if quantity < 1 {
		return false
	}
	s.begin()
	cart, err := s.api.UpdateItem(ctx, domain.ItemRef{ProductID: productID, VariantID: variantID, SizeID: sizeID}, quantity)
	return s.finish("Failed to update cart", cart, err)
}

// RemoveFromCart deletes the line matching productID and variantID.
func (s *CartStore) RemoveFromCart(ctx context.Context, productID, variantID string) bool {
	s.begin()
	cart, err := s.api.RemoveItem(ctx, productID, variantID)
	return s.finish("Failed to remove item from cart", cart, err)
}

// ClearCart empties the cart and resets coupon and totals.
// Callers must have obtained the shopper's confirmation first.
func (s *CartStore) ClearCart(ctx context.Context) bool {
	s.begin()
	err := s.api.ClearCart(ctx)
	var cart *domain.Cart
	if err == nil {
		empty := domain.EmptyCart()
		cart = &empty
	}
	return s.finish("Failed to clear cart", cart, err)
}

// ApplyCoupon applies code. A rejected code leaves the cart unchanged.
// The return value tells the caller whether to clear its input field.
func (s *CartStore) ApplyCoupon(ctx context.Context, code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		s.mu.Lock()
		s.setError("Please enter a coupon code")
		s.mu.Unlock()
		return false
	}
	s.begin()
	cart, err := s.api.ApplyCoupon(ctx, code)
	return s.finish("Failed to apply coupon", cart, err)
}

// RemoveCoupon removes the applied coupon; the server recomputes totals.
func (s *CartStore) RemoveCoupon(ctx context.Context) bool {
	s.begin()
	cart, err := s.api.RemoveCoupon(ctx)
	return s.finish("Failed to remove coupon", cart, err)
}

func (s *CartStore) begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()
}

func (s *CartStore) finish(fallback string, cart *domain.Cart, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = false

	if err == nil && cart == nil {
		err = errors.New("empty cart response")
	}
	if err != nil {
		msg := userMessage(fallback, err)
		s.setError(msg)
		s.opts.Logger.Warn("Cart operation failed",
			zap.String("operation", fallback),
			zap.String("message", msg),
			zap.Error(err),
		)
		return false
	}

	if !cart.Consistent() {
		s.opts.Logger.Warn("Server cart totals do not add up; keeping server values",
			zap.String("subtotal", cart.Subtotal.String()),
			zap.String("discount", cart.Discount.String()),
			zap.String("shipping_fee", cart.ShippingFee.String()),
			zap.String("total", cart.Total.String()),
		)
	}

	next := *cart
	if next.Items == nil {
		next.Items = []domain.CartItem{}
	}
	s.state.Cart = next
	s.state.Error = ""
	s.state.ErrorAt = time.Time{}
	s.state.UpdatedAt = s.opts.Now()
	return true
}

func (s *CartStore) setError(msg string) {
	s.state.Error = msg
	s.state.ErrorAt = s.opts.Now()
}

// userMessage prefers the API's own wording for refusals and connectivity
// problems, and falls back to a generic message for server faults.
func userMessage(fallback string, err error) string {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Kind != apiclient.KindServer && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
