package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/session"
	"storefront-gateway/internal/features/cart/domain"
	"storefront-gateway/internal/features/cart/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sessionID = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

// MockCartAPI is a mock implementation of ports.CartAPI
type MockCartAPI struct {
	mock.Mock
}

func cartOrNil(args mock.Arguments) (*domain.Cart, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartAPI) GetCart(ctx context.Context) (*domain.Cart, error) {
	return cartOrNil(m.Called(ctx))
}

func (m *MockCartAPI) AddItem(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Cart, error) {
	return cartOrNil(m.Called(ctx, ref, quantity))
}

func (m *MockCartAPI) UpdateItem(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Cart, error) {
	return cartOrNil(m.Called(ctx, ref, quantity))
}

func (m *MockCartAPI) RemoveItem(ctx context.Context, productID, variantID string) (*domain.Cart, error) {
	return cartOrNil(m.Called(ctx, productID, variantID))
}

func (m *MockCartAPI) ClearCart(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCartAPI) ApplyCoupon(ctx context.Context, code string) (*domain.Cart, error) {
	return cartOrNil(m.Called(ctx, code))
}

func (m *MockCartAPI) RemoveCoupon(ctx context.Context) (*domain.Cart, error) {
	return cartOrNil(m.Called(ctx))
}

// memoryRepo keeps cart state in a map.
type memoryRepo struct {
	mu      sync.Mutex
	states  map[string]domain.State
	saveErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{states: map[string]domain.State{}}
}

func (r *memoryRepo) Get(_ context.Context, id string) (*domain.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *memoryRepo) Save(_ context.Context, id string, st *domain.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.states[id] = *st
	return nil
}

func setupApp(api *MockCartAPI, repo *memoryRepo) *fiber.App {
	app := fiber.New()
	app.Use(session.New(session.Config{TTL: time.Hour}))
	NewCartHandler(service.NewSessions(api, repo, service.Options{})).Register(app)
	return app
}

func cartWith(qty int, price string) *domain.Cart {
	p := decimal.RequireFromString(price)
	total := p.Mul(decimal.NewFromInt(int64(qty)))
	return &domain.Cart{
		Items:  []domain.CartItem{{ID: "1", ProductID: "p1", ProductName: "Kurta", Quantity: qty, PriceAtAddition: p}},
		Totals: domain.Totals{Subtotal: total, Total: total},
	}
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, CartView) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(session.HeaderName, sessionID)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var v CartView
	_ = json.NewDecoder(resp.Body).Decode(&v)
	return resp, v
}

func TestCartHandler_GetCart(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		api := new(MockCartAPI)
		repo := newMemoryRepo()
		app := setupApp(api, repo)

		api.On("GetCart", mock.Anything).Return(cartWith(2, "100"), nil).Once()

		resp, v := do(t, app, http.MethodGet, "/cart", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 2, v.ItemCount)
		assert.Empty(t, v.Error)
		assert.Contains(t, repo.states, sessionID)
		api.AssertExpectations(t)
	})

	t.Run("FailureShowsBanner", func(t *testing.T) {
		api := new(MockCartAPI)
		repo := newMemoryRepo()
		repo.states[sessionID] = domain.State{Cart: *cartWith(1, "100")}
		app := setupApp(api, repo)

		api.On("GetCart", mock.Anything).Return(nil, &apiclient.Error{Kind: apiclient.KindServer, Status: 500}).Once()

		resp, v := do(t, app, http.MethodGet, "/cart", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "Failed to load cart", v.Error)
		assert.Equal(t, 1, v.ItemCount)
	})

	t.Run("ForwardsBearerToken", func(t *testing.T) {
		api := new(MockCartAPI)
		app := setupApp(api, newMemoryRepo())

		api.On("GetCart", mock.MatchedBy(func(ctx context.Context) bool {
			return apiclient.AccessTokenFrom(ctx) == "tok"
		})).Return(cartWith(1, "1"), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		api.AssertExpectations(t)
	})
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("DefaultsQuantityToOne", func(t *testing.T) {
		api := new(MockCartAPI)
		app := setupApp(api, newMemoryRepo())

		api.On("AddItem", mock.Anything, domain.ItemRef{ProductID: "p1", SizeID: "m"}, 1).Return(cartWith(1, "100"), nil).Once()

		resp, _ := do(t, app, http.MethodPost, "/cart/items", AddItemRequest{ProductID: "p1", SizeID: "m"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		api.AssertExpectations(t)
	})

	t.Run("MissingProduct", func(t *testing.T) {
		api := new(MockCartAPI)
		app := setupApp(api, newMemoryRepo())

		resp, _ := do(t, app, http.MethodPost, "/cart/items", AddItemRequest{Quantity: 1})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		api.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NegativeQuantity", func(t *testing.T) {
		api := new(MockCartAPI)
		app := setupApp(api, newMemoryRepo())

		resp, _ := do(t, app, http.MethodPost, "/cart/items", AddItemRequest{ProductID: "p1", Quantity: -2})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		api.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartHandler_UpdateItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		api := new(MockCartAPI)
		app := setupApp(api, newMemoryRepo())

		api.On("UpdateItem", mock.Anything, domain.ItemRef{ProductID: "p1", VariantID: "v1"}, 3).Return(cartWith(3, "100"), nil).Once()

		resp, v := do(t, app, http.MethodPut, "/cart/items/p1", UpdateItemRequest{VariantID: "v1", Quantity: 3})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 3, v.ItemCount)
		api.AssertExpectations(t)
	})

	t.Run("ZeroQuantityIsNoOp", func(t *testing.T) {
		api := new(MockCartAPI)
		repo := newMemoryRepo()
		repo.states[sessionID] = domain.State{Cart: *cartWith(2, "100")}
		app := setupApp(api, repo)

		resp, v := do(t, app, http.MethodPut, "/cart/items/p1", UpdateItemRequest{Quantity: 0})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 2, v.ItemCount)
		assert.Empty(t, v.Error)
		api.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	api := new(MockCartAPI)
	app := setupApp(api, newMemoryRepo())

	api.On("RemoveItem", mock.Anything, "p1", "v1").Return(&domain.Cart{Items: []domain.CartItem{}}, nil).Once()

	resp, v := do(t, app, http.MethodDelete, "/cart/items/p1?variant_id=v1", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, v.ItemCount)
	api.AssertExpectations(t)
}

func TestCartHandler_ClearCart(t *testing.T) {
	t.Run("RequiresConfirmation", func(t *testing.T) {
		api := new(MockCartAPI)
		app := setupApp(api, newMemoryRepo())

		resp, _ := do(t, app, http.MethodDelete, "/cart", nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		api.AssertNotCalled(t, "ClearCart", mock.Anything)
	})

	t.Run("Confirmed", func(t *testing.T) {
		api := new(MockCartAPI)
		repo := newMemoryRepo()
		repo.states[sessionID] = domain.State{Cart: *cartWith(2, "100")}
		app := setupApp(api, repo)

		api.On("ClearCart", mock.Anything).Return(nil).Once()

		resp, v := do(t, app, http.MethodDelete, "/cart?confirm=true", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 0, v.ItemCount)
		assert.True(t, v.Cart.Total.IsZero())
		assert.Nil(t, v.Cart.Coupon)
		api.AssertExpectations(t)
	})
}

func TestCartHandler_Coupon(t *testing.T) {
	t.Run("Rejected", func(t *testing.T) {
		api := new(MockCartAPI)
		repo := newMemoryRepo()
		repo.states[sessionID] = domain.State{Cart: *cartWith(1, "100")}
		app := setupApp(api, repo)

		api.On("ApplyCoupon", mock.Anything, "NOPE").
			Return(nil, &apiclient.Error{Kind: apiclient.KindRejected, Status: 400, Message: "Coupon has expired"}).Once()

		resp, v := do(t, app, http.MethodPost, "/cart/coupon", CouponRequest{Code: " NOPE "})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "Coupon has expired", v.Error)
		assert.True(t, decimal.NewFromInt(100).Equal(v.Cart.Total))
	})

	t.Run("Remove", func(t *testing.T) {
		api := new(MockCartAPI)
		app := setupApp(api, newMemoryRepo())

		api.On("RemoveCoupon", mock.Anything).Return(cartWith(1, "100"), nil).Once()

		resp, _ := do(t, app, http.MethodDelete, "/cart/coupon", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		api.AssertExpectations(t)
	})
}

func TestCartHandler_PersistFailure(t *testing.T) {
	api := new(MockCartAPI)
	repo := newMemoryRepo()
	repo.saveErr = errors.New("redis down")
	app := setupApp(api, repo)

	api.On("GetCart", mock.Anything).Return(cartWith(1, "1"), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Message)
}
