package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/httpclient"
	"storefront-gateway/internal/features/orders/adapters"
	"storefront-gateway/internal/features/orders/domain"
	"storefront-gateway/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T, store http.HandlerFunc) *fiber.App {
	t.Helper()
	server := httptest.NewServer(store)
	t.Cleanup(server.Close)

	client := apiclient.New(server.URL, "store_1", httpclient.NewClient(time.Second))
	h := NewOrderHandler(service.NewOrderService(adapters.NewStorefrontOrderAdapter(client)))

	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Header: "X-Ray-ID"}))
	h.Register(app)
	return app
}

func TestOrderHandler_GetOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"data":{"id":"1","order_number":"SF-1","status":"confirmed","total":"500"}}`))
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders/1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var order domain.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
		assert.Equal(t, "SF-1", order.OrderNumber)
		assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders/9", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Order not found", body.Message)
		assert.NotEmpty(t, body.RayID)
		assert.NotEqual(t, "unknown", body.RayID)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders/9", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ServerError", func(t *testing.T) {
		app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders/9", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestOrderHandler_ListOrders(t *testing.T) {
	app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storefront/store/store_1/orders", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[{"id":"1","status":"pending"},{"id":"2","status":"delivered"}]}`))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []domain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	assert.Len(t, orders, 2)
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	t.Run("Delivered", func(t *testing.T) {
		app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method, "cancel must not reach the store")
			w.Write([]byte(`{"success":true,"data":{"id":"1","status":"delivered"}}`))
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/orders/1/cancel", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Success", func(t *testing.T) {
		app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				w.Write([]byte(`{"success":true,"data":{"id":"1","status":"cancelled"}}`))
				return
			}
			w.Write([]byte(`{"success":true,"data":{"id":"1","status":"pending"}}`))
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/orders/1/cancel", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var order domain.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
		assert.Equal(t, domain.OrderStatusCancelled, order.Status)
	})
}
