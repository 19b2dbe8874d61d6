package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/cache"
	"storefront-gateway/internal/core/httpclient"
	cartadapters "storefront-gateway/internal/features/cart/adapters"
	cartservice "storefront-gateway/internal/features/cart/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartSource(t *testing.T, handler http.HandlerFunc) *CartSessionSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	mr := miniredis.RunT(t)
	c, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	client := apiclient.New(server.URL, "store_1", httpclient.NewClient(time.Second))
	sessions := cartservice.NewSessions(
		cartadapters.NewStorefrontCartAdapter(client),
		cartadapters.NewRedisStateRepository(c, time.Hour),
		cartservice.Options{},
	)
	return NewCartSessionSource(sessions)
}

func TestCartSessionSource_Snapshot(t *testing.T) {
	source := newCartSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"items":[{"id":"1","product_id":"p1","quantity":2,"price_at_addition":"10"}],"subtotal":"20","total":"20"}}`))
	})

	cart, err := source.Snapshot(context.Background(), "sess-1")

	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount())
}

func TestCartSessionSource_SnapshotFailure(t *testing.T) {
	source := newCartSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := source.Snapshot(context.Background(), "sess-1")

	assert.ErrorIs(t, err, ErrCartUnavailable)
}

func TestCartSessionSource_Clear(t *testing.T) {
	var method string
	source := newCartSource(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		assert.Equal(t, "/storefront/store/store_1/cart", r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	})

	require.NoError(t, source.Clear(context.Background(), "sess-1"))
	assert.Equal(t, http.MethodDelete, method)
}
