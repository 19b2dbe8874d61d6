package adapters

import (
	"context"
	"testing"
	"time"

	"storefront-gateway/internal/core/cache"
	"storefront-gateway/internal/features/cart/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*RedisStateRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return NewRedisStateRepository(c, time.Hour), mr
}

func TestRedisStateRepository_RoundTrip(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	state := &domain.State{
		Cart: domain.Cart{
			Items: []domain.CartItem{{ID: "1", ProductID: "p1", Quantity: 2, PriceAtAddition: decimal.RequireFromString("10.25")}},
			Totals: domain.Totals{
				Subtotal: decimal.RequireFromString("20.5"),
				Total:    decimal.RequireFromString("20.5"),
			},
		},
		Error:   "Coupon expired",
		ErrorAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(ctx, "sess-1", state))
	assert.True(t, mr.Exists("cart:sess-1"))
	assert.Equal(t, time.Hour, mr.TTL("cart:sess-1"))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Coupon expired", got.Error)
	assert.True(t, state.ErrorAt.Equal(got.ErrorAt))
	assert.True(t, state.Cart.Total.Equal(got.Cart.Total))
	assert.Equal(t, 2, got.Cart.ItemCount())
}

func TestRedisStateRepository_Missing(t *testing.T) {
	repo, _ := newRepo(t)

	got, err := repo.Get(context.Background(), "unknown")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStateRepository_Corrupt(t *testing.T) {
	repo, mr := newRepo(t)
	require.NoError(t, mr.Set("cart:bad", "{not json"))

	_, err := repo.Get(context.Background(), "bad")
	assert.ErrorContains(t, err, "failed to unmarshal cart state")
}

func TestRedisStateRepository_CacheDown(t *testing.T) {
	repo, mr := newRepo(t)
	mr.Close()

	_, err := repo.Get(context.Background(), "sess-1")
	assert.ErrorContains(t, err, "failed to get cart state from cache")
}
