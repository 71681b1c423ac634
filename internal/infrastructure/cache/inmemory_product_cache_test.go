package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
)

func newCachedProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Gold Ring", "18k band", decimal.NewFromInt(250), 10)
	require.NoError(t, err)
	return product
}

func TestInMemoryProductCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Minute)
		product := newCachedProduct(t)

		require.NoError(t, c.Set(ctx, product))

		got, err := c.Get(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, product.ID, got.ID)
		assert.Equal(t, "Gold Ring", got.Name)
		assert.True(t, got.Price.Equal(decimal.NewFromInt(250)))
	})

	t.Run("miss returns nil nil", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Minute)
		got, err := c.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("cached copy is isolated from later mutation", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Minute)
		product := newCachedProduct(t)
		require.NoError(t, c.Set(ctx, product))

		product.Name = "mutated"

		got, err := c.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Gold Ring", got.Name)
	})

	t.Run("expired entry behaves as miss", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Nanosecond)
		product := newCachedProduct(t)
		require.NoError(t, c.Set(ctx, product))

		time.Sleep(5 * time.Millisecond)

		got, err := c.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate evicts", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Minute)
		product := newCachedProduct(t)
		require.NoError(t, c.Set(ctx, product))

		require.NoError(t, c.Invalidate(ctx, product.ID))

		got, err := c.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidating absent key succeeds", func(t *testing.T) {
		c := NewInMemoryProductCache(time.Minute)
		assert.NoError(t, c.Invalidate(ctx, uuid.New()))
	})
}
