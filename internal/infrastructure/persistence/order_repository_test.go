package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/order"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared/valueobject"
)

func placeTestOrder(t *testing.T, userID uuid.UUID, createdAt time.Time) *order.Order {
	t.Helper()

	addr, err := valueobject.NewShippingAddress("12 Market St", "Cairo", "Cairo Governorate", "11511", "Egypt")
	require.NoError(t, err)

	o, err := order.NewOrder(userID, []order.Line{
		{ProductID: uuid.New(), ProductName: "Gold Ring", Quantity: 1, PriceAtPurchase: decimal.NewFromInt(250)},
	}, addr, order.PaymentMethodCash)
	require.NoError(t, err)

	o.CreatedAt = createdAt
	o.UpdatedAt = createdAt
	return o
}

func TestGormOrderRepository_SaveAndFindByID(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := placeTestOrder(t, uuid.New(), time.Now())
	require.NoError(t, repo.Save(ctx, o))

	loaded, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.UserID, loaded.UserID)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Gold Ring", loaded.Items[0].ProductName)
	assert.True(t, loaded.TotalAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "Cairo", loaded.ShippingAddress.City())
}

func TestGormOrderRepository_FindByIDNotFound(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormOrderRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_FindByUserNewestFirst(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Now().Add(-time.Hour)
	oldest := placeTestOrder(t, userID, base)
	middle := placeTestOrder(t, userID, base.Add(10*time.Minute))
	newest := placeTestOrder(t, userID, base.Add(20*time.Minute))
	other := placeTestOrder(t, uuid.New(), base.Add(30*time.Minute))

	for _, o := range []*order.Order{oldest, middle, newest, other} {
		require.NoError(t, repo.Save(ctx, o))
	}

	orders, err := repo.FindByUser(ctx, userID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, newest.ID, orders[0].ID)
	assert.Equal(t, middle.ID, orders[1].ID)
	assert.Equal(t, oldest.ID, orders[2].ID)
}

func TestGormOrderRepository_FindByUserEmpty(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormOrderRepository(db)

	orders, err := repo.FindByUser(context.Background(), uuid.New(), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NotNil(t, orders)
}

func TestGormOrderRepository_Delete(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := placeTestOrder(t, uuid.New(), time.Now())
	require.NoError(t, repo.Save(ctx, o))

	require.NoError(t, repo.Delete(ctx, o.ID))

	_, err := repo.FindByID(ctx, o.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Table("order_items").Where("order_id = ?", o.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 0, itemCount)

	assert.ErrorIs(t, repo.Delete(ctx, o.ID), shared.ErrNotFound)
}

func TestGormOrderRepository_TotalsFrozenAfterPriceChange(t *testing.T) {
	db := setupStoreTestDB(t)
	orders := NewGormOrderRepository(db)
	products := NewGormProductRepository(db)
	ctx := context.Background()

	ring, err := catalog.NewProduct("Gold Ring", "", decimal.NewFromInt(10), 5)
	require.NoError(t, err)
	require.NoError(t, products.Save(ctx, ring))

	addr, err := valueobject.NewShippingAddress("12 Market St", "Cairo", "Cairo Governorate", "11511", "Egypt")
	require.NoError(t, err)
	o, err := order.NewOrder(uuid.New(), []order.Line{
		{ProductID: ring.ID, ProductName: ring.Name, Quantity: 2, PriceAtPurchase: ring.Price},
	}, addr, order.PaymentMethodCash)
	require.NoError(t, err)
	require.NoError(t, orders.Save(ctx, o))

	// catalog price doubles after the order is on record
	require.NoError(t, ring.SetPrice(decimal.NewFromInt(20)))
	require.NoError(t, products.Save(ctx, ring))

	loaded, err := orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, loaded.TotalAmount.Equal(decimal.NewFromInt(20)), "2 x $10 stays $20")
	require.Len(t, loaded.Items, 1)
	assert.True(t, loaded.Items[0].PriceAtPurchase.Equal(decimal.NewFromInt(10)))
}
