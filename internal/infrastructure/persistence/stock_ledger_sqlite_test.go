package persistence

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/inventory"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

func seedProduct(t *testing.T, db *gorm.DB, stock int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Gold Ring", "", decimal.NewFromInt(250), stock)
	require.NoError(t, err)
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestGormStockLedger_Reserve(t *testing.T) {
	db := setupStoreTestDB(t)
	ledger := NewGormStockLedger(db)
	ctx := context.Background()

	t.Run("decrements stock and records a movement", func(t *testing.T) {
		p := seedProduct(t, db, 10)

		require.NoError(t, ledger.Reserve(ctx, p.ID, 4))

		stock, err := ledger.GetStock(ctx, p.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 6, stock)

		var movements []inventory.StockMovement
		require.NoError(t, db.Where("product_id = ?", p.ID).Find(&movements).Error)
		require.Len(t, movements, 1)
		assert.Equal(t, inventory.MovementTypeReserve, movements[0].Type)
		assert.EqualValues(t, 4, movements[0].Quantity)
	})

	t.Run("fails with available count when stock is short", func(t *testing.T) {
		p := seedProduct(t, db, 2)

		err := ledger.Reserve(ctx, p.ID, 5)
		require.Error(t, err)

		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, p.ID, stockErr.ProductID)
		assert.EqualValues(t, 5, stockErr.Requested)
		assert.EqualValues(t, 2, stockErr.Available)

		// No partial decrement and no movement on failure.
		stock, err := ledger.GetStock(ctx, p.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, stock)

		var count int64
		require.NoError(t, db.Table("stock_movements").Where("product_id = ?", p.ID).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	t.Run("fails with not found for unknown product", func(t *testing.T) {
		err := ledger.Reserve(ctx, uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects quantity below 1", func(t *testing.T) {
		p := seedProduct(t, db, 2)
		assert.Error(t, ledger.Reserve(ctx, p.ID, 0))
	})
}

func TestGormStockLedger_Release(t *testing.T) {
	db := setupStoreTestDB(t)
	ledger := NewGormStockLedger(db)
	ctx := context.Background()

	t.Run("returns units to stock", func(t *testing.T) {
		p := seedProduct(t, db, 3)

		require.NoError(t, ledger.Reserve(ctx, p.ID, 3))
		require.NoError(t, ledger.Release(ctx, p.ID, 3))

		stock, err := ledger.GetStock(ctx, p.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, stock)
	})

	t.Run("fails with not found for unknown product", func(t *testing.T) {
		err := ledger.Release(ctx, uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// Two buyers racing for the very last unit: exactly one reservation wins and
// stock never goes negative.
func TestGormStockLedger_ConcurrentLastUnit(t *testing.T) {
	db := setupStoreTestDB(t)
	ledger := NewGormStockLedger(db)
	ctx := context.Background()
	p := seedProduct(t, db, 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ledger.Reserve(ctx, p.ID, 1)
		}(i)
	}
	wg.Wait()

	var successes, failures int
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			var stockErr *inventory.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			assert.EqualValues(t, 0, stockErr.Available)
			failures++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)

	stock, err := ledger.GetStock(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stock)
}
