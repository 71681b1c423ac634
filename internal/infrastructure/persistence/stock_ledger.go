package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/inventory"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// GormStockLedger implements the inventory Ledger against the products table.
// Every decrement is a single conditional UPDATE so the storage engine is the
// serialization point; stock can never be read, checked, and written back in
// separate steps.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Reserve atomically decrements stock for the product. The WHERE clause
// carries the availability check, so a concurrent reservation of the last
// units makes RowsAffected come back zero instead of driving stock negative.
func (l *GormStockLedger) Reserve(ctx context.Context, productID uuid.UUID, quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&catalog.Product{}).
			Where("id = ? AND stock >= ?", productID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Distinguish a missing product from a short row.
			available, err := l.stockInTx(tx, productID)
			if err != nil {
				return err
			}
			return inventory.NewInsufficientStockError(productID, quantity, available)
		}

		movement := inventory.NewStockMovement(productID, inventory.MovementTypeReserve, quantity, "")
		return tx.Create(movement).Error
	})
}

// Release returns previously reserved units to stock
func (l *GormStockLedger) Release(ctx context.Context, productID uuid.UUID, quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&catalog.Product{}).
			Where("id = ?", productID).
			Update("stock", gorm.Expr("stock + ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		movement := inventory.NewStockMovement(productID, inventory.MovementTypeRelease, quantity, "")
		return tx.Create(movement).Error
	})
}

// GetStock reads the current stock level
func (l *GormStockLedger) GetStock(ctx context.Context, productID uuid.UUID) (int64, error) {
	return l.stockInTx(l.db.WithContext(ctx), productID)
}

func (l *GormStockLedger) stockInTx(tx *gorm.DB, productID uuid.UUID) (int64, error) {
	var stock int64
	err := tx.Model(&catalog.Product{}).
		Where("id = ?", productID).
		Select("stock").
		Take(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, shared.ErrNotFound
		}
		return 0, err
	}
	return stock, nil
}

// Ensure GormStockLedger implements Ledger
var _ inventory.Ledger = (*GormStockLedger)(nil)
