package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	// MovementTypeReserve records stock taken out for an order
	MovementTypeReserve MovementType = "RESERVE"
	// MovementTypeRelease records stock returned after a failed checkout
	MovementTypeRelease MovementType = "RELEASE"
)

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeReserve, MovementTypeRelease:
		return true
	}
	return false
}

// StockMovement is an append-only audit record of a ledger operation.
// Movements are written in the same transaction as the stock update.
type StockMovement struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Type      MovementType `gorm:"type:varchar(20);not null"`
	Quantity  int64        `gorm:"not null"`
	Reference string       `gorm:"type:varchar(100)"` // e.g. order id for checkout movements
	CreatedAt time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new movement record
func NewStockMovement(productID uuid.UUID, movementType MovementType, quantity int64, reference string) *StockMovement {
	return &StockMovement{
		ID:        uuid.New(),
		ProductID: productID,
		Type:      movementType,
		Quantity:  quantity,
		Reference: reference,
		CreatedAt: time.Now(),
	}
}

// MovementRepository defines the interface for movement persistence
type MovementRepository interface {
	// Save appends a movement record
	Save(ctx context.Context, movement *StockMovement) error

	// FindByProduct returns movements for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]StockMovement, error)
}
