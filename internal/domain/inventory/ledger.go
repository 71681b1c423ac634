package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// Ledger is the authoritative interface for stock movements. Implementations
// must perform every decrement as a single conditional update in the storage
// engine so that concurrent reservations can never drive stock negative.
type Ledger interface {
	// Reserve atomically decrements stock for the product. Returns
	// *InsufficientStockError when fewer than quantity units remain and
	// shared.ErrNotFound when the product does not exist.
	Reserve(ctx context.Context, productID uuid.UUID, quantity int64) error

	// Release returns previously reserved units to stock.
	Release(ctx context.Context, productID uuid.UUID, quantity int64) error

	// GetStock reads the current stock level. The value is advisory; only
	// Reserve is authoritative under concurrency.
	GetStock(ctx context.Context, productID uuid.UUID) (int64, error)
}

// InsufficientStockError reports a failed reservation together with what was
// actually available at the time of the attempt.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// Unwrap lets errors.Is match against shared.ErrInsufficientStock
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(productID uuid.UUID, requested, available int64) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}
