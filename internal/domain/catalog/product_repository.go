package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// ProductSearch holds the optional filters for product listing
type ProductSearch struct {
	Name       string
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the search filters
	FindAll(ctx context.Context, search ProductSearch, filter shared.Filter) ([]Product, error)

	// FindByCategory finds all products in a specific category
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// UpdateWithLock persists catalog field changes to an existing product
	// under the optimistic version check. The stock column is excluded so a
	// stale read can never overwrite concurrent ledger movements.
	UpdateWithLock(ctx context.Context, product *Product) error

	// SetStock overwrites the stock count directly, without going through
	// the loaded aggregate.
	SetStock(ctx context.Context, id uuid.UUID, stock int64) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the search filters
	Count(ctx context.Context, search ProductSearch) (int64, error)
}
