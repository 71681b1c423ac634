package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence.
// Orders are append-only: there is no update operation.
type OrderRepository interface {
	// Save persists a new order with its items
	Save(ctx context.Context, o *Order) error

	// FindByID finds an order by its ID with items loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser returns a user's orders, newest first.
	// A user with no orders gets an empty slice, not an error.
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll returns all orders, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Delete removes an order. Stock is not restored.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUser counts a user's orders
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// Count counts all orders
	Count(ctx context.Context) (int64, error)
}
