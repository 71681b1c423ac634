package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByUser finds a user's cart with its items.
	// Returns ErrCartNotFound when the user has never had a cart.
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// GetOrCreate returns the user's cart, creating an empty one on first
	// touch. Creation is conflict-safe so concurrent first touches end up
	// sharing the same row.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save persists the cart and replaces its item lines
	Save(ctx context.Context, c *Cart) error

	// DeleteByUser removes the user's cart record entirely.
	// Returns ErrCartNotFound when no cart exists.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
