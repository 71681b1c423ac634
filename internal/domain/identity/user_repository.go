package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by lowercased email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether the email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, u *User) error

	// FindAll lists users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Count counts all registered users
	Count(ctx context.Context) (int64, error)

	// Delete removes a user account
	Delete(ctx context.Context, id uuid.UUID) error
}
