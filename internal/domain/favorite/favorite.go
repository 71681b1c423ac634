package favorite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// ErrNotFavorite is returned when removing a product that is not in the
// user's favorites.
var ErrNotFavorite = shared.NewDomainError("NOT_FAVORITE", "Product is not in favorites")

// Favorite marks a product as favorited by a user. The unique index keeps at
// most one row per user and product, so adding is naturally idempotent.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_product,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}

// NewFavorite creates a new favorite mark
func NewFavorite(userID, productID uuid.UUID) *Favorite {
	return &Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
}

// FavoriteRepository defines the interface for favorite persistence
type FavoriteRepository interface {
	// Add stores a favorite mark. Adding an existing mark is a no-op.
	Add(ctx context.Context, f *Favorite) error

	// Remove deletes a favorite mark.
	// Returns ErrNotFavorite when the mark does not exist.
	Remove(ctx context.Context, userID, productID uuid.UUID) error

	// FindByUser returns a user's favorites, newest first.
	// A user with no favorites gets an empty slice.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error)

	// Exists checks whether the user has favorited the product
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}
