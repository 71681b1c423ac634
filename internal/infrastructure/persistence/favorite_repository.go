package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emansa3ed/jewelry-store/internal/domain/favorite"
)

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GormFavoriteRepository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Add stores a favorite mark. The unique index on (user_id, product_id) plus
// ON CONFLICT DO NOTHING makes repeat adds a no-op.
func (r *GormFavoriteRepository) Add(ctx context.Context, f *favorite.Favorite) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(f).Error
}

// Remove deletes a favorite mark
func (r *GormFavoriteRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&favorite.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return favorite.ErrNotFavorite
	}
	return nil
}

// FindByUser returns a user's favorites, newest first
func (r *GormFavoriteRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]favorite.Favorite, error) {
	favorites := make([]favorite.Favorite, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// Exists checks whether the user has favorited the product
func (r *GormFavoriteRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&favorite.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormFavoriteRepository implements FavoriteRepository
var _ favorite.FavoriteRepository = (*GormFavoriteRepository)(nil)
