package favorite

import (
	"context"

	"github.com/google/uuid"

	"github.com/emansa3ed/jewelry-store/internal/application/catalog"
	domaincatalog "github.com/emansa3ed/jewelry-store/internal/domain/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/favorite"
)

// FavoriteResponse is one favorited product with its catalog data
type FavoriteResponse struct {
	ProductID uuid.UUID                `json:"product_id"`
	Product   *catalog.ProductResponse `json:"product,omitempty"`
}

// AddFavoriteRequest represents a request to favorite a product
type AddFavoriteRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// FavoriteService manages a user's favorite products
type FavoriteService struct {
	favorites favorite.FavoriteRepository
	products  domaincatalog.ProductRepository
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(favorites favorite.FavoriteRepository, products domaincatalog.ProductRepository) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		products:  products,
	}
}

// Add favorites a product for the user. Favoriting a product that is already
// in the set succeeds; the returned flag reports whether anything changed.
func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, req AddFavoriteRequest) (bool, error) {
	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		return false, err
	}

	exists, err := s.favorites.Exists(ctx, userID, req.ProductID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := s.favorites.Add(ctx, favorite.NewFavorite(userID, req.ProductID)); err != nil {
		return false, err
	}
	return true, nil
}

// Remove unfavorites a product. Returns favorite.ErrNotFavorite when the
// product was not in the user's set.
func (s *FavoriteService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.favorites.Remove(ctx, userID, productID)
}

// List returns the user's favorites with current catalog data. Favorites
// pointing at deleted products are listed without product details.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]FavoriteResponse, error) {
	marks, err := s.favorites.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]FavoriteResponse, 0, len(marks))
	if len(marks) == 0 {
		return responses, nil
	}

	ids := make([]uuid.UUID, 0, len(marks))
	for i := range marks {
		ids = append(ids, marks[i].ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domaincatalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for i := range marks {
		response := FavoriteResponse{ProductID: marks[i].ProductID}
		if product, ok := byID[marks[i].ProductID]; ok {
			pr := catalog.ToProductResponse(product)
			response.Product = &pr
		}
		responses = append(responses, response)
	}

	return responses, nil
}
