package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// ProductService handles catalog product operations. Single-product reads go
// through the cache; any mutation evicts the cached entry. Cache failures
// are logged and otherwise ignored so the catalog keeps working when redis
// is down.
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	cache      ProductCache
	logger     *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	cache ProductCache,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.Name, req.Description, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		product.SetCategory(req.CategoryID)
	}
	if req.Image != "" {
		if err := product.SetImage(req.Image); err != nil {
			return nil, err
		}
	}
	if req.Material != "" {
		if err := product.SetMaterial(req.Material); err != nil {
			return nil, err
		}
	}
	if req.Weight != nil {
		if err := product.SetWeight(*req.Weight); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product, serving repeated reads from the cache
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Warn("product cache read failed", zap.String("product_id", id.String()), zap.Error(err))
	} else if cached != nil {
		response := ToProductResponse(cached)
		return &response, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, product); err != nil {
		s.logger.Warn("product cache write failed", zap.String("product_id", id.String()), zap.Error(err))
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products matching the filter together with the total count
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	search := catalog.ProductSearch{
		Name:       filter.Search,
		CategoryID: filter.CategoryID,
		MinPrice:   filter.MinPrice,
		MaxPrice:   filter.MaxPrice,
	}
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}

	products, err := s.products.FindAll(ctx, search, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, search)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// ListByCategory retrieves all products in a category
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter ProductListFilter) ([]ProductResponse, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, err := s.products.FindByCategory(ctx, categoryID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, err
	}

	return ToProductResponses(products), nil
}

// Update applies the non-nil fields of the request to the product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.Image != nil {
		if err := product.SetImage(*req.Image); err != nil {
			return nil, err
		}
	}
	if req.Material != nil {
		if err := product.SetMaterial(*req.Material); err != nil {
			return nil, err
		}
	}
	if req.Weight != nil {
		if err := product.SetWeight(*req.Weight); err != nil {
			return nil, err
		}
	}

	if err := s.products.UpdateWithLock(ctx, product); err != nil {
		return nil, err
	}
	// stock is written through its own path so the value read at load time
	// never travels back into the row
	if req.Stock != nil {
		if err := s.products.SetStock(ctx, id, *req.Stock); err != nil {
			return nil, err
		}
	}
	s.invalidate(ctx, id)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("product cache eviction failed", zap.String("product_id", id.String()), zap.Error(err))
	}
}
