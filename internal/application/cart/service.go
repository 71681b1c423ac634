package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/emansa3ed/jewelry-store/internal/domain/cart"
	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/inventory"
)

// CartService manages a user's cart and assembles its priced view.
// The cart itself stores only product references and quantities; every view
// is repriced against the catalog at read time.
type CartService struct {
	carts    cart.CartRepository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(carts cart.CartRepository, products catalog.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// GetCart returns the user's cart view, creating an empty cart on first access
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartViewResponse, error) {
	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, c)
}

// AddItem adds a product to the cart, merging quantities when the product is
// already present. The stock check here guards against obviously oversized
// lines; checkout re-checks atomically.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartViewResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	wanted := c.ItemQuantity(req.ProductID) + req.Quantity
	if product.Stock < wanted {
		return nil, inventory.NewInsufficientStockError(product.ID, wanted, product.Stock)
	}

	if err := c.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.buildView(ctx, c)
}

// UpdateItem replaces the quantity of an existing cart line
func (s *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, req UpdateItemRequest) (*CartViewResponse, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < req.Quantity {
		return nil, inventory.NewInsufficientStockError(product.ID, req.Quantity, product.Stock)
	}

	if err := c.SetItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.buildView(ctx, c)
}

// RemoveItem removes a product line. The mutation is idempotent; the returned
// flag tells the caller whether the product was actually in the cart so the
// API layer can decide between 200 and 404.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartViewResponse, bool, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	removed := c.HasItem(productID)
	if removed {
		c.RemoveItem(productID)
		if err := s.carts.Save(ctx, c); err != nil {
			return nil, false, err
		}
	}

	view, err := s.buildView(ctx, c)
	if err != nil {
		return nil, false, err
	}
	return view, removed, nil
}

// Clear deletes the user's cart record entirely. The next access recreates
// an empty cart.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.carts.DeleteByUser(ctx, userID)
}

// buildView reprices the cart against the catalog. Lines whose product has
// been deleted since they were added are dropped from the view.
func (s *CartService) buildView(ctx context.Context, c *cart.Cart) (*CartViewResponse, error) {
	view := &CartViewResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Items:       make([]CartLineView, 0, len(c.Items)),
		TotalAmount: decimal.Zero,
	}

	if len(c.Items) == 0 {
		return view, nil
	}

	ids := make([]uuid.UUID, 0, len(c.Items))
	for i := range c.Items {
		ids = append(ids, c.Items[i].ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for i := range c.Items {
		item := &c.Items[i]
		product, ok := byID[item.ProductID]
		if !ok {
			s.logger.Debug("dropping cart line for deleted product",
				zap.String("cart_id", c.ID.String()),
				zap.String("product_id", item.ProductID.String()))
			continue
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(item.Quantity))
		view.Items = append(view.Items, CartLineView{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
			Stock:     product.Stock,
		})
		view.TotalItems += item.Quantity
		view.TotalAmount = view.TotalAmount.Add(lineTotal)
	}

	return view, nil
}
