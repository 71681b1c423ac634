package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emansa3ed/jewelry-store/internal/domain/cart"
	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/inventory"
	"github.com/emansa3ed/jewelry-store/internal/domain/order"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared/valueobject"
)

// Checkout-specific errors
var (
	ErrEmptyOrder          = shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	ErrMissingShippingInfo = shared.NewDomainError("MISSING_SHIPPING_INFO", "Shipping information is incomplete")
	ErrProductNotFound     = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product no longer exists")
	ErrInvalidPayment      = shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
)

// newProductNotFoundError names the offending product. Domain errors match
// by code, so errors.Is against ErrProductNotFound still holds.
func newProductNotFoundError(productID uuid.UUID) *shared.DomainError {
	return shared.NewDomainError("PRODUCT_NOT_FOUND", fmt.Sprintf("Product %s no longer exists", productID))
}

// CheckoutService turns a set of requested lines into a placed order.
// Stock is taken through the inventory ledger before the order is written,
// and every reservation made along the way is returned to stock when a later
// step fails.
// ProductCacheInvalidator evicts cached product reads after stock moves
type ProductCacheInvalidator interface {
	Invalidate(ctx context.Context, productID uuid.UUID) error
}

type CheckoutService struct {
	products    catalog.ProductRepository
	carts       cart.CartRepository
	scope       TransactionScope
	invalidator ProductCacheInvalidator
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	products catalog.ProductRepository,
	carts cart.CartRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		products: products,
		carts:    carts,
		scope:    scope,
		logger:   logger,
	}
}

// SetCacheInvalidator wires the product cache so reserved stock doesn't keep
// serving stale reads. Optional; without it cached reads age out on TTL.
func (s *CheckoutService) SetCacheInvalidator(invalidator ProductCacheInvalidator) {
	s.invalidator = invalidator
}

// PlaceOrder checks out an explicit list of items for the user.
// Validation order is fixed: request shape first, then product existence,
// then per-line stock. The first failing line aborts the whole checkout.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	address, method, err := s.validateShippingAndPayment(req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	return s.place(ctx, userID, lines, address, method, false)
}

// PlaceOrderFromCart checks out the user's current cart. The cart record is
// deleted in the same transaction that persists the order, so a successful
// checkout always leaves the user without a cart.
func (s *CheckoutService) PlaceOrderFromCart(ctx context.Context, userID uuid.UUID, req CheckoutCartRequest) (*OrderResponse, error) {
	address, method, err := s.validateShippingAndPayment(req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	c, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			return nil, ErrEmptyOrder
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyOrder
	}

	inputs := make([]OrderItemInput, 0, len(c.Items))
	for i := range c.Items {
		inputs = append(inputs, OrderItemInput{
			ProductID: c.Items[i].ProductID,
			Quantity:  c.Items[i].Quantity,
		})
	}

	lines, err := s.buildLines(ctx, inputs)
	if err != nil {
		return nil, err
	}

	return s.place(ctx, userID, lines, address, method, true)
}

// validateShippingAndPayment normalizes the address and payment method,
// mapping invalid input to the checkout error taxonomy.
func (s *CheckoutService) validateShippingAndPayment(addr ShippingAddressInput, payment string) (valueobject.ShippingAddress, order.PaymentMethod, error) {
	address, err := valueobject.NewShippingAddress(addr.Street, addr.City, addr.State, addr.PostalCode, addr.Country)
	if err != nil {
		return valueobject.ShippingAddress{}, "", ErrMissingShippingInfo
	}

	method := order.PaymentMethod(payment)
	if !method.IsValid() {
		return valueobject.ShippingAddress{}, "", ErrInvalidPayment
	}

	return address, method, nil
}

// buildLines resolves the requested items against the catalog and freezes
// the current prices. Duplicate product references are merged first so a
// product appears in at most one order line. The stock comparison here is
// advisory; the ledger re-checks atomically when reserving.
func (s *CheckoutService) buildLines(ctx context.Context, items []OrderItemInput) ([]order.Line, error) {
	merged := make([]OrderItemInput, 0, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
		if pos, ok := index[item.ProductID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	ids := make([]uuid.UUID, 0, len(merged))
	for _, item := range merged {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]order.Line, 0, len(merged))
	for _, item := range merged {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, newProductNotFoundError(item.ProductID)
		}
		if product.Stock < item.Quantity {
			return nil, inventory.NewInsufficientStockError(product.ID, item.Quantity, product.Stock)
		}
		lines = append(lines, order.Line{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: product.Price,
		})
	}

	return lines, nil
}

// place reserves stock for every line, persists the order, and optionally
// clears the user's cart, all inside one transaction scope. Reservations
// already taken are released when a later step fails so stock is never
// leaked even without a surrounding transaction.
func (s *CheckoutService) place(ctx context.Context, userID uuid.UUID, lines []order.Line, address valueobject.ShippingAddress, method order.PaymentMethod, clearCart bool) (*OrderResponse, error) {
	var placed *order.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		reserved := make([]order.Line, 0, len(lines))
		for _, line := range lines {
			if err := repos.Ledger().Reserve(ctx, line.ProductID, line.Quantity); err != nil {
				s.releaseAll(ctx, repos.Ledger(), reserved)
				return err
			}
			reserved = append(reserved, line)
		}

		o, err := order.NewOrder(userID, lines, address, method)
		if err != nil {
			s.releaseAll(ctx, repos.Ledger(), reserved)
			return err
		}

		if err := repos.Orders().Save(ctx, o); err != nil {
			s.releaseAll(ctx, repos.Ledger(), reserved)
			return err
		}

		if clearCart {
			if err := repos.Carts().DeleteByUser(ctx, userID); err != nil && !errors.Is(err, cart.ErrCartNotFound) {
				s.releaseAll(ctx, repos.Ledger(), reserved)
				return err
			}
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		for _, line := range lines {
			if err := s.invalidator.Invalidate(ctx, line.ProductID); err != nil {
				s.logger.Warn("product cache eviction failed after checkout",
					zap.String("product_id", line.ProductID.String()), zap.Error(err))
			}
		}
	}

	s.logger.Info("order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("lines", len(placed.Items)),
		zap.String("total", placed.TotalAmount.String()))

	response := ToOrderResponse(placed)
	return &response, nil
}

// releaseAll returns already-reserved stock after a failed checkout step.
// A release that itself fails leaves stock understated until reconciled, so
// it is logged loudly with everything an operator needs.
func (s *CheckoutService) releaseAll(ctx context.Context, ledger inventory.Ledger, reserved []order.Line) {
	for _, line := range reserved {
		if err := ledger.Release(ctx, line.ProductID, line.Quantity); err != nil {
			s.logger.Error("stock release failed after aborted checkout, manual reconciliation required",
				zap.String("product_id", line.ProductID.String()),
				zap.Int64("quantity", line.Quantity),
				zap.Error(err))
		}
	}
}
