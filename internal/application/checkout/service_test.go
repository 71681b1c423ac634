package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emansa3ed/jewelry-store/internal/domain/cart"
	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/inventory"
	"github.com/emansa3ed/jewelry-store/internal/domain/order"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, search catalog.ProductSearch, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, search, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SetStock(ctx context.Context, id uuid.UUID, stock int64) error {
	args := m.Called(ctx, id, stock)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, search catalog.ProductSearch) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository is a mock implementation of cart.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedger is a mock implementation of inventory.Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Reserve(ctx context.Context, productID uuid.UUID, quantity int64) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockLedger) Release(ctx context.Context, productID uuid.UUID, quantity int64) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockLedger) GetStock(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

type checkoutFixture struct {
	products *MockProductRepository
	carts    *MockCartRepository
	orders   *MockOrderRepository
	ledger   *MockLedger
	service  *CheckoutService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	orders := new(MockOrderRepository)
	ledger := new(MockLedger)
	scope := NewNoOpTransactionScope(ledger, orders, carts)
	return &checkoutFixture{
		products: products,
		carts:    carts,
		orders:   orders,
		ledger:   ledger,
		service:  NewCheckoutService(products, carts, scope, zap.NewNop()),
	}
}

func newStockedProduct(t *testing.T, name string, price string, stock int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return p
}

func validShippingAddress() ShippingAddressInput {
	return ShippingAddressInput{
		Street:     "12 Market Street",
		City:       "Cairo",
		State:      "Cairo",
		PostalCode: "11511",
		Country:    "Egypt",
	}
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("successfully places order with frozen prices", func(t *testing.T) {
		f := newCheckoutFixture(t)
		ring := newStockedProduct(t, "Gold Ring", "120.50", 10)
		chain := newStockedProduct(t, "Silver Chain", "45.00", 3)

		f.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*ring, *chain}, nil)
		f.ledger.On("Reserve", ctx, ring.ID, int64(2)).Return(nil)
		f.ledger.On("Reserve", ctx, chain.ID, int64(1)).Return(nil)
		f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		resp, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			Items: []OrderItemInput{
				{ProductID: ring.ID, Quantity: 2},
				{ProductID: chain.ID, Quantity: 1},
			},
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "credit_card",
		})

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, userID, resp.UserID)
		assert.Len(t, resp.Items, 2)
		assert.True(t, decimal.RequireFromString("286.00").Equal(resp.TotalAmount))
		assert.Equal(t, "Gold Ring", resp.Items[0].ProductName)
		assert.True(t, decimal.RequireFromString("120.50").Equal(resp.Items[0].PriceAtPurchase))
		assert.Equal(t, "credit_card", resp.PaymentMethod)
		f.ledger.AssertExpectations(t)
		f.orders.AssertExpectations(t)
		f.ledger.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("merges duplicate product lines before reserving", func(t *testing.T) {
		f := newCheckoutFixture(t)
		ring := newStockedProduct(t, "Gold Ring", "120.50", 10)

		f.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*ring}, nil)
		f.ledger.On("Reserve", ctx, ring.ID, int64(3)).Return(nil)
		f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		resp, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			Items: []OrderItemInput{
				{ProductID: ring.ID, Quantity: 1},
				{ProductID: ring.ID, Quantity: 2},
			},
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "paypal",
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(3), resp.Items[0].Quantity)
		f.ledger.AssertNumberOfCalls(t, "Reserve", 1)
	})

	t.Run("rejects empty order before touching the catalog", func(t *testing.T) {
		f := newCheckoutFixture(t)

		_, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			Items:           nil,
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "cash",
		})

		assert.ErrorIs(t, err, ErrEmptyOrder)
		f.products.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})

	t.Run("rejects incomplete shipping address", func(t *testing.T) {
		f := newCheckoutFixture(t)
		addr := validShippingAddress()
		addr.City = "  "

		_, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			Items:           []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
			ShippingAddress: addr,
			PaymentMethod:   "cash",
		})

		assert.ErrorIs(t, err, ErrMissingShippingInfo)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		f := newCheckoutFixture(t)

		_, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			Items:           []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "barter",
		})

		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("fails when a referenced product no longer exists", func(t *testing.T) {
		f := newCheckoutFixture(t)
		ring := newStockedProduct(t, "Gold Ring", "120.50", 10)
		missing := uuid.New()

		f.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*ring}, nil)

		_, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			Items: []OrderItemInput{
				{ProductID: ring.ID, Quantity: 1},
				{ProductID: missing, Quantity: 1},
			},
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "credit_card",
		})

		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Contains(t, err.Error(), missing.String(), "message names the offending product")
		f.ledger.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stops at first line with insufficient stock", func(t *testing.T) {
		f := newCheckoutFixture(t)
		chain := newStockedProduct(t, "Silver Chain", "45.00", 1)

		f.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*chain}, nil)

		_, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			Items:           []OrderItemInput{{ProductID: chain.ID, Quantity: 2}},
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "credit_card",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, chain.ID, stockErr.ProductID)
		assert.Equal(t, int64(1), stockErr.Available)
		f.ledger.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("releases earlier reservations when a later reserve loses the race", func(t *testing.T) {
		f := newCheckoutFixture(t)
		ring := newStockedProduct(t, "Gold Ring", "120.50", 10)
		chain := newStockedProduct(t, "Silver Chain", "45.00", 5)

		f.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*ring, *chain}, nil)
		f.ledger.On("Reserve", ctx, ring.ID, int64(2)).Return(nil)
		f.ledger.On("Reserve", ctx, chain.ID, int64(3)).
			Return(inventory.NewInsufficientStockError(chain.ID, 3, 1))
		f.ledger.On("Release", ctx, ring.ID, int64(2)).Return(nil)

		_, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			Items: []OrderItemInput{
				{ProductID: ring.ID, Quantity: 2},
				{ProductID: chain.ID, Quantity: 3},
			},
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "credit_card",
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		f.ledger.AssertCalled(t, "Release", ctx, ring.ID, int64(2))
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("releases all reservations when persisting the order fails", func(t *testing.T) {
		f := newCheckoutFixture(t)
		ring := newStockedProduct(t, "Gold Ring", "120.50", 10)
		saveErr := errors.New("connection reset")

		f.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*ring}, nil)
		f.ledger.On("Reserve", ctx, ring.ID, int64(2)).Return(nil)
		f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(saveErr)
		f.ledger.On("Release", ctx, ring.ID, int64(2)).Return(nil)

		_, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			Items:           []OrderItemInput{{ProductID: ring.ID, Quantity: 2}},
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "credit_card",
		})

		assert.ErrorIs(t, err, saveErr)
		f.ledger.AssertCalled(t, "Release", ctx, ring.ID, int64(2))
	})

	t.Run("reports the original failure even when release also fails", func(t *testing.T) {
		f := newCheckoutFixture(t)
		ring := newStockedProduct(t, "Gold Ring", "120.50", 10)
		saveErr := errors.New("connection reset")

		f.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*ring}, nil)
		f.ledger.On("Reserve", ctx, ring.ID, int64(1)).Return(nil)
		f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(saveErr)
		f.ledger.On("Release", ctx, ring.ID, int64(1)).Return(errors.New("still down"))

		_, err := f.service.PlaceOrder(ctx, userID, PlaceOrderRequest{
			Items:           []OrderItemInput{{ProductID: ring.ID, Quantity: 1}},
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "credit_card",
		})

		assert.ErrorIs(t, err, saveErr)
	})
}

func TestCheckoutService_PlaceOrderFromCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	newCartWith := func(t *testing.T, items map[uuid.UUID]int64) *cart.Cart {
		t.Helper()
		c := cart.NewCart(userID)
		for id, qty := range items {
			require.NoError(t, c.AddItem(id, qty))
		}
		return c
	}

	t.Run("places order and clears the cart", func(t *testing.T) {
		f := newCheckoutFixture(t)
		ring := newStockedProduct(t, "Gold Ring", "120.50", 10)
		c := newCartWith(t, map[uuid.UUID]int64{ring.ID: 2})

		f.carts.On("FindByUser", ctx, userID).Return(c, nil)
		f.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*ring}, nil)
		f.ledger.On("Reserve", ctx, ring.ID, int64(2)).Return(nil)
		f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
		f.carts.On("DeleteByUser", ctx, userID).Return(nil)

		resp, err := f.service.PlaceOrderFromCart(ctx, userID, CheckoutCartRequest{
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "bank_transfer",
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.True(t, decimal.RequireFromString("241.00").Equal(resp.TotalAmount))
		f.carts.AssertCalled(t, "DeleteByUser", ctx, userID)
	})

	t.Run("rejects checkout when the user has no cart", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.carts.On("FindByUser", ctx, userID).Return(nil, cart.ErrCartNotFound)

		_, err := f.service.PlaceOrderFromCart(ctx, userID, CheckoutCartRequest{
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "cash",
		})

		assert.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("rejects checkout of an empty cart", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.carts.On("FindByUser", ctx, userID).Return(cart.NewCart(userID), nil)

		_, err := f.service.PlaceOrderFromCart(ctx, userID, CheckoutCartRequest{
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "cash",
		})

		assert.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("rolls back reservations when the cart clear fails", func(t *testing.T) {
		f := newCheckoutFixture(t)
		ring := newStockedProduct(t, "Gold Ring", "120.50", 10)
		c := newCartWith(t, map[uuid.UUID]int64{ring.ID: 1})
		clearErr := errors.New("lock timeout")

		f.carts.On("FindByUser", ctx, userID).Return(c, nil)
		f.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*ring}, nil)
		f.ledger.On("Reserve", ctx, ring.ID, int64(1)).Return(nil)
		f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
		f.carts.On("DeleteByUser", ctx, userID).Return(clearErr)
		f.ledger.On("Release", ctx, ring.ID, int64(1)).Return(nil)

		_, err := f.service.PlaceOrderFromCart(ctx, userID, CheckoutCartRequest{
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "cash",
		})

		assert.ErrorIs(t, err, clearErr)
		f.ledger.AssertCalled(t, "Release", ctx, ring.ID, int64(1))
	})

	t.Run("tolerates a cart that vanished before the clear", func(t *testing.T) {
		f := newCheckoutFixture(t)
		ring := newStockedProduct(t, "Gold Ring", "120.50", 10)
		c := newCartWith(t, map[uuid.UUID]int64{ring.ID: 1})

		f.carts.On("FindByUser", ctx, userID).Return(c, nil)
		f.products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*ring}, nil)
		f.ledger.On("Reserve", ctx, ring.ID, int64(1)).Return(nil)
		f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
		f.carts.On("DeleteByUser", ctx, userID).Return(cart.ErrCartNotFound)

		resp, err := f.service.PlaceOrderFromCart(ctx, userID, CheckoutCartRequest{
			ShippingAddress: validShippingAddress(),
			PaymentMethod:   "cash",
		})

		require.NoError(t, err)
		assert.NotNil(t, resp)
	})
}
