package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/emansa3ed/jewelry-store/internal/application/cart"
	"github.com/emansa3ed/jewelry-store/internal/domain/cart"
	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
	"github.com/emansa3ed/jewelry-store/internal/interfaces/http/dto"
	"github.com/emansa3ed/jewelry-store/internal/interfaces/http/middleware"
)

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

// cartTestServer wires a CartHandler behind a stub auth middleware that
// injects the given user into the request context
func cartTestServer(t *testing.T, userID uuid.UUID) (*gin.Engine, *MockCartRepository, *MockProductRepository) {
	t.Helper()

	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	service := cartapp.NewCartService(carts, products, zap.NewNop())
	h := NewCartHandler(service)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
	})
	engine.GET("/cart", h.Get)
	engine.POST("/cart/items", h.AddItem)
	engine.PUT("/cart/items/:product_id", h.UpdateItem)
	engine.DELETE("/cart/items/:product_id", h.RemoveItem)
	engine.DELETE("/cart", h.Clear)

	return engine, carts, products
}

func TestCartHandler_Get(t *testing.T) {
	userID := uuid.New()
	engine, carts, _ := cartTestServer(t, userID)
	carts.On("GetOrCreate", mock.Anything, userID).Return(cart.NewCart(userID), nil)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestCartHandler_AddItem(t *testing.T) {
	userID := uuid.New()
	engine, carts, products := cartTestServer(t, userID)

	product, err := catalog.NewProduct("Silver Chain", "", decimal.RequireFromString("89.99"), 10)
	require.NoError(t, err)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
	carts.On("GetOrCreate", mock.Anything, userID).Return(cart.NewCart(userID), nil)
	carts.On("Save", mock.Anything, mock.Anything).Return(nil)

	payload := `{"product_id":"` + product.ID.String() + `","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	carts.AssertCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartHandler_AddItem_InsufficientStock(t *testing.T) {
	userID := uuid.New()
	engine, carts, products := cartTestServer(t, userID)

	product, err := catalog.NewProduct("Opal Ring", "", decimal.RequireFromString("120.00"), 1)
	require.NoError(t, err)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	carts.On("GetOrCreate", mock.Anything, userID).Return(cart.NewCart(userID), nil)

	payload := `{"product_id":"` + product.ID.String() + `","quantity":5}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Error.Code)
	carts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartHandler_AddItem_InvalidBody(t *testing.T) {
	engine, _, _ := cartTestServer(t, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_RemoveItem_NotInCart(t *testing.T) {
	userID := uuid.New()
	engine, carts, _ := cartTestServer(t, userID)
	carts.On("FindByUser", mock.Anything, userID).Return(cart.NewCart(userID), nil)

	req := httptest.NewRequest(http.MethodDelete, "/cart/items/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "ITEM_NOT_IN_CART", body.Error.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	userID := uuid.New()
	engine, carts, _ := cartTestServer(t, userID)
	carts.On("DeleteByUser", mock.Anything, userID).Return(nil)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	carts.AssertExpectations(t)
}

func TestCartHandler_Unauthenticated(t *testing.T) {
	service := cartapp.NewCartService(new(MockCartRepository), new(MockProductRepository), zap.NewNop())
	h := NewCartHandler(service)

	engine := gin.New()
	engine.GET("/cart", h.Get)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
