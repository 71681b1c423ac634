package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emansa3ed/jewelry-store/internal/domain/shared/valueobject"
)

func testAddress(t *testing.T) valueobject.ShippingAddress {
	t.Helper()
	addr, err := valueobject.NewShippingAddress("12 Market St", "Cairo", "Cairo Governorate", "11511", "Egypt")
	require.NoError(t, err)
	return addr
}

func TestNewOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("computes line totals and order total", func(t *testing.T) {
		lines := []Line{
			{ProductID: uuid.New(), ProductName: "Gold Ring", Quantity: 2, PriceAtPurchase: decimal.NewFromFloat(249.99)},
			{ProductID: uuid.New(), ProductName: "Silver Chain", Quantity: 1, PriceAtPurchase: decimal.NewFromInt(80)},
		}

		o, err := NewOrder(userID, lines, testAddress(t), PaymentMethodCreditCard)
		require.NoError(t, err)

		require.Len(t, o.Items, 2)
		assert.True(t, o.Items[0].LineTotal.Equal(decimal.NewFromFloat(499.98)))
		assert.True(t, o.Items[1].LineTotal.Equal(decimal.NewFromInt(80)))
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(579.98)))
		assert.EqualValues(t, 3, o.TotalQuantity())
		assert.True(t, o.BelongsTo(userID))
		assert.Len(t, o.GetDomainEvents(), 1)
	})

	t.Run("rejects empty order", func(t *testing.T) {
		_, err := NewOrder(userID, nil, testAddress(t), PaymentMethodCash)
		assert.Error(t, err)
	})

	t.Run("rejects missing shipping address", func(t *testing.T) {
		lines := []Line{{ProductID: uuid.New(), ProductName: "Ring", Quantity: 1, PriceAtPurchase: decimal.NewFromInt(10)}}
		_, err := NewOrder(userID, lines, valueobject.EmptyShippingAddress(), PaymentMethodCash)
		assert.Error(t, err)
	})

	t.Run("rejects invalid payment method", func(t *testing.T) {
		lines := []Line{{ProductID: uuid.New(), ProductName: "Ring", Quantity: 1, PriceAtPurchase: decimal.NewFromInt(10)}}
		_, err := NewOrder(userID, lines, testAddress(t), PaymentMethod("bitcoin"))
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity line", func(t *testing.T) {
		lines := []Line{{ProductID: uuid.New(), ProductName: "Ring", Quantity: 0, PriceAtPurchase: decimal.NewFromInt(10)}}
		_, err := NewOrder(userID, lines, testAddress(t), PaymentMethodCash)
		assert.Error(t, err)
	})
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, PaymentMethodCreditCard.IsValid())
	assert.True(t, PaymentMethodPayPal.IsValid())
	assert.True(t, PaymentMethodBankTransfer.IsValid())
	assert.True(t, PaymentMethodCash.IsValid())
	assert.False(t, PaymentMethod("check").IsValid())
}
