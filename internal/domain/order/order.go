package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared/valueobject"
)

// PaymentMethod identifies how the customer intends to pay. Payment is
// recorded only; no processing happens in this system.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
)

// IsValid returns true if the payment method is one of the supported values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodBankTransfer, PaymentMethodCash:
		return true
	}
	return false
}

// Order is a placed, immutable record of a checkout. Prices are frozen at
// placement time; later catalog price changes never alter an order.
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Items           []OrderItem                 `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	ShippingAddress valueobject.ShippingAddress `gorm:"type:jsonb;not null"`
	PaymentMethod   PaymentMethod               `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one frozen line of a placed order
type OrderItem struct {
	shared.BaseEntity
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName     string          `gorm:"type:varchar(200);not null"` // snapshot at purchase time
	Quantity        int64           `gorm:"not null;check:quantity >= 1"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Line describes one requested product when building an order
type Line struct {
	ProductID       uuid.UUID
	ProductName     string
	Quantity        int64
	PriceAtPurchase decimal.Decimal
}

// NewOrder builds an immutable order from frozen lines. The total is derived
// from the lines here and never recomputed afterwards.
func NewOrder(userID uuid.UUID, lines []Line, address valueobject.ShippingAddress, method PaymentMethod) (*Order, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("MISSING_SHIPPING_INFO", "Shipping address is required")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]OrderItem, 0, len(lines)),
		TotalAmount:       decimal.Zero,
		ShippingAddress:   address,
		PaymentMethod:     method,
	}

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
		if line.PriceAtPurchase.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
		}

		lineTotal := line.PriceAtPurchase.Mul(decimal.NewFromInt(line.Quantity))
		o.Items = append(o.Items, OrderItem{
			BaseEntity:      shared.NewBaseEntity(),
			OrderID:         o.ID,
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.PriceAtPurchase,
			LineTotal:       lineTotal,
		})
		o.TotalAmount = o.TotalAmount.Add(lineTotal)
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// BelongsTo returns true if the order was placed by the given user
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int64 {
	var total int64
	for i := range o.Items {
		total += o.Items[i].Quantity
	}
	return total
}
