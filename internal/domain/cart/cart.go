package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// Cart-specific domain errors
var (
	ErrCartNotFound  = shared.NewDomainError("CART_NOT_FOUND", "Cart not found")
	ErrItemNotInCart = shared.NewDomainError("ITEM_NOT_IN_CART", "Product is not in the cart")
)

// Cart is a user's pending selection of products. There is at most one cart
// per user, enforced by the unique index on UserID. The cart stores product
// references and quantities only; prices and totals are derived at read time
// and never persisted here.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one product line in a cart. A product appears at most once;
// adding the same product again merges quantities.
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product,priority:2"`
	Quantity  int64     `gorm:"not null;check:quantity >= 1"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}
}

// AddItem adds a product to the cart. If the product is already present the
// quantities are merged.
func (c *Cart) AddItem(productID uuid.UUID, quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.Items[i].UpdatedAt = time.Now()
			c.touch()
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	c.touch()
	return nil
}

// SetItemQuantity replaces the quantity of an existing line
func (c *Cart) SetItemQuantity(productID uuid.UUID, quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.Items[i].UpdatedAt = time.Now()
			c.touch()
			return nil
		}
	}
	return ErrItemNotInCart
}

// RemoveItem removes a product line from the cart. Removing a product that is
// not present is a no-op so the operation stays idempotent.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return
		}
	}
}

// ItemQuantity returns the quantity for a product, or 0 when absent
func (c *Cart) ItemQuantity(productID uuid.UUID) int64 {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return c.Items[i].Quantity
		}
	}
	return 0
}

// HasItem returns true if the product is in the cart
func (c *Cart) HasItem(productID uuid.UUID) bool {
	return c.ItemQuantity(productID) > 0
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int64 {
	var total int64
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
