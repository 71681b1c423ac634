package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// Product represents a sellable item in the catalog.
// It is the aggregate root for product-related operations. Stock lives on the
// product row and is only ever moved through conditional updates in the
// inventory ledger, never by loading and re-saving the aggregate.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock       int64           `gorm:"not null;default:0;check:stock >= 0"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Image       string          `gorm:"type:varchar(500)"`
	Material    string          `gorm:"type:varchar(100)"`
	Weight      decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"` // grams
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description string, price decimal.Decimal, stock int64) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price,
		Stock:             stock,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	oldPrice := p.Price
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// SetStock replaces the stock count. Used by admin catalog updates only;
// checkout moves stock through the inventory ledger instead.
func (p *Product) SetStock(stock int64) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetImage sets the product image URL
func (p *Product) SetImage(image string) error {
	if len(image) > 500 {
		return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot exceed 500 characters")
	}

	p.Image = image
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetMaterial sets the jewelry material (e.g. "gold", "silver")
func (p *Product) SetMaterial(material string) error {
	if len(material) > 100 {
		return shared.NewDomainError("INVALID_MATERIAL", "Material cannot exceed 100 characters")
	}

	p.Material = material
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetWeight sets the item weight in grams
func (p *Product) SetWeight(weight decimal.Decimal) error {
	if weight.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}

	p.Weight = weight
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasStock reports whether the product currently shows at least the requested
// quantity. This is an advisory read; the conditional decrement in the
// inventory ledger is the authoritative check.
func (p *Product) HasStock(quantity int64) bool {
	return p.Stock >= quantity
}

// HasCategory returns true if the product has a category assigned
func (p *Product) HasCategory() bool {
	return p.CategoryID != nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
