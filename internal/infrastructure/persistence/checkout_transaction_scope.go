package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/emansa3ed/jewelry-store/internal/application/checkout"
	"github.com/emansa3ed/jewelry-store/internal/domain/cart"
	"github.com/emansa3ed/jewelry-store/internal/domain/inventory"
	"github.com/emansa3ed/jewelry-store/internal/domain/order"
)

// GormCheckoutScope implements the checkout TransactionScope using GORM
// transactions. Reservations, the order insert, and the cart clear all run
// against the same transaction, so a failure anywhere rolls everything back.
type GormCheckoutScope struct {
	db *gorm.DB
}

// NewGormCheckoutScope creates a new GormCheckoutScope
func NewGormCheckoutScope(db *gorm.DB) *GormCheckoutScope {
	return &GormCheckoutScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCheckoutScope) Execute(ctx context.Context, fn func(repos checkout.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormCheckoutRepositories{tx: tx}
		return fn(repos)
	})
}

// gormCheckoutRepositories provides transaction-scoped repositories
type gormCheckoutRepositories struct {
	tx *gorm.DB
}

// Ledger returns the stock ledger scoped to the current transaction
func (r *gormCheckoutRepositories) Ledger() inventory.Ledger {
	return NewGormStockLedger(r.tx)
}

// Orders returns the order repository scoped to the current transaction
func (r *gormCheckoutRepositories) Orders() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Carts returns the cart repository scoped to the current transaction
func (r *gormCheckoutRepositories) Carts() cart.CartRepository {
	return NewGormCartRepository(r.tx)
}

// Ensure GormCheckoutScope implements TransactionScope
var _ checkout.TransactionScope = (*GormCheckoutScope)(nil)

// Ensure gormCheckoutRepositories implements TransactionalRepositories
var _ checkout.TransactionalRepositories = (*gormCheckoutRepositories)(nil)
