package checkout

import (
	"context"

	"github.com/emansa3ed/jewelry-store/internal/domain/cart"
	"github.com/emansa3ed/jewelry-store/internal/domain/inventory"
	"github.com/emansa3ed/jewelry-store/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories a
// checkout touches. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction and
// are committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the checkout repositories
// within a transaction. All repositories returned share the same underlying
// database transaction, so reservations, the order insert, and the cart
// clear stand or fall together.
type TransactionalRepositories interface {
	// Ledger returns the stock ledger scoped to the current transaction
	Ledger() inventory.Ledger
	// Orders returns the order repository scoped to the current transaction
	Orders() order.OrderRepository
	// Carts returns the cart repository scoped to the current transaction
	Carts() cart.CartRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required. Without a surrounding transaction the checkout's explicit
// compensating releases are the only rollback mechanism.
type NoOpTransactionScope struct {
	ledger inventory.Ledger
	orders order.OrderRepository
	carts  cart.CartRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	ledger inventory.Ledger,
	orders order.OrderRepository,
	carts cart.CartRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		ledger: ledger,
		orders: orders,
		carts:  carts,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Ledger returns the stock ledger.
func (s *NoOpTransactionScope) Ledger() inventory.Ledger {
	return s.ledger
}

// Orders returns the order repository.
func (s *NoOpTransactionScope) Orders() order.OrderRepository {
	return s.orders
}

// Carts returns the cart repository.
func (s *NoOpTransactionScope) Carts() cart.CartRepository {
	return s.carts
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
