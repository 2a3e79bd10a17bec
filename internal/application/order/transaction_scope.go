package order

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/wallet"
)

// TransactionScope provides transactional access to the repositories
// lifecycle operations touch. A cancellation's restock, wallet refund
// and order update commit or roll back as one unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the lifecycle
// repositories within a transaction
type TransactionalRepositories interface {
	OrderRepo() order.Repository
	ProductRepo() catalog.ProductRepository
	WalletRepo() wallet.Repository
}

// NoOpTransactionScope runs lifecycle operations without a real
// transaction. Used in unit tests.
type NoOpTransactionScope struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	walletRepo  wallet.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(orderRepo order.Repository, productRepo catalog.ProductRepository, walletRepo wallet.Repository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		walletRepo:  walletRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() order.Repository { return s.orderRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// WalletRepo returns the wallet repository
func (s *NoOpTransactionScope) WalletRepo() wallet.Repository { return s.walletRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
