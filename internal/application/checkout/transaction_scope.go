package checkout

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/wallet"
)

// TransactionScope provides transactional access to every repository
// the checkout flow touches. Order creation, the wallet debit, counter
// updates, stock decrements and the cart clear commit or roll back as
// one unit; a created order must never exist without its stock having
// been decremented.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the checkout
// repositories within a transaction. All repositories share the same
// underlying database transaction.
type TransactionalRepositories interface {
	OrderRepo() order.Repository
	ProductRepo() catalog.ProductRepository
	OfferRepo() catalog.OfferRepository
	CouponRepo() promotion.Repository
	WalletRepo() wallet.Repository
	CartRepo() cart.Repository
}

// NoOpTransactionScope runs the checkout unit without a real
// transaction. Used in unit tests.
type NoOpTransactionScope struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	offerRepo   catalog.OfferRepository
	couponRepo  promotion.Repository
	walletRepo  wallet.Repository
	cartRepo    cart.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	offerRepo catalog.OfferRepository,
	couponRepo promotion.Repository,
	walletRepo wallet.Repository,
	cartRepo cart.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		offerRepo:   offerRepo,
		couponRepo:  couponRepo,
		walletRepo:  walletRepo,
		cartRepo:    cartRepo,
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

// OfferRepo returns the offer repository
func (s *NoOpTransactionScope) OfferRepo() catalog.OfferRepository { return s.offerRepo }

// CouponRepo returns the coupon repository
func (s *NoOpTransactionScope) CouponRepo() promotion.Repository { return s.couponRepo }

// WalletRepo returns the wallet repository
func (s *NoOpTransactionScope) WalletRepo() wallet.Repository { return s.walletRepo }

// CartRepo returns the cart repository
func (s *NoOpTransactionScope) CartRepo() cart.Repository { return s.cartRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
