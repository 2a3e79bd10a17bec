package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/wallet"
)

// GormCheckoutTransactionScope runs the checkout unit of work inside a
// single database transaction. Every repository handed to the callback
// is bound to the transaction, so the stock decrement, the order
// insert, the coupon redemption and the cart clear commit or roll back
// together.
type GormCheckoutTransactionScope struct {
	db *gorm.DB
}

// NewGormCheckoutTransactionScope creates a new GormCheckoutTransactionScope
func NewGormCheckoutTransactionScope(db *gorm.DB) *GormCheckoutTransactionScope {
	return &GormCheckoutTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormCheckoutTransactionScope) Execute(ctx context.Context, fn func(repos checkout.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{tx: tx})
	})
}

// gormCheckoutRepositories provides transaction-bound repositories
type gormCheckoutRepositories struct {
	tx *gorm.DB
}

func (r *gormCheckoutRepositories) OrderRepo() order.Repository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormCheckoutRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormCheckoutRepositories) OfferRepo() catalog.OfferRepository {
	return NewGormOfferRepository(r.tx)
}

func (r *gormCheckoutRepositories) CouponRepo() promotion.Repository {
	return NewGormCouponRepository(r.tx)
}

func (r *gormCheckoutRepositories) WalletRepo() wallet.Repository {
	return NewGormWalletRepository(r.tx)
}

func (r *gormCheckoutRepositories) CartRepo() cart.Repository {
	return NewGormCartRepository(r.tx)
}

var _ checkout.TransactionScope = (*GormCheckoutTransactionScope)(nil)
var _ checkout.TransactionalRepositories = (*gormCheckoutRepositories)(nil)
