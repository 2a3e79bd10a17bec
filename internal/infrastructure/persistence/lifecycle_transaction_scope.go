package persistence

import (
	"context"

	"gorm.io/gorm"

	apporder "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/wallet"
)

// GormLifecycleTransactionScope runs order lifecycle operations
// (cancel, return, refund) inside a single database transaction so the
// restock, the wallet credit and the order update commit or roll back
// together.
type GormLifecycleTransactionScope struct {
	db *gorm.DB
}

// NewGormLifecycleTransactionScope creates a new GormLifecycleTransactionScope
func NewGormLifecycleTransactionScope(db *gorm.DB) *GormLifecycleTransactionScope {
	return &GormLifecycleTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormLifecycleTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLifecycleRepositories{tx: tx})
	})
}

// gormLifecycleRepositories provides transaction-bound repositories
type gormLifecycleRepositories struct {
	tx *gorm.DB
}

func (r *gormLifecycleRepositories) OrderRepo() order.Repository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormLifecycleRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormLifecycleRepositories) WalletRepo() wallet.Repository {
	return NewGormWalletRepository(r.tx)
}

var _ apporder.TransactionScope = (*GormLifecycleTransactionScope)(nil)
var _ apporder.TransactionalRepositories = (*gormLifecycleRepositories)(nil)
