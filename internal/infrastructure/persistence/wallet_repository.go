package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/wallet"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

// GormWalletRepository implements wallet.Repository using GORM
type GormWalletRepository struct {
	db *gorm.DB
}

// NewGormWalletRepository creates a new GormWalletRepository
func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// FindByUser loads a user's wallet with its transactions
func (r *GormWalletRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	var model models.WalletModel
	if err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOrCreateByUser loads a user's wallet, lazily creating an empty
// one on first reference
func (r *GormWalletRepository) FindOrCreateByUser(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	w, err := r.FindByUser(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := wallet.New(userID)
	if err != nil {
		return nil, err
	}
	model := models.WalletModelFromDomain(fresh)

	// A concurrent first reference may insert the same user's wallet;
	// the unique index on user_id makes one of the writers lose, so
	// re-read after a conflict.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		return nil, err
	}
	return r.FindByUser(ctx, userID)
}

// FindTransactions returns a wallet's ledger, newest first
func (r *GormWalletRepository) FindTransactions(ctx context.Context, walletID uuid.UUID, filter shared.Filter) (shared.Paginated[wallet.Transaction], error) {
	base := r.db.WithContext(ctx).
		Model(&models.WalletTransactionModel{}).
		Where("wallet_id = ?", walletID)

	if value, ok := filter.Filters["type"]; ok {
		base = base.Where("type = ?", value)
	}
	if value, ok := filter.Filters["reason"]; ok {
		base = base.Where("reason = ?", value)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return shared.Paginated[wallet.Transaction]{}, err
	}

	query := base.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var rows []models.WalletTransactionModel
	if err := query.Find(&rows).Error; err != nil {
		return shared.Paginated[wallet.Transaction]{}, err
	}

	transactions := make([]wallet.Transaction, len(rows))
	for i := range rows {
		transactions[i] = rows[i].ToDomain()
	}
	return shared.NewPaginated(transactions, total, filter.Page, filter.PageSize), nil
}

// SaveWithLock persists the wallet and any newly appended transactions
// atomically, with an optimistic version check. Ledger rows are
// insert-only, so existing rows are skipped on conflict.
func (r *GormWalletRepository) SaveWithLock(ctx context.Context, w *wallet.Wallet, expectedVersion int) error {
	model := models.WalletModelFromDomain(w)
	model.Version = expectedVersion + 1
	model.UpdatedAt = time.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.WalletModel{}).
			Where("id = ? AND version = ?", model.ID, expectedVersion).
			Updates(map[string]interface{}{
				"balance":    model.Balance,
				"version":    model.Version,
				"updated_at": model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		w.Version = model.Version

		for i := range model.Transactions {
			model.Transactions[i].WalletID = model.ID
		}
		if len(model.Transactions) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&model.Transactions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var _ wallet.Repository = (*GormWalletRepository)(nil)
