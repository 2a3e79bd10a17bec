package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser returns all cart lines for a user, oldest first so the
// cart keeps a stable display order
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.Line, error) {
	var rows []models.CartLineModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	lines := make([]cart.Line, len(rows))
	for i := range rows {
		lines[i] = rows[i].ToDomain()
	}
	return lines, nil
}

// FindLine returns the user's line for a variant
func (r *GormCartRepository) FindLine(ctx context.Context, userID, variantID uuid.UUID) (*cart.Line, error) {
	var model models.CartLineModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND variant_id = ?", userID, variantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	line := model.ToDomain()
	return &line, nil
}

// Save inserts or updates a cart line
func (r *GormCartRepository) Save(ctx context.Context, line *cart.Line) error {
	return r.db.WithContext(ctx).Save(models.CartLineModelFromDomain(line)).Error
}

// Delete removes a single cart line
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CartLineModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByUser removes all of a user's cart lines
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartLineModel{}).Error
}

var _ cart.Repository = (*GormCartRepository)(nil)
