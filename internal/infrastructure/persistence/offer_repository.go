package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

// GormOfferRepository implements catalog.OfferRepository using GORM
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// FindByID finds an offer by its ID
func (r *GormOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Offer, error) {
	var model models.OfferModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all offers matching the filter
func (r *GormOfferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Offer, error) {
	var rows []models.OfferModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OfferModel{}), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	offers := make([]catalog.Offer, len(rows))
	for i := range rows {
		offers[i] = *rows[i].ToDomain()
	}
	return offers, nil
}

// Save creates or updates an offer
func (r *GormOfferRepository) Save(ctx context.Context, offer *catalog.Offer) error {
	return r.db.WithContext(ctx).Save(models.OfferModelFromDomain(offer)).Error
}

// Delete deletes an offer
func (r *GormOfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OfferModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts offers matching the filter
func (r *GormOfferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OfferModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindLiveProductOffers returns the active product-scoped offers for
// the product whose window contains now
func (r *GormOfferRepository) FindLiveProductOffers(ctx context.Context, productID uuid.UUID, now time.Time) ([]catalog.Offer, error) {
	return r.findLive(ctx, catalog.OfferScopeProduct, productID, now)
}

// FindLiveCategoryOffers returns the active category-scoped offers for
// the category whose window contains now
func (r *GormOfferRepository) FindLiveCategoryOffers(ctx context.Context, categoryID uuid.UUID, now time.Time) ([]catalog.Offer, error) {
	return r.findLive(ctx, catalog.OfferScopeCategory, categoryID, now)
}

func (r *GormOfferRepository) findLive(ctx context.Context, scope catalog.OfferScope, targetID uuid.UUID, now time.Time) ([]catalog.Offer, error) {
	var rows []models.OfferModel
	if err := r.db.WithContext(ctx).
		Where("scope = ? AND target_id = ? AND is_active = ? AND start_date <= ? AND end_date >= ?",
			string(scope), targetID, true, now, now).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	offers := make([]catalog.Offer, len(rows))
	for i := range rows {
		offers[i] = *rows[i].ToDomain()
	}
	return offers, nil
}

// IncrementUsage atomically bumps an offer's usage counter
func (r *GormOfferRepository) IncrementUsage(ctx context.Context, offerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.OfferModel{}).
		Where("id = ?", offerID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormOfferRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOfferRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "scope":
			query = query.Where("scope = ?", value)
		case "target_id":
			query = query.Where("target_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "live_at":
			if t, ok := value.(time.Time); ok {
				query = query.Where("start_date <= ? AND end_date >= ?", t, t)
			}
		}
	}
	return query
}

var _ catalog.OfferRepository = (*GormOfferRepository)(nil)
