package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID with all variants
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByVariantID loads the product that owns the given variant
func (r *GormProductRepository) FindByVariantID(ctx context.Context, variantID uuid.UUID) (*catalog.Product, error) {
	var variant models.VariantModel
	if err := r.db.WithContext(ctx).
		First(&variant, "id = ?", variantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, variant.ProductID)
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var rows []models.ProductModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ProductModel{}).Preload("Variants"),
		filter,
	)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// FindListed returns listed products with pagination
func (r *GormProductRepository) FindListed(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	base := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("is_listed = ?", true)

	var total int64
	if err := r.applyFilterWithoutPagination(base.Session(&gorm.Session{}), filter).
		Count(&total).Error; err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}

	var rows []models.ProductModel
	query := r.applyFilter(base.Preload("Variants"), filter)
	if err := query.Find(&rows).Error; err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}

	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a product and reconciles its variants
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Variants").Save(model).Error; err != nil {
			return err
		}

		currentVariantIDs := make([]uuid.UUID, len(model.Variants))
		for i, v := range model.Variants {
			currentVariantIDs[i] = v.ID
		}

		if len(currentVariantIDs) > 0 {
			if err := tx.Where("product_id = ? AND id NOT IN ?", model.ID, currentVariantIDs).
				Delete(&models.VariantModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("product_id = ?", model.ID).
				Delete(&models.VariantModel{}).Error; err != nil {
				return err
			}
		}

		for i := range model.Variants {
			model.Variants[i].ProductID = model.ID
			if err := tx.Save(&model.Variants[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a product and its variants
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.VariantModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProductModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.ProductModel{}),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementVariantStock atomically reduces a variant's stock by quantity.
// The conditional update leaves the row untouched when stock is short.
func (r *GormProductRepository) DecrementVariantStock(ctx context.Context, variantID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.VariantModel{}).
		Where("id = ? AND stock >= ?", variantID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.VariantModel{}).
			Where("id = ?", variantID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// IncrementVariantStock atomically restores a variant's stock
func (r *GormProductRepository) IncrementVariantStock(ctx context.Context, variantID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.VariantModel{}).
		Where("id = ?", variantID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// LowestSalePriceInCategory returns the cheapest variant sale price
// across all products in the category
func (r *GormProductRepository) LowestSalePriceInCategory(ctx context.Context, categoryID uuid.UUID) (valueobject.Money, bool, error) {
	var row struct {
		Lowest *decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.VariantModel{}).
		Select("MIN(product_variants.sale_price) AS lowest").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("products.category_id = ?", categoryID).
		Scan(&row).Error
	if err != nil {
		return valueobject.ZeroINR(), false, err
	}
	if row.Lowest == nil {
		return valueobject.ZeroINR(), false, nil
	}
	return valueobject.NewMoneyINR(*row.Lowest), true, nil
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "brand_id":
			query = query.Where("brand_id = ?", value)
		case "is_listed":
			query = query.Where("is_listed = ?", value)
		}
	}
	return query
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
