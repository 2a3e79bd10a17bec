package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductRepository provides access to the product aggregate
type ProductRepository interface {
	shared.Repository[Product]

	// FindByVariantID loads the product that owns the given variant
	FindByVariantID(ctx context.Context, variantID uuid.UUID) (*Product, error)

	// FindListed returns listed products with pagination
	FindListed(ctx context.Context, filter shared.Filter) (shared.Paginated[Product], error)

	// DecrementVariantStock atomically reduces a variant's stock by
	// quantity. Returns shared.ErrInsufficientStock when the variant's
	// current stock is below quantity; the row is left untouched.
	DecrementVariantStock(ctx context.Context, variantID uuid.UUID, quantity int) error

	// IncrementVariantStock atomically restores a variant's stock
	IncrementVariantStock(ctx context.Context, variantID uuid.UUID, quantity int) error

	// LowestSalePriceInCategory returns the cheapest variant sale price
	// across all products in the category. ok is false when the
	// category has no variants.
	LowestSalePriceInCategory(ctx context.Context, categoryID uuid.UUID) (valueobject.Money, bool, error)
}

// OfferRepository provides access to offers
type OfferRepository interface {
	shared.Repository[Offer]

	// FindLiveProductOffers returns the active product-scoped offers
	// for the product whose window contains now
	FindLiveProductOffers(ctx context.Context, productID uuid.UUID, now time.Time) ([]Offer, error)

	// FindLiveCategoryOffers returns the active category-scoped offers
	// for the category whose window contains now
	FindLiveCategoryOffers(ctx context.Context, categoryID uuid.UUID, now time.Time) ([]Offer, error)

	// IncrementUsage atomically bumps an offer's usage counter
	IncrementUsage(ctx context.Context, offerID uuid.UUID) error
}

// CategoryRepository provides access to categories
type CategoryRepository interface {
	shared.Repository[Category]
}

// BrandRepository provides access to brands
type BrandRepository interface {
	shared.Repository[Brand]
}
