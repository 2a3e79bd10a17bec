package catalog

import (
	"context"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PricingService resolves the discounted unit price of a variant by
// loading the live offers and delegating to the domain resolver. It is
// read-only; offer usage counters move only at order placement.
type PricingService struct {
	offerRepo catalog.OfferRepository
}

// NewPricingService creates a new PricingService
func NewPricingService(offerRepo catalog.OfferRepository) *PricingService {
	return &PricingService{offerRepo: offerRepo}
}

// QuoteVariant resolves the best discount for a variant's sale price at
// the given instant. Offer lookup failures degrade to a zero-discount
// quote rather than failing the read.
func (s *PricingService) QuoteVariant(ctx context.Context, product *catalog.Product, variant *catalog.Variant, now time.Time) catalog.PriceQuote {
	productOffers, err := s.offerRepo.FindLiveProductOffers(ctx, product.ID, now)
	if err != nil {
		productOffers = nil
	}
	categoryOffers, err := s.offerRepo.FindLiveCategoryOffers(ctx, product.CategoryID, now)
	if err != nil {
		categoryOffers = nil
	}
	return catalog.ResolveBestDiscount(productOffers, categoryOffers, variant.SalePrice, now)
}

// QuotePrice resolves the best discount for an arbitrary base price of
// a product, used by catalog listing pages.
func (s *PricingService) QuotePrice(ctx context.Context, product *catalog.Product, basePrice valueobject.Money, now time.Time) catalog.PriceQuote {
	productOffers, err := s.offerRepo.FindLiveProductOffers(ctx, product.ID, now)
	if err != nil {
		productOffers = nil
	}
	categoryOffers, err := s.offerRepo.FindLiveCategoryOffers(ctx, product.CategoryID, now)
	if err != nil {
		categoryOffers = nil
	}
	return catalog.ResolveBestDiscount(productOffers, categoryOffers, basePrice, now)
}
