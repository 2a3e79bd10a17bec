package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// OfferService handles back-office offer management
type OfferService struct {
	offerRepo   catalog.OfferRepository
	productRepo catalog.ProductRepository
}

// NewOfferService creates a new OfferService
func NewOfferService(offerRepo catalog.OfferRepository, productRepo catalog.ProductRepository) *OfferService {
	return &OfferService{
		offerRepo:   offerRepo,
		productRepo: productRepo,
	}
}

// CreateOfferRequest is the input for creating an offer
type CreateOfferRequest struct {
	Name          string          `json:"name" binding:"required"`
	Scope         string          `json:"scope" binding:"required,oneof=product category"`
	TargetID      uuid.UUID       `json:"target_id" binding:"required"`
	DiscountType  string          `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal `json:"discount_value" binding:"required"`
	StartDate     time.Time       `json:"start_date" binding:"required"`
	EndDate       time.Time       `json:"end_date" binding:"required"`
}

// Create validates and persists a new offer. Fixed-discount offers are
// checked against the lowest sale price they target so an offer can
// never promise more money off than the cheapest targeted variant
// costs; this runs at creation time, not at checkout.
func (s *OfferService) Create(ctx context.Context, req CreateOfferRequest) (*OfferResponse, error) {
	offer, err := catalog.NewOffer(req.Name, catalog.OfferScope(req.Scope), req.TargetID,
		catalog.DiscountType(req.DiscountType), req.DiscountValue, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if offer.DiscountType == catalog.DiscountTypeFixed {
		if err := s.checkFixedDiscountFloor(ctx, offer); err != nil {
			return nil, err
		}
	}

	if err := s.offerRepo.Save(ctx, offer); err != nil {
		return nil, err
	}
	response := ToOfferResponse(offer)
	return &response, nil
}

// UpdateOfferRequest is the input for updating an offer
type UpdateOfferRequest struct {
	Name          *string          `json:"name"`
	DiscountValue *decimal.Decimal `json:"discount_value"`
	StartDate     *time.Time       `json:"start_date"`
	EndDate       *time.Time       `json:"end_date"`
	IsActive      *bool            `json:"is_active"`
}

// Update modifies an existing offer, re-running the fixed-discount
// floor check when the discount value changes
func (s *OfferService) Update(ctx context.Context, offerID uuid.UUID, req UpdateOfferRequest) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		offer.Name = *req.Name
	}
	if req.DiscountValue != nil {
		if !req.DiscountValue.IsPositive() {
			return nil, shared.NewDomainError("INVALID_OFFER", "Discount value must be positive")
		}
		if offer.DiscountType == catalog.DiscountTypePercentage && req.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return nil, shared.NewDomainError("INVALID_OFFER", "Percentage discount cannot exceed 100")
		}
		offer.DiscountValue = *req.DiscountValue
	}
	if req.StartDate != nil {
		offer.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		offer.EndDate = *req.EndDate
	}
	if !offer.EndDate.After(offer.StartDate) {
		return nil, catalog.ErrInvalidOfferWindow
	}
	if req.IsActive != nil {
		if *req.IsActive {
			offer.Activate()
		} else {
			offer.Deactivate()
		}
	}

	if offer.DiscountType == catalog.DiscountTypeFixed {
		if err := s.checkFixedDiscountFloor(ctx, offer); err != nil {
			return nil, err
		}
	}

	offer.IncrementVersion()
	if err := s.offerRepo.Save(ctx, offer); err != nil {
		return nil, err
	}
	response := ToOfferResponse(offer)
	return &response, nil
}

// GetByID retrieves an offer
func (s *OfferService) GetByID(ctx context.Context, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	response := ToOfferResponse(offer)
	return &response, nil
}

// List retrieves offers with pagination
func (s *OfferService) List(ctx context.Context, filter shared.Filter) ([]OfferResponse, int64, error) {
	offers, err := s.offerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.offerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]OfferResponse, len(offers))
	for i := range offers {
		responses[i] = ToOfferResponse(&offers[i])
	}
	return responses, total, nil
}

// checkFixedDiscountFloor rejects fixed offers whose discount exceeds
// the lowest sale price of the targeted product or category
func (s *OfferService) checkFixedDiscountFloor(ctx context.Context, offer *catalog.Offer) error {
	discount := offer.DiscountValue

	switch offer.Scope {
	case catalog.OfferScopeProduct:
		product, err := s.productRepo.FindByID(ctx, offer.TargetID)
		if err != nil {
			return err
		}
		if len(product.Variants) == 0 {
			return nil
		}
		lowest := product.LowestSalePrice()
		if discount.GreaterThan(lowest.Amount()) {
			return catalog.ErrDiscountExceedsPrice
		}
	case catalog.OfferScopeCategory:
		lowest, ok, err := s.productRepo.LowestSalePriceInCategory(ctx, offer.TargetID)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if discount.GreaterThan(lowest.Amount()) {
			return catalog.ErrDiscountExceedsPrice
		}
	}
	return nil
}
