package promotion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CouponQuote is a successfully validated coupon with its computed
// discount against a concrete subtotal
type CouponQuote struct {
	CouponID       uuid.UUID
	Code           string
	DiscountAmount valueobject.Money
}

// CouponService validates coupon redemptions and manages coupons.
// Validation never mutates usage counters; those move only when the
// owning order is persisted.
type CouponService struct {
	couponRepo promotion.Repository
	orderRepo  order.Repository
}

// NewCouponService creates a new CouponService
func NewCouponService(couponRepo promotion.Repository, orderRepo order.Repository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		orderRepo:  orderRepo,
	}
}

// ValidateAndPrice runs the ordered redemption checks for a user and
// subtotal and computes the discount. Per-user usage counts come from
// the user's order history, excluding cancelled orders and failed
// payments.
func (s *CouponService) ValidateAndPrice(ctx context.Context, userID uuid.UUID, code string, subtotal valueobject.Money, now time.Time) (*CouponQuote, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	priorUses, err := s.orderRepo.CountUserOrdersWithCoupon(ctx, userID, coupon.Code)
	if err != nil {
		return nil, err
	}

	if err := coupon.ValidateFor(userID, subtotal, priorUses, now); err != nil {
		return nil, err
	}

	return &CouponQuote{
		CouponID:       coupon.ID,
		Code:           coupon.Code,
		DiscountAmount: coupon.ComputeDiscount(subtotal),
	}, nil
}

// CreateCouponRequest is the input for creating a coupon
type CreateCouponRequest struct {
	Code              string           `json:"code" binding:"required"`
	Description       string           `json:"description"`
	Type              string           `json:"type" binding:"required,oneof=percentage fixed"`
	DiscountValue     decimal.Decimal  `json:"discount_value" binding:"required"`
	MaxDiscount       *decimal.Decimal `json:"max_discount"`
	MinPurchaseAmount decimal.Decimal  `json:"min_purchase_amount"`
	UsageLimitPerUser int              `json:"usage_limit_per_user"`
	TotalUsageLimit   *int64           `json:"total_usage_limit"`
	SpecificUsers     []uuid.UUID      `json:"specific_users"`
	StartDate         time.Time        `json:"start_date" binding:"required"`
	EndDate           time.Time        `json:"end_date" binding:"required"`
}

// Create validates and persists a new coupon
func (s *CouponService) Create(ctx context.Context, req CreateCouponRequest) (*CouponResponse, error) {
	coupon, err := promotion.NewCoupon(req.Code, req.Description, promotion.CouponType(req.Type),
		req.DiscountValue, valueobject.NewMoneyINR(req.MinPurchaseAmount), req.UsageLimitPerUser,
		req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if req.MaxDiscount != nil {
		if !req.MaxDiscount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_COUPON", "Max discount must be positive")
		}
		coupon.MaxDiscount = req.MaxDiscount
	}
	if req.TotalUsageLimit != nil {
		if *req.TotalUsageLimit < 1 {
			return nil, shared.NewDomainError("INVALID_COUPON", "Total usage limit must be positive")
		}
		coupon.TotalUsageLimit = req.TotalUsageLimit
	}
	if len(req.SpecificUsers) > 0 {
		coupon.RestrictTo(req.SpecificUsers)
	}

	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}
	response := ToCouponResponse(coupon)
	return &response, nil
}

// GetByID retrieves a coupon
func (s *CouponService) GetByID(ctx context.Context, couponID uuid.UUID) (*CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		return nil, err
	}
	response := ToCouponResponse(coupon)
	return &response, nil
}

// List retrieves coupons with pagination
func (s *CouponService) List(ctx context.Context, filter shared.Filter) ([]CouponResponse, int64, error) {
	coupons, err := s.couponRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.couponRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]CouponResponse, len(coupons))
	for i := range coupons {
		responses[i] = ToCouponResponse(&coupons[i])
	}
	return responses, total, nil
}

// Deactivate turns a coupon off
func (s *CouponService) Deactivate(ctx context.Context, couponID uuid.UUID) error {
	coupon, err := s.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		return err
	}
	coupon.Deactivate()
	return s.couponRepo.Save(ctx, coupon)
}
