package promotion

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CouponType determines how a coupon's discount value is interpreted
type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

// IsValid checks if the coupon type is known
func (t CouponType) IsValid() bool {
	return t == CouponTypePercentage || t == CouponTypeFixed
}

// Eligibility restricts which users may redeem a coupon
type Eligibility string

const (
	EligibilityAll      Eligibility = "all"
	EligibilitySpecific Eligibility = "specific"
)

// MaxPercentageDiscount caps percentage coupons at creation time
const MaxPercentageDiscount = 60

// Rejection reasons surfaced by coupon validation
var (
	ErrCouponInactive        = shared.NewDomainError("COUPON_INACTIVE", "Coupon is not active")
	ErrCouponExpired         = shared.NewDomainError("COUPON_EXPIRED", "Coupon has expired")
	ErrCouponNotEligible     = shared.NewDomainError("COUPON_NOT_ELIGIBLE", "Coupon is not available for this user")
	ErrMinPurchaseNotMet     = shared.NewDomainError("MIN_PURCHASE_NOT_MET", "Order subtotal is below the coupon minimum")
	ErrUserUsageLimitReached = shared.NewDomainError("USER_USAGE_LIMIT_REACHED", "Coupon usage limit reached for this user")
	ErrCouponExhausted       = shared.NewDomainError("COUPON_EXHAUSTED", "Coupon total usage limit reached")
)

// Coupon is a user-entered discount code. Codes are stored uppercase
// and matched case-insensitively. CurrentUsageCount only moves when an
// order that redeemed the coupon is successfully persisted.
type Coupon struct {
	shared.BaseAggregateRoot
	Code              string
	Description       string
	Type              CouponType
	DiscountValue     decimal.Decimal
	MaxDiscount       *decimal.Decimal // nil means uncapped
	MinPurchaseAmount valueobject.Money
	UsageLimitPerUser int
	TotalUsageLimit   *int64 // nil means unlimited
	CurrentUsageCount int64
	Eligibility       Eligibility
	SpecificUsers     []uuid.UUID
	StartDate         time.Time
	EndDate           time.Time
	IsActive          bool
	IsListed          bool
}

// NewCoupon creates a coupon with creation-time invariants enforced
func NewCoupon(code, description string, couponType CouponType, discountValue decimal.Decimal, minPurchase valueobject.Money, usageLimitPerUser int, startDate, endDate time.Time) (*Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_COUPON", "Coupon code cannot be empty")
	}
	if !couponType.IsValid() {
		return nil, shared.NewDomainError("INVALID_COUPON", "Unknown coupon type")
	}
	if !discountValue.IsPositive() {
		return nil, shared.NewDomainError("INVALID_COUPON", "Discount value must be positive")
	}
	if couponType == CouponTypePercentage && discountValue.GreaterThan(decimal.NewFromInt(MaxPercentageDiscount)) {
		return nil, shared.NewDomainError("INVALID_COUPON", "Percentage discount cannot exceed 60")
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_COUPON", "Coupon end date must be after start date")
	}
	if usageLimitPerUser < 1 {
		usageLimitPerUser = 1
	}

	return &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Description:       description,
		Type:              couponType,
		DiscountValue:     discountValue,
		MinPurchaseAmount: minPurchase,
		UsageLimitPerUser: usageLimitPerUser,
		Eligibility:       EligibilityAll,
		StartDate:         startDate,
		EndDate:           endDate,
		IsActive:          true,
		IsListed:          true,
	}, nil
}

// RestrictTo limits the coupon to a specific set of users
func (c *Coupon) RestrictTo(userIDs []uuid.UUID) {
	c.Eligibility = EligibilitySpecific
	c.SpecificUsers = userIDs
	c.IncrementVersion()
}

// ValidateFor runs the redemption checks for a user and subtotal, in
// order, short-circuiting on the first failure. priorUses is the count
// of the user's prior non-cancelled, non-failed orders that redeemed
// this coupon; the caller supplies it from order history.
func (c *Coupon) ValidateFor(userID uuid.UUID, subtotal valueobject.Money, priorUses int64, now time.Time) error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if now.After(c.EndDate) {
		return ErrCouponExpired
	}
	if c.Eligibility == EligibilitySpecific && !c.isEligible(userID) {
		return ErrCouponNotEligible
	}
	if less, _ := subtotal.LessThan(c.MinPurchaseAmount); less {
		return ErrMinPurchaseNotMet
	}
	if priorUses >= int64(c.UsageLimitPerUser) {
		return ErrUserUsageLimitReached
	}
	if c.TotalUsageLimit != nil && c.CurrentUsageCount >= *c.TotalUsageLimit {
		return ErrCouponExhausted
	}
	return nil
}

// ComputeDiscount returns the discount this coupon yields on a subtotal.
// The discount is clamped to the subtotal, capped by MaxDiscount when
// set, and rounded to a whole currency unit. Fixed discounts and the
// cap are denominated in the subtotal's currency so the clamps always
// compare like with like.
func (c *Coupon) ComputeDiscount(subtotal valueobject.Money) valueobject.Money {
	var discount valueobject.Money
	switch c.Type {
	case CouponTypePercentage:
		discount = subtotal.CalculatePercentage(c.DiscountValue)
	case CouponTypeFixed:
		fixed, err := valueobject.NewMoney(c.DiscountValue, subtotal.Currency())
		if err != nil {
			return valueobject.Zero(subtotal.Currency())
		}
		discount = fixed
	default:
		return valueobject.Zero(subtotal.Currency())
	}
	if greater, _ := discount.GreaterThan(subtotal); greater {
		discount = subtotal
	}
	if c.MaxDiscount != nil {
		if ceiling, err := valueobject.NewMoney(*c.MaxDiscount, subtotal.Currency()); err == nil {
			if greater, _ := discount.GreaterThan(ceiling); greater {
				discount = ceiling
			}
		}
	}
	return discount.RoundUnit()
}

// Deactivate turns the coupon off
func (c *Coupon) Deactivate() {
	c.IsActive = false
	c.IncrementVersion()
}

func (c *Coupon) isEligible(userID uuid.UUID) bool {
	for _, id := range c.SpecificUsers {
		if id == userID {
			return true
		}
	}
	return false
}
