package promotion

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/promotion"
)

// CouponResponse is the API representation of a coupon
type CouponResponse struct {
	ID                uuid.UUID        `json:"id"`
	Code              string           `json:"code"`
	Description       string           `json:"description"`
	Type              string           `json:"type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MaxDiscount       *decimal.Decimal `json:"max_discount,omitempty"`
	MinPurchaseAmount string           `json:"min_purchase_amount"`
	UsageLimitPerUser int              `json:"usage_limit_per_user"`
	TotalUsageLimit   *int64           `json:"total_usage_limit,omitempty"`
	CurrentUsageCount int64            `json:"current_usage_count"`
	Eligibility       string           `json:"eligibility"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	IsActive          bool             `json:"is_active"`
	IsListed          bool             `json:"is_listed"`
}

// ToCouponResponse converts a coupon to its API representation
func ToCouponResponse(c *promotion.Coupon) CouponResponse {
	return CouponResponse{
		ID:                c.ID,
		Code:              c.Code,
		Description:       c.Description,
		Type:              string(c.Type),
		DiscountValue:     c.DiscountValue,
		MaxDiscount:       c.MaxDiscount,
		MinPurchaseAmount: c.MinPurchaseAmount.Amount().String(),
		UsageLimitPerUser: c.UsageLimitPerUser,
		TotalUsageLimit:   c.TotalUsageLimit,
		CurrentUsageCount: c.CurrentUsageCount,
		Eligibility:       string(c.Eligibility),
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		IsActive:          c.IsActive,
		IsListed:          c.IsListed,
	}
}
