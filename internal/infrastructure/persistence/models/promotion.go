package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CouponModel is the persistence model for the Coupon aggregate.
// SpecificUsers is stored as a JSON array of user IDs.
type CouponModel struct {
	AggregateModel
	Code              string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description       string            `gorm:"type:text"`
	Type              string            `gorm:"type:varchar(20);not null"`
	DiscountValue     decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	MaxDiscount       *decimal.Decimal  `gorm:"type:decimal(12,2)"`
	MinPurchaseAmount valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	UsageLimitPerUser int               `gorm:"not null;default:1"`
	TotalUsageLimit   *int64            `gorm:""`
	CurrentUsageCount int64             `gorm:"not null;default:0"`
	Eligibility       string            `gorm:"type:varchar(20);not null;default:'all'"`
	SpecificUsers     string            `gorm:"type:jsonb;default:'[]'"`
	StartDate         time.Time         `gorm:"not null"`
	EndDate           time.Time         `gorm:"not null;index"`
	IsActive          bool              `gorm:"not null;default:true;index"`
	IsListed          bool              `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts the persistence model to a domain Coupon.
func (m *CouponModel) ToDomain() *promotion.Coupon {
	var users []uuid.UUID
	if m.SpecificUsers != "" {
		// Malformed rows degrade to an empty list rather than failing the read
		_ = json.Unmarshal([]byte(m.SpecificUsers), &users)
	}
	return &promotion.Coupon{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Description:       m.Description,
		Type:              promotion.CouponType(m.Type),
		DiscountValue:     m.DiscountValue,
		MaxDiscount:       m.MaxDiscount,
		MinPurchaseAmount: m.MinPurchaseAmount,
		UsageLimitPerUser: m.UsageLimitPerUser,
		TotalUsageLimit:   m.TotalUsageLimit,
		CurrentUsageCount: m.CurrentUsageCount,
		Eligibility:       promotion.Eligibility(m.Eligibility),
		SpecificUsers:     users,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		IsActive:          m.IsActive,
		IsListed:          m.IsListed,
	}
}

// FromDomain populates the persistence model from a domain Coupon.
func (m *CouponModel) FromDomain(c *promotion.Coupon) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Description = c.Description
	m.Type = string(c.Type)
	m.DiscountValue = c.DiscountValue
	m.MaxDiscount = c.MaxDiscount
	m.MinPurchaseAmount = c.MinPurchaseAmount
	m.UsageLimitPerUser = c.UsageLimitPerUser
	m.TotalUsageLimit = c.TotalUsageLimit
	m.CurrentUsageCount = c.CurrentUsageCount
	m.Eligibility = string(c.Eligibility)
	users, err := json.Marshal(c.SpecificUsers)
	if err != nil || c.SpecificUsers == nil {
		users = []byte("[]")
	}
	m.SpecificUsers = string(users)
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.IsActive = c.IsActive
	m.IsListed = c.IsListed
}

// CouponModelFromDomain creates a new persistence model from a domain Coupon.
func CouponModelFromDomain(c *promotion.Coupon) *CouponModel {
	m := &CouponModel{}
	m.FromDomain(c)
	return m
}
