package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OfferScope determines what an offer targets
type OfferScope string

const (
	OfferScopeProduct  OfferScope = "product"
	OfferScopeCategory OfferScope = "category"
)

// IsValid checks if the offer scope is known
func (s OfferScope) IsValid() bool {
	return s == OfferScopeProduct || s == OfferScopeCategory
}

// DiscountType determines how an offer's discount value is interpreted
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid checks if the discount type is known
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

// Domain errors for offers
var (
	ErrDiscountExceedsPrice = shared.NewDomainError("DISCOUNT_EXCEEDS_PRICE", "Fixed discount exceeds the lowest sale price of the targeted products")
	ErrInvalidOfferWindow   = shared.NewDomainError("INVALID_OFFER_WINDOW", "Offer end date must be after start date")
)

// Offer is a scheduled discount applied automatically to a product or
// an entire category, independent of coupons. At most one offer applies
// per order line, chosen by the pricing resolver.
type Offer struct {
	shared.BaseAggregateRoot
	Name          string
	Scope         OfferScope
	TargetID      uuid.UUID // product ID or category ID depending on scope
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	StartDate     time.Time
	EndDate       time.Time
	IsActive      bool
	UsageCount    int64
}

// NewOffer creates a new offer with creation-time invariants enforced.
// Percentage offers may not exceed 100. Fixed offers are additionally
// validated against the targeted products' lowest sale price by the
// application layer, which has catalog access.
func NewOffer(name string, scope OfferScope, targetID uuid.UUID, discountType DiscountType, discountValue decimal.Decimal, startDate, endDate time.Time) (*Offer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_OFFER", "Offer name cannot be empty")
	}
	if !scope.IsValid() {
		return nil, shared.NewDomainError("INVALID_OFFER", "Unknown offer scope")
	}
	if targetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OFFER", "Offer target cannot be empty")
	}
	if !discountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_OFFER", "Unknown discount type")
	}
	if !discountValue.IsPositive() {
		return nil, shared.NewDomainError("INVALID_OFFER", "Discount value must be positive")
	}
	if discountType == DiscountTypePercentage && discountValue.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_OFFER", "Percentage discount cannot exceed 100")
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidOfferWindow
	}

	return &Offer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Scope:             scope,
		TargetID:          targetID,
		DiscountType:      discountType,
		DiscountValue:     discountValue,
		StartDate:         startDate,
		EndDate:           endDate,
		IsActive:          true,
	}, nil
}

// IsLiveAt reports whether the offer applies at the given instant
func (o *Offer) IsLiveAt(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	return !now.Before(o.StartDate) && !now.After(o.EndDate)
}

// SavingsOn computes the discount this offer yields on the given base
// price. Percentage offers scale with the price; fixed offers are flat
// amounts in the base price's currency. Savings never exceed the base
// price.
func (o *Offer) SavingsOn(basePrice valueobject.Money) valueobject.Money {
	var savings valueobject.Money
	switch o.DiscountType {
	case DiscountTypePercentage:
		savings = basePrice.CalculatePercentage(o.DiscountValue)
	case DiscountTypeFixed:
		fixed, err := valueobject.NewMoney(o.DiscountValue, basePrice.Currency())
		if err != nil {
			return valueobject.Zero(basePrice.Currency())
		}
		savings = fixed
	default:
		return valueobject.Zero(basePrice.Currency())
	}
	if greater, _ := savings.GreaterThan(basePrice); greater {
		return basePrice
	}
	return savings
}

// Deactivate turns the offer off without deleting it
func (o *Offer) Deactivate() {
	o.IsActive = false
	o.IncrementVersion()
}

// Activate turns the offer back on
func (o *Offer) Activate() {
	o.IsActive = true
	o.IncrementVersion()
}

// RecordUsage increments the offer's usage counter.
// Called once per order line the offer was applied to, after the
// owning order has been persisted.
func (o *Offer) RecordUsage() {
	o.UsageCount++
	o.IncrementVersion()
}
