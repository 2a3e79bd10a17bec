package cart

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PricingPolicy holds the storefront-wide checkout pricing constants.
// Values come from configuration; the defaults match production.
type PricingPolicy struct {
	// TaxRate is the flat tax applied to the subtotal (0.05 = 5%)
	TaxRate decimal.Decimal

	// FreeShippingThreshold waives the shipping fee when the subtotal
	// strictly exceeds it
	FreeShippingThreshold valueobject.Money

	// ShippingFee is the flat fee below the free-shipping threshold
	ShippingFee valueobject.Money
}

// DefaultPricingPolicy returns the production pricing constants
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRate:               decimal.NewFromFloat(0.05),
		FreeShippingThreshold: valueobject.NewMoneyINRFromInt(100000),
		ShippingFee:           valueobject.NewMoneyINRFromInt(100),
	}
}

// TaxOn computes the flat tax on a subtotal, rounded to a whole unit
func (p PricingPolicy) TaxOn(subtotal valueobject.Money) valueobject.Money {
	return subtotal.Multiply(p.TaxRate).RoundUnit()
}

// ShippingOn computes the shipping fee for a subtotal
func (p PricingPolicy) ShippingOn(subtotal valueobject.Money) valueobject.Money {
	if over, _ := subtotal.GreaterThan(p.FreeShippingThreshold); over {
		return valueobject.Zero(subtotal.Currency())
	}
	return p.ShippingFee
}
