package order

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// RefundPolicy holds the named refund constants. The cancel path and
// the return-approval path deliberately use different constants; both
// are configurable rather than buried in the arithmetic.
type RefundPolicy struct {
	// TaxRate mirrors the checkout tax rate so refunds cover the tax
	// that was charged on the line
	TaxRate decimal.Decimal

	// FreeShippingThreshold mirrors the checkout threshold; lines above
	// it were shipped free, so nothing is refunded for shipping
	FreeShippingThreshold valueobject.Money

	// ShippingFee mirrors the checkout shipping fee. It is the charge
	// recomputed on unpaid orders after a cancellation, not a refund.
	ShippingFee valueobject.Money

	// CancelShippingRefund is the flat shipping refund added when a
	// paid item below the threshold is cancelled
	CancelShippingRefund valueobject.Money

	// ReturnConvenienceFee is withheld from the refund when a return
	// is approved
	ReturnConvenienceFee valueobject.Money
}

// DefaultRefundPolicy returns the production refund constants
func DefaultRefundPolicy() RefundPolicy {
	return RefundPolicy{
		TaxRate:               decimal.NewFromFloat(0.05),
		FreeShippingThreshold: valueobject.NewMoneyINRFromInt(100000),
		ShippingFee:           valueobject.NewMoneyINRFromInt(100),
		CancelShippingRefund:  valueobject.NewMoneyINRFromInt(100),
		ReturnConvenienceFee:  valueobject.NewMoneyINRFromInt(30),
	}
}

// CancelRefund computes the wallet credit for a cancelled paid item:
// the tax-inclusive line amount plus the shipping refund. Lines above
// the free-shipping threshold get no shipping refund.
func (p RefundPolicy) CancelRefund(lineTotal valueobject.Money) valueobject.Money {
	withTax := lineTotal.Multiply(decimal.NewFromInt(1).Add(p.TaxRate)).RoundUnit()
	if over, _ := withTax.GreaterThan(p.FreeShippingThreshold); over {
		return withTax
	}
	return withTax.MustAdd(p.CancelShippingRefund)
}

// ReturnRefund computes the wallet credit for an approved return: the
// tax-inclusive line amount minus the convenience fee, never negative.
func (p RefundPolicy) ReturnRefund(lineTotal valueobject.Money) valueobject.Money {
	withTax := lineTotal.Multiply(decimal.NewFromInt(1).Add(p.TaxRate)).RoundUnit()
	return withTax.MustSubtract(p.ReturnConvenienceFee).ClampZero()
}
