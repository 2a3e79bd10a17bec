package catalog

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PriceQuote is the result of resolving the best discount for a single
// sellable unit at a point in time.
type PriceQuote struct {
	BasePrice      valueobject.Money
	FinalPrice     valueobject.Money
	DiscountAmount valueobject.Money
	OfferID        *uuid.UUID
}

// ResolveBestDiscount picks the best applicable offer for a product and
// returns the resulting quote. The candidates are the live product-scoped
// offers for the product and the live category-scoped offers for its
// category; within each scope the offer with the highest stored discount
// value is the candidate, then the two candidates are compared by the
// savings they actually yield on the base price. The product-scoped
// offer wins ties. Prices are rounded to whole currency units and the
// final price never goes below zero.
//
// Absent or expired offers simply yield a zero discount; this function
// never fails.
func ResolveBestDiscount(productOffers, categoryOffers []Offer, basePrice valueobject.Money, now time.Time) PriceQuote {
	base := basePrice.RoundUnit()

	productBest := bestLiveOffer(productOffers, OfferScopeProduct, now)
	categoryBest := bestLiveOffer(categoryOffers, OfferScopeCategory, now)

	var winner *Offer
	switch {
	case productBest == nil && categoryBest == nil:
		winner = nil
	case productBest == nil:
		winner = categoryBest
	case categoryBest == nil:
		winner = productBest
	default:
		productSavings := productBest.SavingsOn(base)
		categorySavings := categoryBest.SavingsOn(base)
		if greater, _ := categorySavings.GreaterThan(productSavings); greater {
			winner = categoryBest
		} else {
			winner = productBest
		}
	}

	if winner == nil {
		return PriceQuote{
			BasePrice:      base,
			FinalPrice:     base,
			DiscountAmount: valueobject.Zero(base.Currency()),
		}
	}

	discount := winner.SavingsOn(base).RoundUnit()
	final := base.MustSubtract(discount).ClampZero()
	offerID := winner.ID
	return PriceQuote{
		BasePrice:      base,
		FinalPrice:     final,
		DiscountAmount: discount,
		OfferID:        &offerID,
	}
}

// bestLiveOffer returns the live offer of the given scope with the
// highest stored discount value, or nil when none applies.
func bestLiveOffer(offers []Offer, scope OfferScope, now time.Time) *Offer {
	live := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if o.Scope == scope && o.IsLiveAt(now) {
			live = append(live, o)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].DiscountValue.GreaterThan(live[j].DiscountValue)
	})
	return &live[0]
}
