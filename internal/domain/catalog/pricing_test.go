package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func makeOffer(t *testing.T, scope OfferScope, discountType DiscountType, value int64, now time.Time) Offer {
	t.Helper()
	offer, err := NewOffer("test offer", scope, uuid.New(), discountType, decimal.NewFromInt(value), now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	return *offer
}

func TestResolveBestDiscount_NoOffers(t *testing.T) {
	now := time.Now()
	base := valueobject.NewMoneyINRFromInt(1000)

	quote := ResolveBestDiscount(nil, nil, base, now)

	assert.True(t, quote.FinalPrice.Equals(base))
	assert.True(t, quote.DiscountAmount.IsZero())
	assert.Nil(t, quote.OfferID)
}

func TestResolveBestDiscount_ProductOfferOnly(t *testing.T) {
	now := time.Now()
	base := valueobject.NewMoneyINRFromInt(1000)
	productOffer := makeOffer(t, OfferScopeProduct, DiscountTypePercentage, 10, now)

	quote := ResolveBestDiscount([]Offer{productOffer}, nil, base, now)

	assert.True(t, quote.DiscountAmount.Equals(valueobject.NewMoneyINRFromInt(100)))
	assert.True(t, quote.FinalPrice.Equals(valueobject.NewMoneyINRFromInt(900)))
	require.NotNil(t, quote.OfferID)
	assert.Equal(t, productOffer.ID, *quote.OfferID)
}

func TestResolveBestDiscount_CategoryWinsOnGreaterSavings(t *testing.T) {
	now := time.Now()
	base := valueobject.NewMoneyINRFromInt(1000)
	productOffer := makeOffer(t, OfferScopeProduct, DiscountTypePercentage, 10, now)
	categoryOffer := makeOffer(t, OfferScopeCategory, DiscountTypePercentage, 20, now)

	quote := ResolveBestDiscount([]Offer{productOffer}, []Offer{categoryOffer}, base, now)

	assert.True(t, quote.DiscountAmount.Equals(valueobject.NewMoneyINRFromInt(200)))
	require.NotNil(t, quote.OfferID)
	assert.Equal(t, categoryOffer.ID, *quote.OfferID)
}

func TestResolveBestDiscount_ProductWinsTies(t *testing.T) {
	now := time.Now()
	base := valueobject.NewMoneyINRFromInt(1000)
	productOffer := makeOffer(t, OfferScopeProduct, DiscountTypePercentage, 15, now)
	categoryOffer := makeOffer(t, OfferScopeCategory, DiscountTypePercentage, 15, now)

	quote := ResolveBestDiscount([]Offer{productOffer}, []Offer{categoryOffer}, base, now)

	require.NotNil(t, quote.OfferID)
	assert.Equal(t, productOffer.ID, *quote.OfferID)
}

func TestResolveBestDiscount_RanksByStoredDiscountValueWithinScope(t *testing.T) {
	now := time.Now()
	base := valueobject.NewMoneyINRFromInt(1000)
	small := makeOffer(t, OfferScopeProduct, DiscountTypePercentage, 5, now)
	big := makeOffer(t, OfferScopeProduct, DiscountTypePercentage, 25, now)

	quote := ResolveBestDiscount([]Offer{small, big}, nil, base, now)

	require.NotNil(t, quote.OfferID)
	assert.Equal(t, big.ID, *quote.OfferID)
	assert.True(t, quote.DiscountAmount.Equals(valueobject.NewMoneyINRFromInt(250)))
}

func TestResolveBestDiscount_ExpiredOfferIgnored(t *testing.T) {
	now := time.Now()
	base := valueobject.NewMoneyINRFromInt(1000)
	expired, err := NewOffer("old", OfferScopeProduct, uuid.New(), DiscountTypePercentage, decimal.NewFromInt(50), now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	require.NoError(t, err)

	quote := ResolveBestDiscount([]Offer{*expired}, nil, base, now)

	assert.True(t, quote.DiscountAmount.IsZero())
	assert.Nil(t, quote.OfferID)
}

func TestResolveBestDiscount_InactiveOfferIgnored(t *testing.T) {
	now := time.Now()
	base := valueobject.NewMoneyINRFromInt(1000)
	offer := makeOffer(t, OfferScopeProduct, DiscountTypePercentage, 50, now)
	offer.Deactivate()

	quote := ResolveBestDiscount([]Offer{offer}, nil, base, now)

	assert.True(t, quote.DiscountAmount.IsZero())
}

func TestResolveBestDiscount_FixedDiscountNeverBelowZero(t *testing.T) {
	now := time.Now()
	base := valueobject.NewMoneyINRFromInt(40)
	offer := makeOffer(t, OfferScopeProduct, DiscountTypeFixed, 50, now)

	quote := ResolveBestDiscount([]Offer{offer}, nil, base, now)

	assert.False(t, quote.FinalPrice.IsNegative())
	assert.True(t, quote.FinalPrice.IsZero())
	assert.True(t, quote.DiscountAmount.Equals(valueobject.NewMoneyINRFromInt(40)))
}

func TestResolveBestDiscount_Idempotent(t *testing.T) {
	now := time.Now()
	base := valueobject.NewMoneyINRFromInt(777)
	offers := []Offer{makeOffer(t, OfferScopeProduct, DiscountTypePercentage, 13, now)}

	first := ResolveBestDiscount(offers, nil, base, now)
	second := ResolveBestDiscount(offers, nil, base, now)

	assert.True(t, first.FinalPrice.Equals(second.FinalPrice))
	assert.True(t, first.DiscountAmount.Equals(second.DiscountAmount))
}
