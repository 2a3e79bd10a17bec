package promotion

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func makeCoupon(t *testing.T, couponType CouponType, value int64, minPurchase int64) *Coupon {
	t.Helper()
	now := time.Now()
	coupon, err := NewCoupon("save10", "test coupon", couponType, decimal.NewFromInt(value),
		valueobject.NewMoneyINRFromInt(minPurchase), 1, now.Add(-time.Hour), now.Add(24*time.Hour))
	require.NoError(t, err)
	return coupon
}

func TestNewCoupon_Validation(t *testing.T) {
	now := time.Now()

	t.Run("code is uppercased", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 10, 500)
		assert.Equal(t, "SAVE10", coupon.Code)
	})

	t.Run("percentage above 60 rejected", func(t *testing.T) {
		_, err := NewCoupon("BIG", "", CouponTypePercentage, decimal.NewFromInt(61),
			valueobject.ZeroINR(), 1, now, now.Add(time.Hour))
		assert.Error(t, err)
	})

	t.Run("end date must follow start date", func(t *testing.T) {
		_, err := NewCoupon("WINDOW", "", CouponTypeFixed, decimal.NewFromInt(50),
			valueobject.ZeroINR(), 1, now, now)
		assert.Error(t, err)
	})

	t.Run("empty code rejected", func(t *testing.T) {
		_, err := NewCoupon("  ", "", CouponTypeFixed, decimal.NewFromInt(50),
			valueobject.ZeroINR(), 1, now, now.Add(time.Hour))
		assert.Error(t, err)
	})
}

func TestCoupon_ValidateFor(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	subtotal := valueobject.NewMoneyINRFromInt(1000)

	t.Run("valid redemption passes", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 10, 500)
		assert.NoError(t, coupon.ValidateFor(userID, subtotal, 0, now))
	})

	t.Run("inactive coupon rejected", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 10, 500)
		coupon.Deactivate()
		assert.ErrorIs(t, coupon.ValidateFor(userID, subtotal, 0, now), ErrCouponInactive)
	})

	t.Run("expired coupon rejected", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 10, 500)
		assert.ErrorIs(t, coupon.ValidateFor(userID, subtotal, 0, coupon.EndDate.Add(time.Minute)), ErrCouponExpired)
	})

	t.Run("user outside specific set rejected", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 10, 500)
		coupon.RestrictTo([]uuid.UUID{uuid.New()})
		assert.ErrorIs(t, coupon.ValidateFor(userID, subtotal, 0, now), ErrCouponNotEligible)
	})

	t.Run("user inside specific set passes", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 10, 500)
		coupon.RestrictTo([]uuid.UUID{userID})
		assert.NoError(t, coupon.ValidateFor(userID, subtotal, 0, now))
	})

	t.Run("subtotal below minimum rejected", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 10, 500)
		low := valueobject.NewMoneyINRFromInt(499)
		assert.ErrorIs(t, coupon.ValidateFor(userID, low, 0, now), ErrMinPurchaseNotMet)
	})

	t.Run("per user limit enforced", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 10, 500)
		assert.ErrorIs(t, coupon.ValidateFor(userID, subtotal, 1, now), ErrUserUsageLimitReached)
	})

	t.Run("global limit enforced", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 10, 500)
		limit := int64(100)
		coupon.TotalUsageLimit = &limit
		coupon.CurrentUsageCount = 100
		assert.ErrorIs(t, coupon.ValidateFor(userID, subtotal, 0, now), ErrCouponExhausted)
	})
}

func TestCoupon_ComputeDiscount(t *testing.T) {
	t.Run("ten percent off one thousand", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 10, 500)
		discount := coupon.ComputeDiscount(valueobject.NewMoneyINRFromInt(1000))
		assert.True(t, discount.Equals(valueobject.NewMoneyINRFromInt(100)))
	})

	t.Run("fixed discount clamped to subtotal", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypeFixed, 500, 0)
		discount := coupon.ComputeDiscount(valueobject.NewMoneyINRFromInt(300))
		assert.True(t, discount.Equals(valueobject.NewMoneyINRFromInt(300)))
	})

	t.Run("max discount cap enforced", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 50, 0)
		maxDiscount := decimal.NewFromInt(200)
		coupon.MaxDiscount = &maxDiscount
		discount := coupon.ComputeDiscount(valueobject.NewMoneyINRFromInt(1000))
		assert.True(t, discount.Equals(valueobject.NewMoneyINRFromInt(200)))
	})

	t.Run("no cap when max discount unset", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypePercentage, 50, 0)
		discount := coupon.ComputeDiscount(valueobject.NewMoneyINRFromInt(1000))
		assert.True(t, discount.Equals(valueobject.NewMoneyINRFromInt(500)))
	})

	t.Run("fixed discount follows subtotal currency", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypeFixed, 50, 0)
		subtotal, err := valueobject.NewMoneyFromString("200", valueobject.USD)
		require.NoError(t, err)
		discount := coupon.ComputeDiscount(subtotal)
		assert.Equal(t, valueobject.USD, discount.Currency())
		assert.True(t, discount.Amount().Equal(decimal.NewFromInt(50)))
	})

	t.Run("clamps apply outside the default currency", func(t *testing.T) {
		coupon := makeCoupon(t, CouponTypeFixed, 500, 0)
		subtotal, err := valueobject.NewMoneyFromString("300", valueobject.USD)
		require.NoError(t, err)
		assert.True(t, coupon.ComputeDiscount(subtotal).Equals(subtotal))

		capped := makeCoupon(t, CouponTypePercentage, 50, 0)
		maxDiscount := decimal.NewFromInt(40)
		capped.MaxDiscount = &maxDiscount
		discount := capped.ComputeDiscount(subtotal)
		assert.Equal(t, valueobject.USD, discount.Currency())
		assert.True(t, discount.Amount().Equal(decimal.NewFromInt(40)))
	})
}
