package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func TestRefundPolicy_CancelRefund(t *testing.T) {
	policy := DefaultRefundPolicy()

	t.Run("below threshold adds shipping refund", func(t *testing.T) {
		refund := policy.CancelRefund(valueobject.NewMoneyINRFromInt(1000))
		// 1000 * 1.05 + 100
		assert.True(t, refund.Equals(valueobject.NewMoneyINRFromInt(1150)))
	})

	t.Run("above threshold no shipping refund", func(t *testing.T) {
		refund := policy.CancelRefund(valueobject.NewMoneyINRFromInt(200000))
		// 200000 * 1.05, shipped free in the first place
		assert.True(t, refund.Equals(valueobject.NewMoneyINRFromInt(210000)))
	})
}

func TestRefundPolicy_ReturnRefund(t *testing.T) {
	policy := DefaultRefundPolicy()

	t.Run("withholds convenience fee", func(t *testing.T) {
		refund := policy.ReturnRefund(valueobject.NewMoneyINRFromInt(1000))
		// 1000 * 1.05 - 30
		assert.True(t, refund.Equals(valueobject.NewMoneyINRFromInt(1020)))
	})

	t.Run("never negative on tiny lines", func(t *testing.T) {
		refund := policy.ReturnRefund(valueobject.NewMoneyINRFromInt(10))
		// 10 * 1.05 = 11 rounded, minus 30 clamps to zero
		assert.True(t, refund.IsZero())
	})
}
