package wallet

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func TestWallet_CreditAppendsOneTransaction(t *testing.T) {
	w, err := New(uuid.New())
	require.NoError(t, err)

	tx, err := w.Credit(valueobject.NewMoneyINRFromInt(1150), ReasonRefund, nil, "full refund")
	require.NoError(t, err)

	assert.True(t, w.Balance.Equals(valueobject.NewMoneyINRFromInt(1150)))
	assert.Len(t, w.Transactions, 1)
	assert.Equal(t, TransactionTypeCredit, tx.Type)
	assert.Equal(t, ReasonRefund, tx.Reason)
}

func TestWallet_DebitFailsClosed(t *testing.T) {
	w, err := New(uuid.New())
	require.NoError(t, err)
	_, err = w.Credit(valueobject.NewMoneyINRFromInt(100), ReasonReferralBonus, nil, "")
	require.NoError(t, err)

	_, err = w.Debit(valueobject.NewMoneyINRFromInt(150), ReasonOrderPayment, nil, "")
	assert.ErrorIs(t, err, shared.ErrInsufficientBalance)

	// No partial debit, no stray transaction.
	assert.True(t, w.Balance.Equals(valueobject.NewMoneyINRFromInt(100)))
	assert.Len(t, w.Transactions, 1)
}

func TestWallet_BalanceEqualsSignedSumOfTransactions(t *testing.T) {
	w, err := New(uuid.New())
	require.NoError(t, err)

	orderID := uuid.New()
	_, err = w.Credit(valueobject.NewMoneyINRFromInt(2000), ReasonAdminAdjustment, nil, "")
	require.NoError(t, err)
	_, err = w.Debit(valueobject.NewMoneyINRFromInt(1150), ReasonOrderPayment, &orderID, "")
	require.NoError(t, err)
	_, err = w.Credit(valueobject.NewMoneyINRFromInt(300), ReasonRefund, &orderID, "")
	require.NoError(t, err)

	sum := valueobject.ZeroINR()
	for i := range w.Transactions {
		sum = sum.MustAdd(w.Transactions[i].SignedAmount())
	}
	assert.True(t, w.Balance.Equals(sum))
	assert.True(t, w.Balance.Equals(valueobject.NewMoneyINRFromInt(1150)))
}

func TestWallet_RejectsNonPositiveAmounts(t *testing.T) {
	w, err := New(uuid.New())
	require.NoError(t, err)

	_, err = w.Credit(valueobject.ZeroINR(), ReasonRefund, nil, "")
	assert.Error(t, err)

	_, err = w.Debit(valueobject.NewMoneyINRFromInt(-5), ReasonOrderPayment, nil, "")
	assert.Error(t, err)
	assert.Empty(t, w.Transactions)
}

func TestWallet_RejectsUnknownReason(t *testing.T) {
	w, err := New(uuid.New())
	require.NoError(t, err)

	_, err = w.Credit(valueobject.NewMoneyINRFromInt(10), Reason("cashback"), nil, "")
	assert.Error(t, err)
}
