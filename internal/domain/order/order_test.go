package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func testAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("Asha Kumar", "9876543210", "12 MG Road", "", "Bengaluru", "Karnataka", "560001", valueobject.AddressTypeHome)
	require.NoError(t, err)
	return addr
}

func makeOrder(t *testing.T, items int) *Order {
	t.Helper()
	o, err := NewOrder(NewOrderNumber(42, time.Now()), uuid.New(), testAddress(t), PaymentMethodCOD, "")
	require.NoError(t, err)
	for i := 0; i < items; i++ {
		require.NoError(t, o.AddItem(uuid.New(), uuid.New(), "item", "img", valueobject.NewMoneyINRFromInt(500), 1, nil))
	}
	return o
}

func TestNewOrder(t *testing.T) {
	o := makeOrder(t, 2)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	assert.Len(t, o.Items, 2)
	require.Len(t, o.History, 1)
	assert.Equal(t, StatusPending, o.History[0].Status)
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "OD-2026-00042", NewOrderNumber(42, now))
}

func TestNewOrder_Validation(t *testing.T) {
	addr := testAddress(t)

	_, err := NewOrder("OD-2026-00001", uuid.Nil, addr, PaymentMethodCOD, "")
	assert.Error(t, err)

	_, err = NewOrder("OD-2026-00001", uuid.New(), valueobject.Address{}, PaymentMethodCOD, "")
	assert.Error(t, err)

	_, err = NewOrder("OD-2026-00001", uuid.New(), addr, PaymentMethod("UPI"), "")
	assert.Error(t, err)
}

func TestOrder_CancelItem(t *testing.T) {
	o := makeOrder(t, 2)

	item, err := o.CancelItem(o.Items[0].ID, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, ItemStatusCancelled, item.Status)

	// One item still active keeps the order pending.
	assert.Equal(t, StatusPending, o.Status)

	_, err = o.CancelItem(o.Items[1].ID, "")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestOrder_CancelItem_DeliveredRejected(t *testing.T) {
	o := makeOrder(t, 1)
	require.NoError(t, o.AdvanceShipping(ItemStatusDelivered, "delivered"))

	_, err := o.CancelItem(o.Items[0].ID, "")
	assert.ErrorIs(t, err, ErrItemNotCancellable)
}

func TestOrder_CancelAll(t *testing.T) {
	o := makeOrder(t, 3)

	cancelled, err := o.CancelAll("cancel everything")
	require.NoError(t, err)
	assert.Len(t, cancelled, 3)
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestOrder_CancelAll_OnlyWhilePendingOrProcessing(t *testing.T) {
	o := makeOrder(t, 1)
	require.NoError(t, o.AdvanceShipping(ItemStatusShipped, "shipped"))

	_, err := o.CancelAll("too late")
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestOrder_ReturnFlow(t *testing.T) {
	o := makeOrder(t, 2)
	require.NoError(t, o.AdvanceShipping(ItemStatusDelivered, "delivered"))

	item, err := o.RequestReturn(o.Items[0].ID, "damaged", "screen cracked", "https://cdn.example.com/returns/rt-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, ItemStatusReturnRequested, item.Status)
	assert.Equal(t, "damaged", item.ReturnReason)
	assert.Equal(t, "https://cdn.example.com/returns/rt-1.jpg", item.ReturnImage)
	assert.Equal(t, StatusReturnRequested, o.Status)

	_, err = o.ApproveReturn(o.Items[0].ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, ItemStatusReturned, o.Items[0].Status)

	// The other item is still delivered, so the order resyncs there.
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestOrder_RejectReturn(t *testing.T) {
	o := makeOrder(t, 1)
	require.NoError(t, o.AdvanceShipping(ItemStatusDelivered, "delivered"))
	_, err := o.RequestReturn(o.Items[0].ID, "no longer needed", "", "")
	require.NoError(t, err)

	_, err = o.RejectReturn(o.Items[0].ID, "outside return window")
	require.NoError(t, err)
	assert.Equal(t, ItemStatusReturnRejected, o.Items[0].Status)
	assert.Equal(t, StatusReturnRejected, o.Status)
}

func TestOrder_ApproveReturn_RequiresPendingRequest(t *testing.T) {
	o := makeOrder(t, 1)
	_, err := o.ApproveReturn(o.Items[0].ID, "")
	assert.ErrorIs(t, err, ErrNoPendingReturn)
}

func TestOrder_AdvanceShipping(t *testing.T) {
	o := makeOrder(t, 2)

	require.NoError(t, o.AdvanceShipping(ItemStatusProcessing, ""))
	assert.Equal(t, StatusProcessing, o.Status)

	require.NoError(t, o.AdvanceShipping(ItemStatusShipped, ""))
	require.NoError(t, o.AdvanceShipping(ItemStatusOutForDelivery, ""))
	require.NoError(t, o.AdvanceShipping(ItemStatusDelivered, ""))
	assert.Equal(t, StatusDelivered, o.Status)

	// Backwards moves are refused.
	err := o.AdvanceShipping(ItemStatusShipped, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrder_AdvanceShipping_SkipsTerminalItems(t *testing.T) {
	o := makeOrder(t, 2)
	_, err := o.CancelItem(o.Items[0].ID, "")
	require.NoError(t, err)

	require.NoError(t, o.AdvanceShipping(ItemStatusShipped, ""))
	assert.Equal(t, ItemStatusCancelled, o.Items[0].Status)
	assert.Equal(t, ItemStatusShipped, o.Items[1].Status)
	assert.Equal(t, StatusShipped, o.Status)
}

func TestOrder_HistoryIsAppendOnly(t *testing.T) {
	o := makeOrder(t, 1)
	initial := len(o.History)

	require.NoError(t, o.AdvanceShipping(ItemStatusProcessing, "packing"))
	require.NoError(t, o.AdvanceShipping(ItemStatusShipped, "left warehouse"))

	assert.Equal(t, initial+2, len(o.History))
	assert.Equal(t, StatusShipped, o.History[len(o.History)-1].Status)
}

func TestOrder_PaymentTransitions(t *testing.T) {
	o := makeOrder(t, 1)

	o.MarkPaid("rzp_order_123")
	assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
	assert.Equal(t, "rzp_order_123", o.GatewayOrderID)

	o.MarkRefunded()
	assert.Equal(t, PaymentStatusRefunded, o.PaymentStatus)
}

func TestOrder_ReduceAmountsClampsToZero(t *testing.T) {
	o := makeOrder(t, 1)
	o.SetAmounts(
		valueobject.NewMoneyINRFromInt(500),
		valueobject.ZeroINR(),
		valueobject.NewMoneyINRFromInt(25),
		valueobject.NewMoneyINRFromInt(100),
		valueobject.NewMoneyINRFromInt(625),
	)

	o.ReduceAmounts(valueobject.ZeroINR(), valueobject.ZeroINR(), valueobject.ZeroINR(), valueobject.NewMoneyINRFromInt(-5))
	assert.True(t, o.FinalAmount.IsZero())
	assert.False(t, o.FinalAmount.IsNegative())
}

func TestOrder_LineTotal(t *testing.T) {
	o := makeOrder(t, 0)
	require.NoError(t, o.AddItem(uuid.New(), uuid.New(), "shoes", "img", valueobject.NewMoneyINRFromInt(450), 2, nil))
	assert.True(t, o.Items[0].LineTotal().Equals(valueobject.NewMoneyINRFromInt(900)))
}
