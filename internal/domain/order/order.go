package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PaymentMethod is how the customer pays for an order
type PaymentMethod string

const (
	PaymentMethodCOD      PaymentMethod = "COD"
	PaymentMethodRazorpay PaymentMethod = "RAZORPAY"
	PaymentMethodWallet   PaymentMethod = "WALLET"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodRazorpay || m == PaymentMethodWallet
}

// PaymentStatus tracks the money side of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Domain errors for order lifecycle operations
var (
	ErrItemNotFound        = shared.NewDomainError("ORDER_ITEM_NOT_FOUND", "Order item not found")
	ErrItemNotCancellable  = shared.NewDomainError("ITEM_NOT_CANCELLABLE", "Item can no longer be cancelled")
	ErrOrderNotCancellable = shared.NewDomainError("ORDER_NOT_CANCELLABLE", "Order can no longer be cancelled")
	ErrItemNotReturnable   = shared.NewDomainError("ITEM_NOT_RETURNABLE", "Item is not eligible for return")
	ErrNoPendingReturn     = shared.NewDomainError("NO_PENDING_RETURN", "Item has no pending return request")
	ErrInvalidTransition   = shared.NewDomainError("INVALID_STATUS_TRANSITION", "Status transition not allowed")
)

// Item is a denormalized snapshot of an ordered line. Name, image and
// unit price are copied at placement so catalog edits never rewrite
// order history. UnitPrice is the price actually charged.
type Item struct {
	shared.BaseEntity
	OrderID       uuid.UUID
	ProductID     uuid.UUID
	VariantID     uuid.UUID
	ProductName   string
	Image         string
	UnitPrice     valueobject.Money
	Quantity      int
	Status        ItemStatus
	OfferID       *uuid.UUID
	ReturnReason  string
	ReturnComment string
	ReturnImage   string
}

// LineTotal is the charged unit price times quantity
func (i *Item) LineTotal() valueobject.Money {
	return i.UnitPrice.MultiplyByInt(int64(i.Quantity))
}

// HistoryEntry is one append-only record of an order status change
type HistoryEntry struct {
	Status    Status    `json:"status"`
	Date      time.Time `json:"date"`
	Comment   string    `json:"comment,omitempty"`
	ChangedBy string    `json:"changed_by,omitempty"`
}

// Order is the aggregate root for a placed order. It is created once at
// checkout and thereafter mutated only through lifecycle methods; all
// amounts are immutable snapshots of what was actually charged.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string
	UserID          uuid.UUID
	Items           []Item
	ShippingAddress valueobject.Address
	CouponID        *uuid.UUID
	CouponCode      string
	Subtotal        valueobject.Money
	Discount        valueobject.Money
	Tax             valueobject.Money
	Shipping        valueobject.Money
	FinalAmount     valueobject.Money
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	GatewayOrderID  string
	IdempotencyKey  string
	Status          Status
	History         []HistoryEntry
}

// NewOrderNumber formats a human-readable order number from a sequence
func NewOrderNumber(seq int64, now time.Time) string {
	return fmt.Sprintf("OD-%d-%05d", now.Year(), seq)
}

// NewOrder creates an order in the pending state. Items are appended
// with AddItem before the order is persisted.
func NewOrder(orderNumber string, userID uuid.UUID, address valueobject.Address, method PaymentMethod, idempotencyKey string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if address.IsZero() {
		return nil, shared.ErrAddressNotFound
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		Items:             []Item{},
		ShippingAddress:   address,
		Subtotal:          valueobject.ZeroINR(),
		Discount:          valueobject.ZeroINR(),
		Tax:               valueobject.ZeroINR(),
		Shipping:          valueobject.ZeroINR(),
		FinalAmount:       valueobject.ZeroINR(),
		PaymentMethod:     method,
		PaymentStatus:     PaymentStatusPending,
		IdempotencyKey:    idempotencyKey,
		Status:            StatusPending,
		History:           []HistoryEntry{},
	}
	o.appendHistory(StatusPending, "Order placed", "")
	return o, nil
}

// AddItem appends a denormalized line snapshot to the order
func (o *Order) AddItem(productID, variantID uuid.UUID, productName, image string, unitPrice valueobject.Money, quantity int, offerID *uuid.UUID) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	o.Items = append(o.Items, Item{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		VariantID:   variantID,
		ProductName: productName,
		Image:       image,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Status:      ItemStatusPlaced,
		OfferID:     offerID,
	})
	return nil
}

// SetAmounts records the priced totals at placement
func (o *Order) SetAmounts(subtotal, discount, tax, shipping, finalAmount valueobject.Money) {
	o.Subtotal = subtotal
	o.Discount = discount
	o.Tax = tax
	o.Shipping = shipping
	o.FinalAmount = finalAmount
}

// ApplyCoupon records which coupon was redeemed for this order
func (o *Order) ApplyCoupon(couponID uuid.UUID, code string) {
	o.CouponID = &couponID
	o.CouponCode = code
}

// FindItem returns the item with the given ID, or nil
func (o *Order) FindItem(itemID uuid.UUID) *Item {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// MarkPaid records successful payment
func (o *Order) MarkPaid(gatewayOrderID string) {
	o.PaymentStatus = PaymentStatusPaid
	if gatewayOrderID != "" {
		o.GatewayOrderID = gatewayOrderID
	}
	o.IncrementVersion()
}

// MarkPaymentFailed records a failed payment attempt
func (o *Order) MarkPaymentFailed() {
	o.PaymentStatus = PaymentStatusFailed
	o.IncrementVersion()
}

// CancelItem marks a single item cancelled and resyncs the order
// status. Items already delivered, terminal, or awaiting a return
// decision cannot be cancelled.
func (o *Order) CancelItem(itemID uuid.UUID, comment string) (*Item, error) {
	item := o.FindItem(itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if !item.Status.CanTransitionTo(ItemStatusCancelled) {
		return nil, ErrItemNotCancellable
	}
	item.Status = ItemStatusCancelled
	o.resync(comment, "")
	return item, nil
}

// CancelAll cancels every remaining item. Only permitted while the
// order is still pending or processing.
func (o *Order) CancelAll(comment string) ([]Item, error) {
	if o.Status != StatusPending && o.Status != StatusProcessing {
		return nil, ErrOrderNotCancellable
	}
	cancelled := make([]Item, 0, len(o.Items))
	for i := range o.Items {
		if o.Items[i].Status.CanTransitionTo(ItemStatusCancelled) {
			o.Items[i].Status = ItemStatusCancelled
			cancelled = append(cancelled, o.Items[i])
		}
	}
	if len(cancelled) == 0 {
		return nil, ErrOrderNotCancellable
	}
	o.resync(comment, "")
	return cancelled, nil
}

// RequestReturn transitions an eligible item to return_requested and
// records the customer's reason, comment and evidence image reference.
// The refund happens only on approval.
func (o *Order) RequestReturn(itemID uuid.UUID, reason, comment, image string) (*Item, error) {
	item := o.FindItem(itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if !item.Status.CanTransitionTo(ItemStatusReturnRequested) {
		return nil, ErrItemNotReturnable
	}
	item.Status = ItemStatusReturnRequested
	item.ReturnReason = reason
	item.ReturnComment = comment
	item.ReturnImage = image
	o.resync("Return requested: "+reason, "")
	return item, nil
}

// ApproveReturn marks a pending return as returned
func (o *Order) ApproveReturn(itemID uuid.UUID, adminComment string) (*Item, error) {
	item := o.FindItem(itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.Status != ItemStatusReturnRequested {
		return nil, ErrNoPendingReturn
	}
	item.Status = ItemStatusReturned
	o.resync(adminComment, "admin")
	return item, nil
}

// RejectReturn marks a pending return as rejected. No money moves.
func (o *Order) RejectReturn(itemID uuid.UUID, adminComment string) (*Item, error) {
	item := o.FindItem(itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.Status != ItemStatusReturnRequested {
		return nil, ErrNoPendingReturn
	}
	item.Status = ItemStatusReturnRejected
	o.resync(adminComment, "admin")
	return item, nil
}

// AdvanceShipping moves every active item forward to the target
// shipping status. Used by back-office fulfilment updates.
func (o *Order) AdvanceShipping(target ItemStatus, comment string) error {
	if _, ok := shippingRank[target]; !ok {
		return ErrInvalidTransition
	}
	moved := false
	for i := range o.Items {
		if o.Items[i].Status.CanTransitionTo(target) {
			o.Items[i].Status = target
			moved = true
		}
	}
	if !moved {
		return ErrInvalidTransition
	}
	o.resync(comment, "admin")
	return nil
}

// MarkRefunded records that the full paid amount went back to the wallet
func (o *Order) MarkRefunded() {
	o.PaymentStatus = PaymentStatusRefunded
	o.IncrementVersion()
}

// ReduceAmounts shrinks the order totals after an unpaid (COD) item
// cancellation. finalAmount stays non-negative.
func (o *Order) ReduceAmounts(subtotal, tax, shipping, finalAmount valueobject.Money) {
	o.Subtotal = subtotal
	o.Tax = tax
	o.Shipping = shipping
	o.FinalAmount = finalAmount.ClampZero()
	o.IncrementVersion()
}

// ActiveItems returns the items still in the fulfilment pipeline
func (o *Order) ActiveItems() []Item {
	active := make([]Item, 0, len(o.Items))
	for _, item := range o.Items {
		if item.Status.IsActive() {
			active = append(active, item)
		}
	}
	return active
}

// ItemStatuses returns the multiset of item statuses
func (o *Order) ItemStatuses() []ItemStatus {
	statuses := make([]ItemStatus, len(o.Items))
	for i, item := range o.Items {
		statuses[i] = item.Status
	}
	return statuses
}

// resync recomputes the derived order status from item truth and logs
// the change. Runs after every item-level mutation.
func (o *Order) resync(comment, changedBy string) {
	derived := DeriveStatus(o.ItemStatuses())
	if derived != o.Status {
		o.Status = derived
		o.appendHistory(derived, comment, changedBy)
	} else if comment != "" {
		o.appendHistory(derived, comment, changedBy)
	}
	o.IncrementVersion()
}

func (o *Order) appendHistory(status Status, comment, changedBy string) {
	o.History = append(o.History, HistoryEntry{
		Status:    status,
		Date:      time.Now().UTC(),
		Comment:   comment,
		ChangedBy: changedBy,
	})
}
