package notification

import "context"

// OrderPlacedNotice carries what the order confirmation message needs
type OrderPlacedNotice struct {
	UserID      string
	OrderNumber string
	FinalAmount string
}

// OrderEventNotice covers cancellation, return and refund messages
type OrderEventNotice struct {
	UserID      string
	OrderNumber string
	Event       string
	Detail      string
}

// Sender dispatches customer notifications. Delivery is fire-and-forget;
// the order flows never wait on it and never fail because of it.
type Sender interface {
	SendOrderPlaced(ctx context.Context, notice OrderPlacedNotice)
	SendOrderEvent(ctx context.Context, notice OrderEventNotice)
}
