package order

// Status is the order-level status. It is a projection derived from
// the item statuses, resynchronized after every item-level mutation.
type Status string

const (
	StatusPending         Status = "pending"
	StatusProcessing      Status = "processing"
	StatusShipped         Status = "shipped"
	StatusOutForDelivery  Status = "out_for_delivery"
	StatusDelivered       Status = "delivered"
	StatusCancelled       Status = "cancelled"
	StatusReturnRequested Status = "return_requested"
	StatusReturned        Status = "returned"
	StatusReturnRejected  Status = "return_rejected"
)

// ItemStatus is the per-line status and the source of truth for the
// order's lifecycle.
type ItemStatus string

const (
	ItemStatusPlaced          ItemStatus = "placed"
	ItemStatusProcessing      ItemStatus = "processing"
	ItemStatusShipped         ItemStatus = "shipped"
	ItemStatusOutForDelivery  ItemStatus = "out_for_delivery"
	ItemStatusDelivered       ItemStatus = "delivered"
	ItemStatusCancelled       ItemStatus = "cancelled"
	ItemStatusReturnRequested ItemStatus = "return_requested"
	ItemStatusReturned        ItemStatus = "returned"
	ItemStatusReturnRejected  ItemStatus = "return_rejected"
)

// shippingRank orders the active item statuses by how far along the
// fulfilment pipeline they are.
var shippingRank = map[ItemStatus]int{
	ItemStatusPlaced:         1,
	ItemStatusProcessing:     2,
	ItemStatusShipped:        3,
	ItemStatusOutForDelivery: 4,
	ItemStatusDelivered:      5,
}

// IsActive reports whether the item is still in the fulfilment pipeline
func (s ItemStatus) IsActive() bool {
	_, ok := shippingRank[s]
	return ok
}

// IsTerminal reports whether the item can no longer change state
func (s ItemStatus) IsTerminal() bool {
	return s == ItemStatusCancelled || s == ItemStatusReturned || s == ItemStatusReturnRejected
}

// CanTransitionTo checks if an item status transition is allowed
func (s ItemStatus) CanTransitionTo(target ItemStatus) bool {
	if s == target {
		return false
	}
	switch target {
	case ItemStatusProcessing, ItemStatusShipped, ItemStatusOutForDelivery, ItemStatusDelivered:
		// Shipping only moves forward, one or more steps at a time.
		return s.IsActive() && shippingRank[target] > shippingRank[s]
	case ItemStatusCancelled:
		return s != ItemStatusDelivered && !s.IsTerminal() && s != ItemStatusReturnRequested
	case ItemStatusReturnRequested:
		return s == ItemStatusDelivered || s == ItemStatusPlaced || s == ItemStatusShipped
	case ItemStatusReturned, ItemStatusReturnRejected:
		return s == ItemStatusReturnRequested
	}
	return false
}

// orderStatusFor maps an active item status to the order status it
// projects to.
var orderStatusFor = map[ItemStatus]Status{
	ItemStatusPlaced:         StatusPending,
	ItemStatusProcessing:     StatusProcessing,
	ItemStatusShipped:        StatusShipped,
	ItemStatusOutForDelivery: StatusOutForDelivery,
	ItemStatusDelivered:      StatusDelivered,
}

// DeriveStatus computes the order-level status from the item statuses.
// Pure function; the resolution order is:
//  1. any item awaiting a return decision keeps the order in
//     return_requested
//  2. all items cancelled means the order is cancelled
//  3. otherwise the most advanced active item drives the status
//  4. no active items left: returned if anything was returned,
//     return_rejected otherwise
func DeriveStatus(itemStatuses []ItemStatus) Status {
	if len(itemStatuses) == 0 {
		return StatusPending
	}

	allCancelled := true
	anyReturnRequested := false
	anyReturned := false
	mostAdvanced := ItemStatus("")
	for _, s := range itemStatuses {
		if s != ItemStatusCancelled {
			allCancelled = false
		}
		switch {
		case s == ItemStatusReturnRequested:
			anyReturnRequested = true
		case s == ItemStatusReturned:
			anyReturned = true
		case s.IsActive():
			if mostAdvanced == "" || shippingRank[s] > shippingRank[mostAdvanced] {
				mostAdvanced = s
			}
		}
	}

	switch {
	case anyReturnRequested:
		return StatusReturnRequested
	case allCancelled:
		return StatusCancelled
	case mostAdvanced != "":
		return orderStatusFor[mostAdvanced]
	case anyReturned:
		return StatusReturned
	default:
		return StatusReturnRejected
	}
}
