package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Repository provides access to the order aggregate. Orders are always
// loaded and saved with their items and history.
type Repository interface {
	shared.Repository[Order]

	// FindByIDForUser loads an order only if it belongs to the user.
	// Returns shared.ErrNotFound otherwise.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Order, error)

	// FindByUser returns a user's orders, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[Order], error)

	// FindByIdempotencyKey resolves the order previously created for a
	// checkout idempotency key, or shared.ErrNotFound
	FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*Order, error)

	// CountUserOrdersWithCoupon counts a user's orders that redeemed
	// the coupon code, excluding cancelled orders and failed payments.
	// Drives the per-user coupon usage limit.
	CountUserOrdersWithCoupon(ctx context.Context, userID uuid.UUID, couponCode string) (int64, error)

	// NextOrderSequence returns the next value of the order number
	// sequence
	NextOrderSequence(ctx context.Context) (int64, error)

	// SaveWithLock persists the order with an optimistic version check.
	// Returns shared.ErrConcurrencyConflict when another writer got
	// there first.
	SaveWithLock(ctx context.Context, o *Order, expectedVersion int) error
}
