package promotion

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Repository provides access to coupons
type Repository interface {
	shared.Repository[Coupon]

	// FindByCode resolves a coupon by its code, case-insensitively.
	// Returns shared.ErrNotFound when no coupon has the code.
	FindByCode(ctx context.Context, code string) (*Coupon, error)

	// IncrementUsage atomically bumps a coupon's usage counter, bounded
	// by its total usage limit. Returns ErrCouponExhausted when the
	// limit has already been reached; the row is left untouched.
	IncrementUsage(ctx context.Context, couponID uuid.UUID) error
}
