package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// MaxQuantityPerLine caps how many units of a single variant one cart
// line may hold, regardless of available stock.
const MaxQuantityPerLine = 5

// Line is a single variant in a user's cart. Lines never store prices;
// the cart valuator re-resolves unit prices on every read so stale
// offers cannot leak into checkout.
type Line struct {
	shared.BaseEntity
	UserID    uuid.UUID
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int
}

// NewLine creates a cart line for a user. availableStock bounds the
// quantity together with MaxQuantityPerLine.
func NewLine(userID, productID, variantID uuid.UUID, quantity, availableStock int) (*Line, error) {
	if userID == uuid.Nil || productID == uuid.Nil || variantID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	line := &Line{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		VariantID:  variantID,
	}
	if err := line.SetQuantity(quantity, availableStock); err != nil {
		return nil, err
	}
	return line, nil
}

// SetQuantity updates the line quantity within [1, min(MaxQuantityPerLine, stock)]
func (l *Line) SetQuantity(quantity, availableStock int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if quantity > MaxQuantityPerLine {
		return shared.NewDomainError("QUANTITY_LIMIT_EXCEEDED", "Quantity exceeds the per-item limit")
	}
	if quantity > availableStock {
		return shared.ErrInsufficientStock
	}
	l.Quantity = quantity
	return nil
}

// Repository provides access to cart lines
type Repository interface {
	// FindByUser returns all cart lines for a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Line, error)

	// FindLine returns the user's line for a variant, or shared.ErrNotFound
	FindLine(ctx context.Context, userID, variantID uuid.UUID) (*Line, error)

	// Save inserts or updates a cart line
	Save(ctx context.Context, line *Line) error

	// Delete removes a single cart line
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes all of a user's cart lines, used after a
	// successful order placement
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
