package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Address is a saved entry in a user's address book. Orders copy the
// embedded value object at placement; editing or deleting a saved
// address never touches placed orders.
type Address struct {
	shared.BaseEntity
	UserID    uuid.UUID
	Address   valueobject.Address
	IsDefault bool
}

// NewAddress saves a validated address for a user
func NewAddress(userID uuid.UUID, addr valueobject.Address) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if addr.IsZero() {
		return nil, shared.ErrInvalidInput
	}
	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Address:    addr,
	}, nil
}

// AddressRepository provides access to the address book
type AddressRepository interface {
	// FindByID loads an address, or shared.ErrNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByIDForUser loads an address only if it belongs to the user
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Address, error)

	// FindByUser returns all of a user's saved addresses
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)

	// Save inserts or updates an address
	Save(ctx context.Context, addr *Address) error

	// Delete removes an address from the book
	Delete(ctx context.Context, id uuid.UUID) error
}
