package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// AddressService manages the user's address book
type AddressService struct {
	addressRepo customer.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo customer.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// SaveAddressRequest is the input for adding an address
type SaveAddressRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Pincode   string `json:"pincode" binding:"required,pincode"`
	Type      string `json:"type" binding:"omitempty,oneof=home work other"`
	IsDefault bool   `json:"is_default"`
}

// AddressResponse is the API representation of a saved address
type AddressResponse struct {
	ID        uuid.UUID           `json:"id"`
	Address   valueobject.Address `json:"address"`
	IsDefault bool                `json:"is_default"`
}

// Create adds an address to the user's book
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req SaveAddressRequest) (*AddressResponse, error) {
	addr, err := valueobject.NewAddress(req.FullName, req.Phone, req.Line1, req.Line2, req.City, req.State, req.Pincode, valueobject.AddressType(req.Type))
	if err != nil {
		return nil, err
	}
	entry, err := customer.NewAddress(userID, addr)
	if err != nil {
		return nil, err
	}
	entry.IsDefault = req.IsDefault
	if err := s.addressRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return &AddressResponse{ID: entry.ID, Address: entry.Address, IsDefault: entry.IsDefault}, nil
}

// List returns the user's saved addresses
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	entries, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]AddressResponse, len(entries))
	for i := range entries {
		responses[i] = AddressResponse{ID: entries[i].ID, Address: entries[i].Address, IsDefault: entries[i].IsDefault}
	}
	return responses, nil
}

// Delete removes one of the user's addresses
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.addressRepo.FindByIDForUser(ctx, addressID, userID); err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, addressID)
}
