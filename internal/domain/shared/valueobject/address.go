package valueobject

import (
	"errors"
	"strings"
)

// AddressType classifies a shipping address
type AddressType string

const (
	AddressTypeHome  AddressType = "home"
	AddressTypeWork  AddressType = "work"
	AddressTypeOther AddressType = "other"
)

// IsValid checks if the address type is known
func (t AddressType) IsValid() bool {
	switch t {
	case AddressTypeHome, AddressTypeWork, AddressTypeOther:
		return true
	}
	return false
}

// Address is an immutable shipping address snapshot.
// Orders copy it verbatim at placement so later edits to the customer's
// address book never change what a placed order shows.
type Address struct {
	FullName string      `json:"full_name"`
	Phone    string      `json:"phone"`
	Line1    string      `json:"line1"`
	Line2    string      `json:"line2,omitempty"`
	City     string      `json:"city"`
	State    string      `json:"state"`
	Pincode  string      `json:"pincode"`
	Type     AddressType `json:"type"`
}

// NewAddress creates a validated Address
func NewAddress(fullName, phone, line1, line2, city, state, pincode string, addrType AddressType) (Address, error) {
	if strings.TrimSpace(fullName) == "" {
		return Address{}, errors.New("full name cannot be empty")
	}
	if strings.TrimSpace(phone) == "" {
		return Address{}, errors.New("phone cannot be empty")
	}
	if strings.TrimSpace(line1) == "" {
		return Address{}, errors.New("address line cannot be empty")
	}
	if strings.TrimSpace(city) == "" || strings.TrimSpace(state) == "" {
		return Address{}, errors.New("city and state cannot be empty")
	}
	if len(pincode) != 6 {
		return Address{}, errors.New("pincode must be 6 digits")
	}
	if !addrType.IsValid() {
		addrType = AddressTypeHome
	}
	return Address{
		FullName: fullName,
		Phone:    phone,
		Line1:    line1,
		Line2:    line2,
		City:     city,
		State:    state,
		Pincode:  pincode,
		Type:     addrType,
	}, nil
}

// IsZero returns true if the address is the zero value
func (a Address) IsZero() bool {
	return a == Address{}
}

// OneLine renders the address as a single display line
func (a Address) OneLine() string {
	parts := []string{a.Line1}
	if a.Line2 != "" {
		parts = append(parts, a.Line2)
	}
	parts = append(parts, a.City, a.State, a.Pincode)
	return strings.Join(parts, ", ")
}
