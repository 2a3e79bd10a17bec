package models

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// AddressModel is the persistence model for a saved address book entry.
type AddressModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName  string    `gorm:"type:varchar(100);not null"`
	Phone     string    `gorm:"type:varchar(20);not null"`
	Line1     string    `gorm:"type:varchar(200);not null"`
	Line2     string    `gorm:"type:varchar(200)"`
	City      string    `gorm:"type:varchar(100);not null"`
	State     string    `gorm:"type:varchar(100);not null"`
	Pincode   string    `gorm:"type:varchar(10);not null"`
	Type      string    `gorm:"type:varchar(10);not null;default:'home'"`
	IsDefault bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address.
func (m *AddressModel) ToDomain() *customer.Address {
	return &customer.Address{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Address: valueobject.Address{
			FullName: m.FullName,
			Phone:    m.Phone,
			Line1:    m.Line1,
			Line2:    m.Line2,
			City:     m.City,
			State:    m.State,
			Pincode:  m.Pincode,
			Type:     valueobject.AddressType(m.Type),
		},
		IsDefault: m.IsDefault,
	}
}

// FromDomain populates the persistence model from a domain Address.
func (m *AddressModel) FromDomain(a *customer.Address) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.UserID = a.UserID
	m.FullName = a.Address.FullName
	m.Phone = a.Address.Phone
	m.Line1 = a.Address.Line1
	m.Line2 = a.Address.Line2
	m.City = a.Address.City
	m.State = a.Address.State
	m.Pincode = a.Address.Pincode
	m.Type = string(a.Address.Type)
	m.IsDefault = a.IsDefault
}

// AddressModelFromDomain creates a new persistence model from a domain Address.
func AddressModelFromDomain(a *customer.Address) *AddressModel {
	m := &AddressModel{}
	m.FromDomain(a)
	return m
}
