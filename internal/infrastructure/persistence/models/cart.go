package models

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/cart"
)

// CartLineModel is the persistence model for a cart Line.
// One row per user/variant pair.
type CartLineModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_variant,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	VariantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_variant,priority:2"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartLineModel) TableName() string {
	return "cart_lines"
}

// ToDomain converts the persistence model to a domain cart Line.
func (m *CartLineModel) ToDomain() cart.Line {
	return cart.Line{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ProductID:  m.ProductID,
		VariantID:  m.VariantID,
		Quantity:   m.Quantity,
	}
}

// FromDomain populates the persistence model from a domain cart Line.
func (m *CartLineModel) FromDomain(l *cart.Line) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.UserID = l.UserID
	m.ProductID = l.ProductID
	m.VariantID = l.VariantID
	m.Quantity = l.Quantity
}

// CartLineModelFromDomain creates a new persistence model from a domain cart Line.
func CartLineModelFromDomain(l *cart.Line) *CartLineModel {
	m := &CartLineModel{}
	m.FromDomain(l)
	return m
}
