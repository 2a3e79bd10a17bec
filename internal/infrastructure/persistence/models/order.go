package models

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OrderModel is the persistence model for the Order aggregate.
// The shipping address and status history are stored as JSON snapshots;
// neither is ever queried by field.
type OrderModel struct {
	AggregateModel
	OrderNumber     string            `gorm:"type:varchar(30);not null;uniqueIndex"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	Items           []OrderItemModel  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress string            `gorm:"type:jsonb;not null"`
	CouponID        *uuid.UUID        `gorm:"type:uuid"`
	CouponCode      string            `gorm:"type:varchar(50);index"`
	Subtotal        valueobject.Money `gorm:"type:decimal(12,2);not null"`
	Discount        valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	Tax             valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	Shipping        valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	FinalAmount     valueobject.Money `gorm:"type:decimal(12,2);not null"`
	PaymentMethod   string            `gorm:"type:varchar(20);not null"`
	PaymentStatus   string            `gorm:"type:varchar(20);not null;index"`
	GatewayOrderID  string            `gorm:"type:varchar(100)"`
	IdempotencyKey  string            `gorm:"type:varchar(120);uniqueIndex:idx_orders_idempotency,where:idempotency_key <> ''"`
	Status          string            `gorm:"type:varchar(30);not null;index"`
	History         string            `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, len(m.Items))
	for i := range m.Items {
		items[i] = m.Items[i].ToDomain()
	}

	var addr valueobject.Address
	_ = json.Unmarshal([]byte(m.ShippingAddress), &addr)

	var history []order.HistoryEntry
	if m.History != "" {
		_ = json.Unmarshal([]byte(m.History), &history)
	}

	return &order.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		UserID:            m.UserID,
		Items:             items,
		ShippingAddress:   addr,
		CouponID:          m.CouponID,
		CouponCode:        m.CouponCode,
		Subtotal:          m.Subtotal,
		Discount:          m.Discount,
		Tax:               m.Tax,
		Shipping:          m.Shipping,
		FinalAmount:       m.FinalAmount,
		PaymentMethod:     order.PaymentMethod(m.PaymentMethod),
		PaymentStatus:     order.PaymentStatus(m.PaymentStatus),
		GatewayOrderID:    m.GatewayOrderID,
		IdempotencyKey:    m.IdempotencyKey,
		Status:            order.Status(m.Status),
		History:           history,
	}
}

// FromDomain populates the persistence model from a domain Order.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.UserID = o.UserID
	m.Items = make([]OrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i].FromDomain(&o.Items[i])
	}

	addr, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		addr = []byte("{}")
	}
	m.ShippingAddress = string(addr)

	history, err := json.Marshal(o.History)
	if err != nil || o.History == nil {
		history = []byte("[]")
	}
	m.History = string(history)

	m.CouponID = o.CouponID
	m.CouponCode = o.CouponCode
	m.Subtotal = o.Subtotal
	m.Discount = o.Discount
	m.Tax = o.Tax
	m.Shipping = o.Shipping
	m.FinalAmount = o.FinalAmount
	m.PaymentMethod = string(o.PaymentMethod)
	m.PaymentStatus = string(o.PaymentStatus)
	m.GatewayOrderID = o.GatewayOrderID
	m.IdempotencyKey = o.IdempotencyKey
	m.Status = string(o.Status)
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order Item snapshot.
type OrderItemModel struct {
	BaseModel
	OrderID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID         `gorm:"type:uuid;not null"`
	VariantID     uuid.UUID         `gorm:"type:uuid;not null"`
	ProductName   string            `gorm:"type:varchar(200);not null"`
	Image         string            `gorm:"type:varchar(500)"`
	UnitPrice     valueobject.Money `gorm:"type:decimal(12,2);not null"`
	Quantity      int               `gorm:"not null"`
	Status        string            `gorm:"type:varchar(30);not null;index"`
	OfferID       *uuid.UUID        `gorm:"type:uuid"`
	ReturnReason  string            `gorm:"type:text"`
	ReturnComment string            `gorm:"type:text"`
	ReturnImage   string            `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain order Item.
func (m *OrderItemModel) ToDomain() order.Item {
	return order.Item{
		BaseEntity:    m.BaseModel.ToDomain(),
		OrderID:       m.OrderID,
		ProductID:     m.ProductID,
		VariantID:     m.VariantID,
		ProductName:   m.ProductName,
		Image:         m.Image,
		UnitPrice:     m.UnitPrice,
		Quantity:      m.Quantity,
		Status:        order.ItemStatus(m.Status),
		OfferID:       m.OfferID,
		ReturnReason:  m.ReturnReason,
		ReturnComment: m.ReturnComment,
		ReturnImage:   m.ReturnImage,
	}
}

// FromDomain populates the persistence model from a domain order Item.
func (m *OrderItemModel) FromDomain(i *order.Item) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.OrderID = i.OrderID
	m.ProductID = i.ProductID
	m.VariantID = i.VariantID
	m.ProductName = i.ProductName
	m.Image = i.Image
	m.UnitPrice = i.UnitPrice
	m.Quantity = i.Quantity
	m.Status = string(i.Status)
	m.OfferID = i.OfferID
	m.ReturnReason = i.ReturnReason
	m.ReturnComment = i.ReturnComment
	m.ReturnImage = i.ReturnImage
}
