package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	AggregateModel
	Name        string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	BrandID     uuid.UUID      `gorm:"type:uuid;index"`
	IsListed    bool           `gorm:"not null;default:true;index"`
	Variants    []VariantModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	variants := make([]catalog.Variant, len(m.Variants))
	for i := range m.Variants {
		variants[i] = m.Variants[i].ToDomain()
	}
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		CategoryID:        m.CategoryID,
		BrandID:           m.BrandID,
		IsListed:          m.IsListed,
		Variants:          variants,
	}
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.CategoryID = p.CategoryID
	m.BrandID = p.BrandID
	m.IsListed = p.IsListed
	m.Variants = make([]VariantModel, len(p.Variants))
	for i := range p.Variants {
		m.Variants[i].FromDomain(&p.Variants[i])
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// VariantModel is the persistence model for a product Variant.
type VariantModel struct {
	BaseModel
	ProductID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Color        string            `gorm:"type:varchar(50)"`
	Size         string            `gorm:"type:varchar(50)"`
	RegularPrice valueobject.Money `gorm:"type:decimal(12,2);not null"`
	SalePrice    valueobject.Money `gorm:"type:decimal(12,2);not null"`
	Stock        int               `gorm:"not null;default:0"`
	Image        string            `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (VariantModel) TableName() string {
	return "product_variants"
}

// ToDomain converts the persistence model to a domain Variant.
func (m *VariantModel) ToDomain() catalog.Variant {
	return catalog.Variant{
		BaseEntity:   m.BaseModel.ToDomain(),
		ProductID:    m.ProductID,
		Color:        m.Color,
		Size:         m.Size,
		RegularPrice: m.RegularPrice,
		SalePrice:    m.SalePrice,
		Stock:        m.Stock,
		Image:        m.Image,
	}
}

// FromDomain populates the persistence model from a domain Variant.
func (m *VariantModel) FromDomain(v *catalog.Variant) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.ProductID = v.ProductID
	m.Color = v.Color
	m.Size = v.Size
	m.RegularPrice = v.RegularPrice
	m.SalePrice = v.SalePrice
	m.Stock = v.Stock
	m.Image = v.Image
}

// CategoryModel is the persistence model for the Category aggregate.
type CategoryModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	IsListed    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		IsListed:          m.IsListed,
	}
}

// FromDomain populates the persistence model from a domain Category.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Description = c.Description
	m.IsListed = c.IsListed
}

// CategoryModelFromDomain creates a new persistence model from a domain Category.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// BrandModel is the persistence model for the Brand aggregate.
type BrandModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	IsListed bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brands"
}

// ToDomain converts the persistence model to a domain Brand.
func (m *BrandModel) ToDomain() *catalog.Brand {
	return &catalog.Brand{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		IsListed:          m.IsListed,
	}
}

// FromDomain populates the persistence model from a domain Brand.
func (m *BrandModel) FromDomain(b *catalog.Brand) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.IsListed = b.IsListed
}

// BrandModelFromDomain creates a new persistence model from a domain Brand.
func BrandModelFromDomain(b *catalog.Brand) *BrandModel {
	m := &BrandModel{}
	m.FromDomain(b)
	return m
}

// OfferModel is the persistence model for the Offer aggregate.
type OfferModel struct {
	AggregateModel
	Name          string          `gorm:"type:varchar(200);not null"`
	Scope         string          `gorm:"type:varchar(20);not null;index:idx_offers_scope_target"`
	TargetID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_offers_scope_target"`
	DiscountType  string          `gorm:"type:varchar(20);not null"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StartDate     time.Time       `gorm:"not null;index"`
	EndDate       time.Time       `gorm:"not null;index"`
	IsActive      bool            `gorm:"not null;default:true;index"`
	UsageCount    int64           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OfferModel) TableName() string {
	return "offers"
}

// ToDomain converts the persistence model to a domain Offer.
func (m *OfferModel) ToDomain() *catalog.Offer {
	return &catalog.Offer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Scope:             catalog.OfferScope(m.Scope),
		TargetID:          m.TargetID,
		DiscountType:      catalog.DiscountType(m.DiscountType),
		DiscountValue:     m.DiscountValue,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		IsActive:          m.IsActive,
		UsageCount:        m.UsageCount,
	}
}

// FromDomain populates the persistence model from a domain Offer.
func (m *OfferModel) FromDomain(o *catalog.Offer) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Name = o.Name
	m.Scope = string(o.Scope)
	m.TargetID = o.TargetID
	m.DiscountType = string(o.DiscountType)
	m.DiscountValue = o.DiscountValue
	m.StartDate = o.StartDate
	m.EndDate = o.EndDate
	m.IsActive = o.IsActive
	m.UsageCount = o.UsageCount
}

// OfferModelFromDomain creates a new persistence model from a domain Offer.
func OfferModelFromDomain(o *catalog.Offer) *OfferModel {
	m := &OfferModel{}
	m.FromDomain(o)
	return m
}
