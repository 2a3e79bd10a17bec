package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Product is the catalog aggregate root. Variants carry the sellable
// price and stock; the product itself holds listing metadata.
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	CategoryID  uuid.UUID
	BrandID     uuid.UUID
	IsListed    bool
	Variants    []Variant
}

// Variant is a sellable unit of a product (a color/size combination).
// Stock is mutated only by order placement, cancellation and returns.
type Variant struct {
	shared.BaseEntity
	ProductID    uuid.UUID
	Color        string
	Size         string
	RegularPrice valueobject.Money
	SalePrice    valueobject.Money
	Stock        int
	Image        string
}

// NewProduct creates a new product aggregate
func NewProduct(name, description string, categoryID, brandID uuid.UUID) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product must belong to a category")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		CategoryID:        categoryID,
		BrandID:           brandID,
		IsListed:          true,
		Variants:          []Variant{},
	}, nil
}

// AddVariant appends a new variant to the product
func (p *Product) AddVariant(color, size string, regularPrice, salePrice valueobject.Money, stock int, image string) (*Variant, error) {
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Stock cannot be negative")
	}
	if !regularPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Regular price must be positive")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Sale price cannot be negative")
	}
	if greater, _ := salePrice.GreaterThan(regularPrice); greater {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Sale price cannot exceed regular price")
	}

	variant := Variant{
		BaseEntity:   shared.NewBaseEntity(),
		ProductID:    p.ID,
		Color:        color,
		Size:         size,
		RegularPrice: regularPrice,
		SalePrice:    salePrice,
		Stock:        stock,
		Image:        image,
	}
	p.Variants = append(p.Variants, variant)
	return &p.Variants[len(p.Variants)-1], nil
}

// FindVariant returns the variant with the given ID, or nil
func (p *Product) FindVariant(variantID uuid.UUID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

// LowestSalePrice returns the cheapest variant sale price, or zero
// when the product has no variants.
func (p *Product) LowestSalePrice() valueobject.Money {
	if len(p.Variants) == 0 {
		return valueobject.ZeroINR()
	}
	lowest := p.Variants[0].SalePrice
	for _, v := range p.Variants[1:] {
		if less, _ := v.SalePrice.LessThan(lowest); less {
			lowest = v.SalePrice
		}
	}
	return lowest
}

// List marks the product as visible in the storefront
func (p *Product) List() {
	p.IsListed = true
	p.IncrementVersion()
}

// Unlist hides the product from the storefront.
// Existing orders keep their denormalized snapshots.
func (p *Product) Unlist() {
	p.IsListed = false
	p.IncrementVersion()
}

// CanFulfill checks whether the variant has enough stock for the quantity
func (v *Variant) CanFulfill(quantity int) bool {
	return quantity > 0 && v.Stock >= quantity
}

// DecrementStock reduces stock by the given quantity.
// Stock must never go negative.
func (v *Variant) DecrementStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if v.Stock < quantity {
		return shared.ErrInsufficientStock
	}
	v.Stock -= quantity
	return nil
}

// IncrementStock restores stock, used by cancellation and approved returns
func (v *Variant) IncrementStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	v.Stock += quantity
	return nil
}
