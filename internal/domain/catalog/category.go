package catalog

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// Category groups products for browsing and for category-scoped offers
type Category struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	IsListed    bool
}

// Brand identifies the manufacturer of a product
type Brand struct {
	shared.BaseAggregateRoot
	Name     string
	IsListed bool
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}
	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		IsListed:          true,
	}, nil
}

// NewBrand creates a new brand
func NewBrand(name string) (*Brand, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_BRAND", "Brand name cannot be empty")
	}
	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		IsListed:          true,
	}, nil
}
