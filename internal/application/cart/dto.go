package cart

import (
	"github.com/google/uuid"
)

// LineView is one valued cart line
type LineView struct {
	LineID      uuid.UUID `json:"line_id"`
	ProductID   uuid.UUID `json:"product_id"`
	VariantID   uuid.UUID `json:"variant_id"`
	ProductName string    `json:"product_name"`
	Image       string    `json:"image"`
	Color       string    `json:"color"`
	Size        string    `json:"size"`
	UnitPrice   string    `json:"unit_price"`
	Discount    string    `json:"discount"`
	Quantity    int       `json:"quantity"`
	LineTotal   string    `json:"line_total"`
	InStock     bool      `json:"in_stock"`
}

// Summary is the valued cart returned to the storefront
type Summary struct {
	Lines    []LineView `json:"lines"`
	Subtotal string     `json:"subtotal"`
	Tax      string     `json:"tax"`
	Shipping string     `json:"shipping"`
	Total    string     `json:"total"`
}

// AddLineRequest is the input for adding a variant to the cart
type AddLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest is the input for changing a line quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
