package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// OfferResponse is the API representation of an offer
type OfferResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Scope         string          `json:"scope"`
	TargetID      uuid.UUID       `json:"target_id"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	IsActive      bool            `json:"is_active"`
	UsageCount    int64           `json:"usage_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToOfferResponse converts an offer to its API representation
func ToOfferResponse(o *catalog.Offer) OfferResponse {
	return OfferResponse{
		ID:            o.ID,
		Name:          o.Name,
		Scope:         string(o.Scope),
		TargetID:      o.TargetID,
		DiscountType:  string(o.DiscountType),
		DiscountValue: o.DiscountValue,
		StartDate:     o.StartDate,
		EndDate:       o.EndDate,
		IsActive:      o.IsActive,
		UsageCount:    o.UsageCount,
		CreatedAt:     o.CreatedAt,
	}
}

// VariantResponse is the API representation of a product variant
type VariantResponse struct {
	ID           uuid.UUID `json:"id"`
	Color        string    `json:"color"`
	Size         string    `json:"size"`
	RegularPrice string    `json:"regular_price"`
	SalePrice    string    `json:"sale_price"`
	FinalPrice   string    `json:"final_price"`
	Discount     string    `json:"discount"`
	Stock        int       `json:"stock"`
	Image        string    `json:"image"`
}

// ProductResponse is the API representation of a product with
// offer-adjusted variant prices
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CategoryID  uuid.UUID         `json:"category_id"`
	BrandID     uuid.UUID         `json:"brand_id"`
	IsListed    bool              `json:"is_listed"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsListed    bool      `json:"is_listed"`
}

// BrandResponse is the API representation of a brand
type BrandResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsListed bool      `json:"is_listed"`
}
