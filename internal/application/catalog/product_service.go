package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductService serves storefront catalog reads with offer-adjusted
// prices baked into every variant.
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	pricing      *PricingService
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, brandRepo catalog.BrandRepository, pricing *PricingService) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		pricing:      pricing,
	}
}

// GetByID retrieves a product with discounted prices resolved per variant
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := s.toResponse(ctx, product, time.Now())
	return &response, nil
}

// List retrieves listed products with pagination
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	page, err := s.productRepo.FindListed(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	responses := make([]ProductResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = s.toResponse(ctx, &page.Items[i], now)
	}
	return responses, page.Total, nil
}

// ListCategories returns the browsable categories
func (s *ProductService) ListCategories(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = CategoryResponse{
			ID:          categories[i].ID,
			Name:        categories[i].Name,
			Description: categories[i].Description,
			IsListed:    categories[i].IsListed,
		}
	}
	return responses, nil
}

// ListBrands returns the browsable brands
func (s *ProductService) ListBrands(ctx context.Context, filter shared.Filter) ([]BrandResponse, error) {
	brands, err := s.brandRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]BrandResponse, len(brands))
	for i := range brands {
		responses[i] = BrandResponse{
			ID:       brands[i].ID,
			Name:     brands[i].Name,
			IsListed: brands[i].IsListed,
		}
	}
	return responses, nil
}

func (s *ProductService) toResponse(ctx context.Context, product *catalog.Product, now time.Time) ProductResponse {
	variants := make([]VariantResponse, len(product.Variants))
	for i := range product.Variants {
		v := &product.Variants[i]
		quote := s.pricing.QuoteVariant(ctx, product, v, now)
		variants[i] = VariantResponse{
			ID:           v.ID,
			Color:        v.Color,
			Size:         v.Size,
			RegularPrice: v.RegularPrice.Amount().String(),
			SalePrice:    v.SalePrice.Amount().String(),
			FinalPrice:   quote.FinalPrice.Amount().String(),
			Discount:     quote.DiscountAmount.Amount().String(),
			Stock:        v.Stock,
			Image:        v.Image,
		}
	}
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		CategoryID:  product.CategoryID,
		BrandID:     product.BrandID,
		IsListed:    product.IsListed,
		Variants:    variants,
		CreatedAt:   product.CreatedAt,
	}
}
