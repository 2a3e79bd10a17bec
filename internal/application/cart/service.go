package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Service handles cart mutations and cart valuation
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	pricing     *appcatalog.PricingService
	policy      PricingPolicy
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository, pricing *appcatalog.PricingService, policy PricingPolicy) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pricing:     pricing,
		policy:      policy,
	}
}

// AddLine puts a variant in the user's cart, or raises the quantity of
// an existing line for the same variant
func (s *Service) AddLine(ctx context.Context, userID uuid.UUID, req AddLineRequest) error {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	variant := product.FindVariant(req.VariantID)
	if variant == nil {
		return shared.ErrNotFound
	}

	existing, err := s.cartRepo.FindLine(ctx, userID, req.VariantID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil {
		if err := existing.SetQuantity(existing.Quantity+req.Quantity, variant.Stock); err != nil {
			return err
		}
		return s.cartRepo.Save(ctx, existing)
	}

	line, err := cart.NewLine(userID, req.ProductID, req.VariantID, req.Quantity, variant.Stock)
	if err != nil {
		return err
	}
	return s.cartRepo.Save(ctx, line)
}

// UpdateQuantity changes the quantity of a cart line
func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error {
	lines, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	var line *cart.Line
	for i := range lines {
		if lines[i].ID == lineID {
			line = &lines[i]
			break
		}
	}
	if line == nil {
		return shared.ErrNotFound
	}

	product, err := s.productRepo.FindByID(ctx, line.ProductID)
	if err != nil {
		return err
	}
	variant := product.FindVariant(line.VariantID)
	if variant == nil {
		return shared.ErrNotFound
	}
	if err := line.SetQuantity(quantity, variant.Stock); err != nil {
		return err
	}
	return s.cartRepo.Save(ctx, line)
}

// RemoveLine deletes a cart line owned by the user
func (s *Service) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error {
	lines, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	for i := range lines {
		if lines[i].ID == lineID {
			return s.cartRepo.Delete(ctx, lineID)
		}
	}
	return shared.ErrNotFound
}

// Clear removes every line from the user's cart
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.DeleteByUser(ctx, userID)
}

// Valuate reads the user's cart and prices every line through the
// pricing resolver. Lines whose product or variant no longer resolves
// are silently dropped from the result. Read-only; nothing is charged
// or reserved here.
func (s *Service) Valuate(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	lines, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	subtotal := valueobject.ZeroINR()
	views := make([]LineView, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			continue
		}
		variant := product.FindVariant(line.VariantID)
		if variant == nil {
			continue
		}

		quote := s.pricing.QuoteVariant(ctx, product, variant, now)
		lineTotal := quote.FinalPrice.MultiplyByInt(int64(line.Quantity))
		subtotal = subtotal.MustAdd(lineTotal)

		views = append(views, LineView{
			LineID:      line.ID,
			ProductID:   product.ID,
			VariantID:   variant.ID,
			ProductName: product.Name,
			Image:       variant.Image,
			Color:       variant.Color,
			Size:        variant.Size,
			UnitPrice:   quote.FinalPrice.Amount().String(),
			Discount:    quote.DiscountAmount.Amount().String(),
			Quantity:    line.Quantity,
			LineTotal:   lineTotal.Amount().String(),
			InStock:     variant.CanFulfill(line.Quantity),
		})
	}

	tax := s.policy.TaxOn(subtotal)
	shipping := s.policy.ShippingOn(subtotal)
	total := subtotal.MustAdd(tax).MustAdd(shipping).RoundUnit()

	return &Summary{
		Lines:    views,
		Subtotal: subtotal.Amount().String(),
		Tax:      tax.Amount().String(),
		Shipping: shipping.Amount().String(),
		Total:    total.Amount().String(),
	}, nil
}
