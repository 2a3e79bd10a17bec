package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

type fixture struct {
	cartRepo    *MockCartRepository
	productRepo *MockProductRepository
	offerRepo   *MockOfferRepository
	svc         *Service
}

func newFixture() *fixture {
	f := &fixture{
		cartRepo:    new(MockCartRepository),
		productRepo: new(MockProductRepository),
		offerRepo:   new(MockOfferRepository),
	}
	pricing := appcatalog.NewPricingService(f.offerRepo)
	f.svc = NewService(f.cartRepo, f.productRepo, pricing, DefaultPricingPolicy())
	return f
}

func (f *fixture) expectNoOffers() {
	f.offerRepo.On("FindLiveProductOffers", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Offer{}, nil)
	f.offerRepo.On("FindLiveCategoryOffers", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Offer{}, nil)
}

// shoeProduct returns a product with one variant priced at 500 with the
// given stock.
func shoeProduct(t *testing.T, stock int) (*catalog.Product, *catalog.Variant) {
	t.Helper()
	product, err := catalog.NewProduct("Trail Runner", "", uuid.New(), uuid.New())
	require.NoError(t, err)
	variant, err := product.AddVariant("black", "42",
		valueobject.NewMoneyINRFromInt(700), valueobject.NewMoneyINRFromInt(500), stock, "shoe.jpg")
	require.NoError(t, err)
	return product, variant
}

func TestAddLine_NewLine(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	product, variant := shoeProduct(t, 10)

	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.cartRepo.On("FindLine", mock.Anything, userID, variant.ID).Return(nil, shared.ErrNotFound)
	f.cartRepo.On("Save", mock.Anything, mock.MatchedBy(func(l *cart.Line) bool {
		return l.UserID == userID && l.VariantID == variant.ID && l.Quantity == 2
	})).Return(nil)

	err := f.svc.AddLine(context.Background(), userID, AddLineRequest{
		ProductID: product.ID,
		VariantID: variant.ID,
		Quantity:  2,
	})

	require.NoError(t, err)
	f.cartRepo.AssertExpectations(t)
}

func TestAddLine_MergesExistingLine(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	product, variant := shoeProduct(t, 10)
	existing, err := cart.NewLine(userID, product.ID, variant.ID, 2, variant.Stock)
	require.NoError(t, err)

	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.cartRepo.On("FindLine", mock.Anything, userID, variant.ID).Return(existing, nil)
	f.cartRepo.On("Save", mock.Anything, existing).Return(nil)

	err = f.svc.AddLine(context.Background(), userID, AddLineRequest{
		ProductID: product.ID,
		VariantID: variant.ID,
		Quantity:  1,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, existing.Quantity)
}

func TestAddLine_CapsAtMaxQuantity(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	product, variant := shoeProduct(t, 10)
	existing, err := cart.NewLine(userID, product.ID, variant.ID, 4, variant.Stock)
	require.NoError(t, err)

	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.cartRepo.On("FindLine", mock.Anything, userID, variant.ID).Return(existing, nil)

	err = f.svc.AddLine(context.Background(), userID, AddLineRequest{
		ProductID: product.ID,
		VariantID: variant.ID,
		Quantity:  2,
	})

	assert.Error(t, err)
	f.cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateQuantity_LineNotOwned(t *testing.T) {
	f := newFixture()
	userID := uuid.New()

	f.cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.Line{}, nil)

	err := f.svc.UpdateQuantity(context.Background(), userID, uuid.New(), 3)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRemoveLine(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	product, variant := shoeProduct(t, 10)
	line, err := cart.NewLine(userID, product.ID, variant.ID, 1, variant.Stock)
	require.NoError(t, err)

	f.cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.Line{*line}, nil)
	f.cartRepo.On("Delete", mock.Anything, line.ID).Return(nil)

	require.NoError(t, f.svc.RemoveLine(context.Background(), userID, line.ID))
	f.cartRepo.AssertExpectations(t)
}

func TestValuate_Totals(t *testing.T) {
	f := newFixture()
	f.expectNoOffers()
	userID := uuid.New()
	product, variant := shoeProduct(t, 10)
	line, err := cart.NewLine(userID, product.ID, variant.ID, 2, variant.Stock)
	require.NoError(t, err)

	f.cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.Line{*line}, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	summary, err := f.svc.Valuate(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	// 2 x 500: 5% tax on 1000 and the flat shipping fee below threshold.
	assert.Equal(t, "1000", summary.Subtotal)
	assert.Equal(t, "50", summary.Tax)
	assert.Equal(t, "100", summary.Shipping)
	assert.Equal(t, "1150", summary.Total)
}

func TestValuate_FreeShippingAboveThreshold(t *testing.T) {
	f := newFixture()
	f.expectNoOffers()
	userID := uuid.New()
	product, err := catalog.NewProduct("Racing Frame", "", uuid.New(), uuid.New())
	require.NoError(t, err)
	variant, err := product.AddVariant("red", "L",
		valueobject.NewMoneyINRFromInt(120000), valueobject.NewMoneyINRFromInt(110000), 3, "frame.jpg")
	require.NoError(t, err)
	line, err := cart.NewLine(userID, product.ID, variant.ID, 1, variant.Stock)
	require.NoError(t, err)

	f.cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.Line{*line}, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	summary, err := f.svc.Valuate(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "0", summary.Shipping)
}

func TestValuate_DropsOrphanedLines(t *testing.T) {
	f := newFixture()
	f.expectNoOffers()
	userID := uuid.New()
	product, variant := shoeProduct(t, 10)
	live, err := cart.NewLine(userID, product.ID, variant.ID, 1, variant.Stock)
	require.NoError(t, err)
	orphan, err := cart.NewLine(userID, uuid.New(), uuid.New(), 1, 10)
	require.NoError(t, err)

	f.cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.Line{*live, *orphan}, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.productRepo.On("FindByID", mock.Anything, orphan.ProductID).Return(nil, shared.ErrNotFound)

	summary, err := f.svc.Valuate(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, "500", summary.Subtotal)
}

func TestValuate_FlagsOutOfStockLines(t *testing.T) {
	f := newFixture()
	f.expectNoOffers()
	userID := uuid.New()
	product, variant := shoeProduct(t, 5)
	line, err := cart.NewLine(userID, product.ID, variant.ID, 3, variant.Stock)
	require.NoError(t, err)
	variant.Stock = 1 // stock moved under the cart since the line was added

	f.cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.Line{*line}, nil)
	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	summary, err := f.svc.Valuate(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.False(t, summary.Lines[0].InStock)
}
