package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds product with variants", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		categoryID := uuid.New()
		brandID := uuid.New()
		variantID := uuid.New()

		productRows := sqlmock.NewRows([]string{"id", "name", "description", "category_id", "brand_id", "is_listed"}).
			AddRow(productID, "Trail Runner", "Lightweight trail shoe", categoryID, brandID, true)
		variantRows := sqlmock.NewRows([]string{"id", "product_id", "color", "size", "regular_price", "sale_price", "stock"}).
			AddRow(variantID, productID, "Black", "9", decimal.NewFromInt(2999), decimal.NewFromInt(2499), 10)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(productRows)
		mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE "product_variants"\."product_id" = \$1`).
			WithArgs(productID).
			WillReturnRows(variantRows)

		product, err := repo.FindByID(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, productID, product.ID)
		require.Len(t, product.Variants, 1)
		assert.Equal(t, variantID, product.Variants[0].ID)
		assert.Equal(t, 10, product.Variants[0].Stock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_DecrementVariantStock(t *testing.T) {
	t.Run("decrements when stock suffices", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		variantID := uuid.New()

		mock.ExpectExec(`UPDATE "product_variants" SET "stock"=stock - \$1.*WHERE id = \$\d AND stock >= \$\d`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecrementVariantStock(context.Background(), variantID, 2)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrInsufficientStock when the guard rejects the update", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		variantID := uuid.New()

		mock.ExpectExec(`UPDATE "product_variants" SET "stock"=stock - \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "product_variants" WHERE id = \$1`).
			WithArgs(variantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.DecrementVariantStock(context.Background(), variantID, 5)

		assert.Equal(t, shared.ErrInsufficientStock, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing variant", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		variantID := uuid.New()

		mock.ExpectExec(`UPDATE "product_variants" SET "stock"=stock - \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "product_variants" WHERE id = \$1`).
			WithArgs(variantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.DecrementVariantStock(context.Background(), variantID, 1)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_IncrementVariantStock(t *testing.T) {
	t.Run("restores stock", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		variantID := uuid.New()

		mock.ExpectExec(`UPDATE "product_variants" SET "stock"=stock \+ \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementVariantStock(context.Background(), variantID, 3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing variant", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		variantID := uuid.New()

		mock.ExpectExec(`UPDATE "product_variants" SET "stock"=stock \+ \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementVariantStock(context.Background(), variantID, 3)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_LowestSalePriceInCategory(t *testing.T) {
	t.Run("returns the category floor price", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectQuery(`SELECT MIN\(product_variants\.sale_price\) AS lowest FROM "product_variants"`).
			WithArgs(categoryID).
			WillReturnRows(sqlmock.NewRows([]string{"lowest"}).AddRow(decimal.NewFromInt(499)))

		lowest, ok, err := repo.LowestSalePriceInCategory(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, lowest.Amount().Equal(decimal.NewFromInt(499)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports no price for an empty category", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectQuery(`SELECT MIN\(product_variants\.sale_price\) AS lowest FROM "product_variants"`).
			WithArgs(categoryID).
			WillReturnRows(sqlmock.NewRows([]string{"lowest"}).AddRow(nil))

		_, ok, err := repo.LowestSalePriceInCategory(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
