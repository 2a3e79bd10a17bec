package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.CartLineModel{})
	require.NoError(t, err)

	return db
}

func newCartLine(t *testing.T, userID uuid.UUID, quantity int) *cart.Line {
	line, err := cart.NewLine(userID, uuid.New(), uuid.New(), quantity, 100)
	require.NoError(t, err)
	return line
}

func TestGormCartRepository_SaveAndFindByUser(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	first := newCartLine(t, userID, 1)
	second := newCartLine(t, userID, 3)
	other := newCartLine(t, uuid.New(), 2)

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	lines, err := repo.FindByUser(ctx, userID)

	require.NoError(t, err)
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, userID, line.UserID)
	}
}

func TestGormCartRepository_FindLine(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	t.Run("finds the user's line for a variant", func(t *testing.T) {
		userID := uuid.New()
		line := newCartLine(t, userID, 2)
		require.NoError(t, repo.Save(ctx, line))

		found, err := repo.FindLine(ctx, userID, line.VariantID)

		require.NoError(t, err)
		assert.Equal(t, line.ID, found.ID)
		assert.Equal(t, 2, found.Quantity)
	})

	t.Run("returns ErrNotFound for an absent line", func(t *testing.T) {
		_, err := repo.FindLine(ctx, uuid.New(), uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormCartRepository_SaveUpdatesQuantity(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	line := newCartLine(t, userID, 1)
	require.NoError(t, repo.Save(ctx, line))

	require.NoError(t, line.SetQuantity(4, 100))
	require.NoError(t, repo.Save(ctx, line))

	found, err := repo.FindLine(ctx, userID, line.VariantID)
	require.NoError(t, err)
	assert.Equal(t, 4, found.Quantity)

	lines, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestGormCartRepository_Delete(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	t.Run("removes a single line", func(t *testing.T) {
		userID := uuid.New()
		line := newCartLine(t, userID, 1)
		require.NoError(t, repo.Save(ctx, line))

		require.NoError(t, repo.Delete(ctx, line.ID))

		_, err := repo.FindLine(ctx, userID, line.VariantID)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("returns ErrNotFound for an absent line", func(t *testing.T) {
		assert.Equal(t, shared.ErrNotFound, repo.Delete(ctx, uuid.New()))
	})
}

func TestGormCartRepository_DeleteByUser(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Save(ctx, newCartLine(t, userID, 1)))
	require.NoError(t, repo.Save(ctx, newCartLine(t, userID, 2)))
	kept := newCartLine(t, uuid.New(), 1)
	require.NoError(t, repo.Save(ctx, kept))

	require.NoError(t, repo.DeleteByUser(ctx, userID))

	lines, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	others, err := repo.FindByUser(ctx, kept.UserID)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
