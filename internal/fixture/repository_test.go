package fixture_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstore/cart-engine/internal/fixture"
)

func setupTestRepo(t *testing.T) *fixture.Repository {
	// Use in-memory database for tests
	repo, err := fixture.NewRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.RunMigrations("./migrations"))
	return repo
}

func TestGetProduct_ReturnsSeededProduct(t *testing.T) {
	repo := setupTestRepo(t)

	product, err := repo.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, "Trail Runner Sneaker", product.Name)
	assert.Equal(t, 179.90, product.Price)
	assert.NotEmpty(t, product.ImageURL)
	assert.Zero(t, product.Amount)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, fixture.ErrNotFound)
}

func TestGetStock_ReturnsSeededAmount(t *testing.T) {
	repo := setupTestRepo(t)

	stock, err := repo.GetStock(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stock.ID)
	assert.Equal(t, 5, stock.Amount)
}

func TestGetStock_ZeroStockProduct(t *testing.T) {
	repo := setupTestRepo(t)

	stock, err := repo.GetStock(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 0, stock.Amount)
}

func TestGetStock_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetStock(context.Background(), 999)
	assert.ErrorIs(t, err, fixture.ErrNotFound)
}

func TestSetStock_Overwrites(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetStock(ctx, 1, 42))

	stock, err := repo.GetStock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 42, stock.Amount)
}
