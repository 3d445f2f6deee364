package catalog

import (
	"context"
	"testing"

	"storefront/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromJSON_EmbeddedCatalog(t *testing.T) {
	repo, err := NewFromJSON(embeddedProducts)
	require.NoError(t, err)

	ctx := context.Background()
	products := repo.All(ctx)
	require.Len(t, products, 8)

	seen := make(map[string]bool)
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate product id %s", p.ID)
		seen[p.ID] = true
		assert.GreaterOrEqual(t, p.Rating, 0.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.False(t, p.Price.IsNegative())
	}
}

func TestNewFromJSON_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewFromJSON([]byte(`[{"id":"p1","price":1},{"id":"p1","price":2}]`))

	assert.Error(t, err)
}

func TestCatalogRepository_FindByID(t *testing.T) {
	repo, err := NewFromJSON(embeddedProducts)
	require.NoError(t, err)

	ctx := context.Background()

	product, err := repo.FindByID(ctx, "p4")
	require.NoError(t, err)
	assert.Equal(t, "Running Shoes Pro", product.Name)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestCatalogRepository_Categories(t *testing.T) {
	repo, err := NewFromJSON(embeddedProducts)
	require.NoError(t, err)

	categories := repo.Categories(context.Background())

	// "all" sentinel first, then first-appearance order.
	assert.Equal(t, []string{"all", "Electronics", "Fashion", "Home & Kitchen"}, categories)
}

func TestCatalogRepository_AllReturnsCopy(t *testing.T) {
	repo, err := NewFromJSON(embeddedProducts)
	require.NoError(t, err)

	ctx := context.Background()
	first := repo.All(ctx)
	first[0].Name = "mutated"

	assert.NotEqual(t, "mutated", repo.All(ctx)[0].Name)
}
