package impl

import (
	"bytes"
	"context"
	"testing"

	"storefront/internal/infra/catalog"
	"storefront/internal/infra/qrcode"
	"storefront/internal/usecase"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService(t *testing.T) usecase.CatalogUsecase {
	t.Helper()

	catalogRepo, err := catalog.NewFromJSON([]byte(testCatalogJSON))
	require.NoError(t, err)

	return NewCatalogService(catalogRepo, qrcode.NewQRCodeService(128, "M"), testLogger())
}

func TestCatalogService_ListProductsDefaults(t *testing.T) {
	srv := newTestCatalogService(t)

	out, err := srv.ListProducts(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Total)
	assert.Len(t, out.Products, 2)
}

func TestCatalogService_ListProductsWithCriteria(t *testing.T) {
	srv := newTestCatalogService(t)

	out, err := srv.ListProducts(context.Background(), &usecase.ListProductsInput{
		Search: "widget",
		SortBy: entity.SortPriceDesc,
	})
	require.NoError(t, err)

	require.Equal(t, 1, out.Total)
	assert.Equal(t, "p1", out.Products[0].ID)
}

func TestCatalogService_GetProduct(t *testing.T) {
	srv := newTestCatalogService(t)
	ctx := context.Background()

	product, err := srv.GetProduct(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "Sprocket", product.Name)

	_, err = srv.GetProduct(ctx, "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_Categories(t *testing.T) {
	srv := newTestCatalogService(t)

	categories, err := srv.Categories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"all", "Gadgets"}, categories)
}

func TestCatalogService_ShareProductQR(t *testing.T) {
	srv := newTestCatalogService(t)
	ctx := context.Background()

	png, err := srv.ShareProductQR(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "payload must be a PNG image")

	_, err = srv.ShareProductQR(ctx, "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
