package impl

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/catalog"
	"storefront/internal/infra/persistence/localstore"
	"storefront/internal/usecase"

	domainerrors "storefront/internal/domain/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogJSON = `[
	{"id":"p1","name":"Widget","category":"Gadgets","description":"A fine widget.","price":100,"rating":4.5,"reviews":10,"image":"./widget.jpg"},
	{"id":"p2","name":"Sprocket","category":"Gadgets","description":"","price":50,"rating":3.9,"reviews":4,"image":"./sprocket.jpg"}
]`

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Storefront.TaxRate = "0.08"

	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCartService(t *testing.T, gateway repository.KVGateway) usecase.CartUsecase {
	t.Helper()

	catalogRepo, err := catalog.NewFromJSON([]byte(testCatalogJSON))
	require.NoError(t, err)

	srv, err := NewCartService(context.Background(), catalogRepo, gateway, testConfig(), testLogger())
	require.NoError(t, err)

	return srv
}

// failingGateway accepts reads but rejects every write.
type failingGateway struct {
	repository.KVGateway
}

func (failingGateway) Set(_ context.Context, _ string, _ string) error {
	return errors.New("disk full")
}

func TestCartService_AddTwiceAccumulates(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 1}))
	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 1}))

	view, err := srv.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
}

func TestCartService_AddSnapshotsProductFields(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1"}))

	view, err := srv.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)

	line := view.Lines[0]
	assert.Equal(t, "p1", line.ProductID)
	assert.Equal(t, "Widget", line.Name)
	assert.Equal(t, "Gadgets", line.Category)
	assert.Equal(t, "./widget.jpg", line.Image)
	assert.True(t, line.Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, line.Quantity, "omitted quantity defaults to a single unit")
}

func TestCartService_AddUnknownProductIsSilentNoop(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "ghost", Quantity: 1}))

	view, err := srv.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_AddDoesNotClampIncrements(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 3}))
	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: -5}))

	view, err := srv.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	// Adds are intentionally unclamped; only change/set enforce the floor.
	assert.Equal(t, -2, view.Lines[0].Quantity)
}

func TestCartService_ChangeQuantityClampsToOne(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 3}))
	require.NoError(t, srv.ChangeQuantity(ctx, "p1", -100))

	view, err := srv.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 1, view.Lines[0].Quantity, "decrement clamps to exactly 1, never removes")
}

func TestCartService_ChangeQuantityMissingLineIsNoop(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.ChangeQuantity(ctx, "p1", 5))

	view, err := srv.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_SetQuantityNormalizesNonFinite(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 3}))

	require.NoError(t, srv.SetQuantity(ctx, "p1", math.NaN()))
	view, err := srv.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Lines[0].Quantity)

	require.NoError(t, srv.SetQuantity(ctx, "p1", math.Inf(1)))
	view, err = srv.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Lines[0].Quantity)
}

func TestCartService_SetQuantityClampsToOne(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 3}))

	require.NoError(t, srv.SetQuantity(ctx, "p1", -5))
	view, err := srv.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Lines[0].Quantity)

	require.NoError(t, srv.SetQuantity(ctx, "p1", 4))
	view, err = srv.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Lines[0].Quantity)
}

func TestCartService_RemoveThenTotalsAreZero(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 1}))
	require.NoError(t, srv.RemoveItem(ctx, "p1"))

	view, err := srv.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	totals, err := srv.Totals(ctx)
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestCartService_RemoveMissingLineIsNoop(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())

	assert.NoError(t, srv.RemoveItem(context.Background(), "ghost"))
}

func TestCartService_TotalsDerivation(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 2}))

	totals, err := srv.Totals(ctx)
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(16)), "tax = %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(216)), "total = %s", totals.Total)
}

func TestCartService_CountSumsQuantities(t *testing.T) {
	srv := newTestCartService(t, localstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 2}))
	require.NoError(t, srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p2", Quantity: 3}))

	count, err := srv.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestCartService_StateSurvivesRestart(t *testing.T) {
	gateway := localstore.NewMemory()
	ctx := context.Background()

	first := newTestCartService(t, gateway)
	require.NoError(t, first.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 2}))

	second := newTestCartService(t, gateway)
	view, err := second.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "p1", view.Lines[0].ProductID)
	assert.Equal(t, 2, view.Lines[0].Quantity)
}

func TestCartService_CorruptStateStartsEmpty(t *testing.T) {
	gateway := localstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, gateway.Set(ctx, repository.KeyCart, "not json"))

	srv := newTestCartService(t, gateway)

	view, err := srv.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_PersistFailureSurfacesButKeepsMutation(t *testing.T) {
	srv := newTestCartService(t, failingGateway{localstore.NewMemory()})
	ctx := context.Background()

	err := srv.AddItem(ctx, &usecase.AddItemInput{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, domainerrors.ErrPersistFailed)

	// The in-memory mutation is not rolled back.
	view, viewErr := srv.View(ctx)
	require.NoError(t, viewErr)
	assert.Len(t, view.Lines, 1)
}
