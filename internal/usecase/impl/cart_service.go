// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sort"
	"sync"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// cartService implements the CartUsecase interface. Lines live in memory and
// the full cart is re-serialized to the gateway after every successful
// mutation; the gateway write is the commit step of each operation.
type cartService struct {
	mu          sync.Mutex
	catalogRepo repository.CatalogRepository
	gateway     repository.KVGateway
	taxRate     decimal.Decimal
	lines       map[string]*entity.CartLine
	order       []string // product ids in display order
	logger      *slog.Logger
}

// NewCartService is the constructor for cartService. It restores any
// persisted cart state; a missing key or corrupt payload yields an empty
// cart, never an error.
func NewCartService(
	ctx context.Context,
	catalogRepo repository.CatalogRepository,
	gateway repository.KVGateway,
	cfg *config.Config,
	logger *slog.Logger,
) (usecase.CartUsecase, error) {
	taxRate, err := decimal.NewFromString(cfg.Storefront.TaxRate)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid tax rate %q", cfg.Storefront.TaxRate)
	}

	srv := &cartService{
		catalogRepo: catalogRepo,
		gateway:     gateway,
		taxRate:     taxRate,
		lines:       make(map[string]*entity.CartLine),
		logger:      logger,
	}
	srv.restore(ctx)

	return srv, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// restore loads persisted cart state. Failures degrade to an empty cart.
func (srv *cartService) restore(ctx context.Context) {
	raw, err := srv.gateway.Get(ctx, repository.KeyCart)
	if err != nil {
		if !errors.Is(err, repository.ErrKeyNotFound) {
			srv.log(ctx).Warn("Failed to read persisted cart, starting empty", slog.Any("error", err))
		}

		return
	}

	var lines map[string]*entity.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		srv.log(ctx).Warn("Persisted cart is corrupt, starting empty", slog.Any("error", err))

		return
	}

	srv.lines = lines
	for id := range lines {
		srv.order = append(srv.order, id)
	}
	// Serialized maps carry no ordering, so restored carts display in id order.
	sort.Strings(srv.order)

	srv.log(ctx).Debug("Restored cart state", slog.Int("lines", len(srv.lines)))
}

// AddItem adds a product to the cart, incrementing the quantity of an
// existing line. An unknown product id is a deliberate silent no-op: the
// storefront only ever issues adds for ids it just rendered.
func (srv *cartService) AddItem(ctx context.Context, input *usecase.AddItemInput) error {
	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}

	product, err := srv.catalogRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			srv.log(ctx).Debug("Ignoring add for unknown product", slog.String("productID", input.ProductID))

			return nil
		}

		return errors.Wrap(err, "failed to look up product for add")
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if line, ok := srv.lines[product.ID]; ok {
		// Increments are intentionally not floor-clamped; only change/set
		// clamp to 1. This mirrors the storefront's historical behaviour.
		line.Quantity += qty
	} else {
		srv.lines[product.ID] = &entity.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Category:  product.Category,
			Quantity:  qty,
		}
		srv.order = append(srv.order, product.ID)
	}

	return srv.commit(ctx)
}

// ChangeQuantity adjusts an existing line by a signed delta, clamping the
// result to a minimum of 1. It never auto-removes the line; removal is an
// explicit operation. A missing line is a silent no-op.
func (srv *cartService) ChangeQuantity(ctx context.Context, productID string, delta int) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	line, ok := srv.lines[productID]
	if !ok {
		return nil
	}

	line.Quantity = max(1, line.Quantity+delta)

	return srv.commit(ctx)
}

// SetQuantity replaces an existing line's quantity. A non-finite value
// normalizes to 1, any finite value is clamped to a minimum of 1. A missing
// line is a silent no-op.
func (srv *cartService) SetQuantity(ctx context.Context, productID string, quantity float64) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	line, ok := srv.lines[productID]
	if !ok {
		return nil
	}

	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		line.Quantity = 1
	} else {
		line.Quantity = max(1, int(quantity))
	}

	return srv.commit(ctx)
}

// RemoveItem deletes a line unconditionally. Removing an absent line is a no-op.
func (srv *cartService) RemoveItem(ctx context.Context, productID string) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if _, ok := srv.lines[productID]; !ok {
		return nil
	}

	delete(srv.lines, productID)
	for i, id := range srv.order {
		if id == productID {
			srv.order = append(srv.order[:i], srv.order[i+1:]...)

			break
		}
	}

	return srv.commit(ctx)
}

// View returns lines in display order with recomputed totals and count.
func (srv *cartService) View(_ context.Context) (*usecase.CartView, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	lines := make([]entity.CartLine, 0, len(srv.order))
	for _, id := range srv.order {
		lines = append(lines, *srv.lines[id])
	}

	return &usecase.CartView{
		Lines:  lines,
		Totals: srv.totalsLocked(),
		Count:  srv.countLocked(),
	}, nil
}

// Totals derives subtotal, tax and total. Recomputed on every read.
func (srv *cartService) Totals(_ context.Context) (entity.CartTotals, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.totalsLocked(), nil
}

// Count returns the total quantity across all lines, used for the badge display.
func (srv *cartService) Count(_ context.Context) (int, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.countLocked(), nil
}

// Flush re-persists the full cart state.
func (srv *cartService) Flush(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.commit(ctx)
}

func (srv *cartService) totalsLocked() entity.CartTotals {
	subtotal := decimal.Zero
	for _, line := range srv.lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	tax := subtotal.Mul(srv.taxRate)

	return entity.CartTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

func (srv *cartService) countLocked() int {
	count := 0
	for _, line := range srv.lines {
		count += line.Quantity
	}

	return count
}

// commit re-serializes the full cart to the gateway. The in-memory mutation
// is kept even when the write fails; the failure is surfaced, not swallowed.
// Callers must hold srv.mu.
func (srv *cartService) commit(ctx context.Context) error {
	payload, err := json.Marshal(srv.lines)
	if err != nil {
		return errors.Wrap(err, "failed to serialize cart state")
	}

	if err := srv.gateway.Set(ctx, repository.KeyCart, string(payload)); err != nil {
		srv.log(ctx).Error("Failed to persist cart state", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPersistFailed, "failed to persist cart state")
	}

	return nil
}
