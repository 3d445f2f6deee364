package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// AddItemInput defines the data required to add a product to the cart.
// A zero Quantity means the caller wants the default single unit.
type AddItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// ChangeQuantityInput adjusts an existing line's quantity by a signed delta.
type ChangeQuantityInput struct {
	Delta int `json:"delta"`
}

// SetQuantityInput replaces an existing line's quantity. The value is carried
// as a float so a non-finite or fractional input can be normalized instead of
// rejected at the binding layer.
type SetQuantityInput struct {
	Quantity float64 `json:"quantity"`
}

// --- Output DTOs ---

// CartView is the derived view model of the cart: lines in display order plus
// the recomputed totals and badge count.
type CartView struct {
	Lines  []entity.CartLine `json:"lines"`
	Totals entity.CartTotals `json:"totals"`
	Count  int               `json:"count"`
}

// CartUsecase defines the interface for cart-related business operations.
type CartUsecase interface {
	AddItem(ctx context.Context, input *AddItemInput) error
	ChangeQuantity(ctx context.Context, productID string, delta int) error
	SetQuantity(ctx context.Context, productID string, quantity float64) error
	RemoveItem(ctx context.Context, productID string) error
	View(ctx context.Context) (*CartView, error)
	Totals(ctx context.Context) (entity.CartTotals, error)
	Count(ctx context.Context) (int, error)

	// Flush re-persists the full cart state; called once on shutdown.
	Flush(ctx context.Context) error
}
