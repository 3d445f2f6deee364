package entity

import (
	"github.com/shopspring/decimal"
)

// CartLine is one product's entry in the cart. Name, price, image and
// category are snapshotted from the catalog at the time of the first add, so
// a line stays coherent even if it is rendered without catalog access.
type CartLine struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"` // Always >= 1; removal is an explicit operation.
}

// LineTotal returns price times quantity for this line.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotals is the derived money view of a cart. It is recomputed on every
// read rather than cached.
type CartTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
