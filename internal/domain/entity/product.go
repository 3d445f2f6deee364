// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/shopspring/decimal"
)

// Product is one purchasable item in the catalog. The catalog is assembled
// once at startup and never mutated afterwards, so products are treated as
// immutable values everywhere in the system.
type Product struct {
	ID          string          `json:"id"`          // Unique identifier within the catalog.
	Name        string          `json:"name"`        // Display name.
	Category    string          `json:"category"`    // Category as stored; compared case-sensitively when filtering.
	Description string          `json:"description"` // Display description; may be empty.
	Price       decimal.Decimal `json:"price"`       // Non-negative amount in the store currency.
	Rating      float64         `json:"rating"`      // Average rating in [0, 5].
	Reviews     int             `json:"reviews"`     // Non-negative review count.
	Image       string          `json:"image"`       // URI or path of the product image.
}
