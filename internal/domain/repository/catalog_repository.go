// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrProductNotFound is a domain-specific error returned when a product id is absent from the catalog.
var ErrProductNotFound = errors.New("product not found")

// CatalogRepository provides read access to the fixed product catalog.
// The catalog never changes after startup, so there are no write operations.
type CatalogRepository interface {
	// All returns every product in declared catalog order.
	All(ctx context.Context) []entity.Product

	// FindByID retrieves a single product by its unique id.
	FindByID(ctx context.Context, id string) (*entity.Product, error)

	// Categories returns the distinct categories present in the catalog, in
	// first-appearance order, prefixed with the "all" sentinel.
	Categories(ctx context.Context) []string
}
