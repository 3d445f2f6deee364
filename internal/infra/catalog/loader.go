// Package catalog provides the in-memory catalog repository. Product data is
// compiled into the binary and can be overridden with an external JSON file,
// so the catalog is fixed for the life of the process either way.
package catalog

import (
	"context"
	"encoding/json"
	"os"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	_ "embed"
)

//go:embed products.json
var embeddedProducts []byte

type catalogRepository struct {
	products   []entity.Product
	byID       map[string]entity.Product
	categories []string
}

// New builds the catalog repository from the configured catalog file, or from
// the embedded product data when no file is configured.
func New(cfg *config.Config) (repository.CatalogRepository, error) {
	data := embeddedProducts
	if cfg.Storefront.CatalogPath != "" {
		fileData, err := os.ReadFile(cfg.Storefront.CatalogPath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read catalog file")
		}
		data = fileData
	}

	return NewFromJSON(data)
}

// NewFromJSON builds the catalog repository from a JSON product list.
func NewFromJSON(data []byte) (repository.CatalogRepository, error) {
	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode catalog")
	}

	byID := make(map[string]entity.Product, len(products))
	var categories []string
	seen := make(map[string]bool)

	for _, p := range products {
		if _, dup := byID[p.ID]; dup {
			return nil, errors.Errorf("duplicate product id %q in catalog", p.ID)
		}
		byID[p.ID] = p

		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}

	return &catalogRepository{
		products:   products,
		byID:       byID,
		categories: append([]string{entity.CategoryAll}, categories...),
	}, nil
}

// All returns every product in declared catalog order.
func (r *catalogRepository) All(_ context.Context) []entity.Product {
	// Copy so callers can't mutate the fixed catalog.
	products := make([]entity.Product, len(r.products))
	copy(products, r.products)

	return products
}

// FindByID retrieves a single product by its unique id.
func (r *catalogRepository) FindByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return &p, nil
}

// Categories returns "all" followed by the distinct categories in first-appearance order.
func (r *catalogRepository) Categories(_ context.Context) []string {
	categories := make([]string, len(r.categories))
	copy(categories, r.categories)

	return categories
}
