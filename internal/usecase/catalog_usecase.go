// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// ListProductsInput carries the filter/sort selection for a catalog listing.
// All fields are optional; zero values mean "no filtering" and relevance order.
type ListProductsInput struct {
	Search   string `json:"search" query:"search"`
	Category string `json:"category" query:"category"`
	MinPrice string `json:"minPrice" query:"minPrice"`
	MaxPrice string `json:"maxPrice" query:"maxPrice"`
	SortBy   string `json:"sortBy" query:"sortBy"`
}

// --- Output DTOs ---

// ListProductsOutput returns the filtered, ordered product subsequence.
type ListProductsOutput struct {
	Products []entity.Product `json:"products"`
	Total    int              `json:"total"`
}

// CatalogUsecase defines the interface for catalog-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error)
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ShareProductQR(ctx context.Context, productID string) ([]byte, error)
}
