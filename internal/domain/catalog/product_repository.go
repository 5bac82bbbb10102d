package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter, newest first by default
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindAvailable finds all products visible in the storefront, newest first
	FindAvailable(ctx context.Context) ([]Product, error)

	// FindFeatured finds featured and available products, newest first
	FindFeatured(ctx context.Context, limit int) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
