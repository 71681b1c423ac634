package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
)

// ProductCache is a read-through cache of individual products.
// A miss is reported as (nil, nil) so callers can fall back to the
// repository without treating it as a failure.
type ProductCache interface {
	// Get returns the cached product, or (nil, nil) on a miss
	Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error)

	// Set stores the product under its ID
	Set(ctx context.Context, product *catalog.Product) error

	// Invalidate evicts the product. Evicting an absent key succeeds.
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// NoOpProductCache never caches anything. Used when redis is not configured.
type NoOpProductCache struct{}

// NewNoOpProductCache creates a NoOpProductCache
func NewNoOpProductCache() *NoOpProductCache {
	return &NoOpProductCache{}
}

// Get always misses
func (c *NoOpProductCache) Get(_ context.Context, _ uuid.UUID) (*catalog.Product, error) {
	return nil, nil
}

// Set discards the product
func (c *NoOpProductCache) Set(_ context.Context, _ *catalog.Product) error {
	return nil
}

// Invalidate is a no-op
func (c *NoOpProductCache) Invalidate(_ context.Context, _ uuid.UUID) error {
	return nil
}

var _ ProductCache = (*NoOpProductCache)(nil)
