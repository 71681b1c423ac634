package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/emansa3ed/jewelry-store/internal/application/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
)

// InMemoryProductCache is a process-local product cache used when Redis
// is not configured. Expired entries are dropped lazily on access.
type InMemoryProductCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]productEntry
	ttl     time.Duration
}

type productEntry struct {
	product   catalog.Product
	expiresAt time.Time
}

// NewInMemoryProductCache creates an in-memory product cache. A zero or
// negative ttl falls back to the default.
func NewInMemoryProductCache(ttl time.Duration) *InMemoryProductCache {
	if ttl <= 0 {
		ttl = defaultProductTTL
	}
	return &InMemoryProductCache{
		entries: make(map[uuid.UUID]productEntry),
		ttl:     ttl,
	}
}

// Get retrieves a cached product. Returns (nil, nil) on a miss.
func (c *InMemoryProductCache) Get(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, id)
		c.mu.Unlock()
		return nil, nil
	}

	product := entry.product
	return &product, nil
}

// Set stores a copy of the product under its ID.
func (c *InMemoryProductCache) Set(_ context.Context, product *catalog.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[product.ID] = productEntry{
		product:   *product,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// Invalidate evicts the product. Evicting an absent key succeeds.
func (c *InMemoryProductCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

var _ appcatalog.ProductCache = (*InMemoryProductCache)(nil)
