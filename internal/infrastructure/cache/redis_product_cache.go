package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appcatalog "github.com/emansa3ed/jewelry-store/internal/application/catalog"
	"github.com/emansa3ed/jewelry-store/internal/domain/catalog"
)

const defaultProductTTL = 5 * time.Minute

// RedisProductCache caches product snapshots in Redis under
// "product:<id>". A cache miss is reported as (nil, nil).
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisProductCacheOption configures a RedisProductCache.
type RedisProductCacheOption func(*RedisProductCache)

// WithProductTTL sets how long a cached product stays valid.
func WithProductTTL(ttl time.Duration) RedisProductCacheOption {
	return func(c *RedisProductCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache.
func WithCacheLogger(logger *zap.Logger) RedisProductCacheOption {
	return func(c *RedisProductCache) {
		c.logger = logger
	}
}

// NewRedisProductCache creates a product cache backed by an existing
// Redis client. The caller retains ownership of the client.
func NewRedisProductCache(client *redis.Client, opts ...RedisProductCacheOption) *RedisProductCache {
	cache := &RedisProductCache{
		client: client,
		ttl:    defaultProductTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

func productKey(id uuid.UUID) string {
	return "product:" + id.String()
}

// Get retrieves a cached product. Returns (nil, nil) on a miss.
func (c *RedisProductCache) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err == redis.Nil {
		c.logger.Debug("product cache miss", zap.String("product_id", id.String()))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product from cache: %w", err)
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// A corrupt entry behaves like a miss after eviction.
		c.logger.Warn("corrupt product cache entry, evicting",
			zap.String("product_id", id.String()),
			zap.Error(err))
		c.client.Del(ctx, productKey(id))
		return nil, nil
	}
	return &product, nil
}

// Set stores the product under its ID with the configured TTL.
func (c *RedisProductCache) Set(ctx context.Context, product *catalog.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product for cache: %w", err)
	}
	if err := c.client.Set(ctx, productKey(product.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set product in cache: %w", err)
	}
	return nil
}

// Invalidate evicts the product. Evicting an absent key succeeds.
func (c *RedisProductCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		return fmt.Errorf("invalidate product in cache: %w", err)
	}
	return nil
}

var _ appcatalog.ProductCache = (*RedisProductCache)(nil)
