package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

const featuredKey = "featured_products"

// FeaturedSource is the source of truth the cache falls back to: the product
// collection filtered on the featured flag.
type FeaturedSource interface {
	Featured(ctx context.Context) ([]model.Product, error)
}

// CatalogCache is a cache-aside projection of the featured-products view.
// The entry is disposable: deleting or rewriting it is always safe, and
// concurrent misses may each repopulate it (last write wins).
type CatalogCache struct {
	rdb    redis.UniversalClient
	source FeaturedSource
	ttl    time.Duration
}

func NewCatalogCache(rdb redis.UniversalClient, source FeaturedSource, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CatalogCache{rdb: rdb, source: source, ttl: ttl}
}

// Featured returns the cached list on a hit. On a miss it queries the
// source, repopulates the cache and returns the fresh list. A cache outage
// degrades to a plain source read rather than failing the request.
func (c *CatalogCache) Featured(ctx context.Context) ([]model.Product, error) {
	raw, err := c.rdb.Get(ctx, featuredKey).Bytes()
	if err == nil {
		var products []model.Product
		if decodeErr := json.Unmarshal(raw, &products); decodeErr == nil {
			return products, nil
		}
		slog.Warn("featured cache entry corrupt, refetching", "key", featuredKey)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("featured cache read failed, falling back to source", "error", err)
	}

	products, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.populate(ctx, products); err != nil {
		slog.Warn("featured cache populate failed", "error", err)
	}
	return products, nil
}

// Invalidate recomputes the entry from the source and rewrites it, so a
// featured-flag toggle becomes visible before the TTL elapses.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	products, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	return c.populate(ctx, products)
}

func (c *CatalogCache) fetch(ctx context.Context) ([]model.Product, error) {
	products, err := c.source.Featured(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrSourceUnavailable, err)
	}
	return products, nil
}

func (c *CatalogCache) populate(ctx context.Context, products []model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode featured products: %w", err)
	}
	if err := c.rdb.Set(ctx, featuredKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("write featured cache: %w", err)
	}
	return nil
}
