package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shopkit/shop-service/internal/domain"
)

const (
	keyPrefix  = "shop:product:"
	listKey    = keyPrefix + "all"
	opTimeout  = 250 * time.Millisecond
	defaultTTL = 5 * time.Minute
)

// ProductCache is a Redis read-through cache for catalogue reads. Failures
// are logged and reported as misses; a nil *ProductCache is a no-op.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
	gen    atomic.Uint64
}

// NewProductCache returns nil when client is nil so callers can skip caching.
func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProductCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductCache{client: client, ttl: ttl, logger: logger}
}

// GetProduct returns the cached product, or false on miss.
func (c *ProductCache) GetProduct(ctx context.Context, id string) (*domain.Product, bool) {
	var product domain.Product
	if !c.get(ctx, keyPrefix+id, &product) {
		return nil, false
	}
	return &product, true
}

// SetProduct caches a single product.
func (c *ProductCache) SetProduct(ctx context.Context, product *domain.Product) {
	if product == nil {
		return
	}
	c.set(ctx, keyPrefix+product.ID, product)
}

// GetList returns the cached catalogue listing, or false on miss.
func (c *ProductCache) GetList(ctx context.Context) ([]domain.Product, bool) {
	var products []domain.Product
	if !c.get(ctx, listKey, &products) {
		return nil, false
	}
	return products, true
}

// SetList caches the catalogue listing.
func (c *ProductCache) SetList(ctx context.Context, products []domain.Product) {
	c.set(ctx, listKey, products)
}

// Generation returns a counter bumped by every Invalidate in this process.
func (c *ProductCache) Generation() uint64 {
	if c == nil {
		return 0
	}
	return c.gen.Load()
}

// SetListIfCurrent caches the listing unless Invalidate ran after gen was
// read. Writers on other instances are not seen, so a listing read before a
// remote write can stay cached until the TTL expires.
func (c *ProductCache) SetListIfCurrent(ctx context.Context, products []domain.Product, gen uint64) {
	if c == nil || c.gen.Load() != gen {
		return
	}
	c.set(ctx, listKey, products)
}

// Invalidate drops the listing and the given product entries.
func (c *ProductCache) Invalidate(ctx context.Context, ids ...string) {
	if c == nil {
		return
	}
	c.gen.Add(1)
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, listKey)
	for _, id := range ids {
		keys = append(keys, keyPrefix+id)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logError("del", err)
	}
}

func (c *ProductCache) get(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logError("get", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logError("decode", err)
		return false
	}
	return true
}

func (c *ProductCache) set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logError("encode", err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logError("set", err)
	}
}

func (c *ProductCache) logError(op string, err error) {
	c.logger.Warn("product cache error", zap.String("op", op), zap.Error(err))
}
