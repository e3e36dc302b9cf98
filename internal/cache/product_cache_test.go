package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopkit/shop-service/internal/domain"
)

func TestProductCache_NilIsNoop(t *testing.T) {
	c := NewProductCache(nil, time.Minute, zap.NewNop())
	require.Nil(t, c)

	ctx := context.Background()
	c.SetProduct(ctx, &domain.Product{ID: "p1"})
	c.SetList(ctx, []domain.Product{{ID: "p1"}})
	c.Invalidate(ctx, "p1")

	_, ok := c.GetProduct(ctx, "p1")
	assert.False(t, ok)
	_, ok = c.GetList(ctx)
	assert.False(t, ok)
}

func TestProductCache_UnreachableRedisIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	c := NewProductCache(client, time.Minute, zap.NewNop())
	ctx := context.Background()

	c.SetProduct(ctx, &domain.Product{ID: "p1"})
	_, ok := c.GetProduct(ctx, "p1")
	assert.False(t, ok)
}

func newMiniredisCache(t *testing.T) (*ProductCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewProductCache(client, time.Minute, zap.NewNop()), mr
}

func TestProductCache_RoundTrip(t *testing.T) {
	c, mr := newMiniredisCache(t)
	ctx := context.Background()

	product := &domain.Product{
		ID:        uuid.NewString(),
		Title:     "Eau de Parfum",
		Price:     49.9,
		Category:  domain.Category{ID: 1, Name: "Perfume", Image: "cat.png"},
		ImageURLs: []string{"a.png", "b.png"},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	c.SetProduct(ctx, product)
	c.SetList(ctx, []domain.Product{*product})
	assert.True(t, mr.Exists(keyPrefix+product.ID))
	assert.True(t, mr.Exists(listKey))
	assert.Equal(t, time.Minute, mr.TTL(listKey))

	got, ok := c.GetProduct(ctx, product.ID)
	require.True(t, ok)
	assert.Equal(t, product.Title, got.Title)
	assert.Equal(t, product.Category, got.Category)
	assert.Equal(t, product.ImageURLs, got.ImageURLs)

	list, ok := c.GetList(ctx)
	require.True(t, ok)
	assert.Len(t, list, 1)

	c.Invalidate(ctx, product.ID)
	assert.False(t, mr.Exists(keyPrefix+product.ID))
	_, ok = c.GetProduct(ctx, product.ID)
	assert.False(t, ok)
	_, ok = c.GetList(ctx)
	assert.False(t, ok)
}

func TestProductCache_EntriesExpire(t *testing.T) {
	c, mr := newMiniredisCache(t)
	ctx := context.Background()

	c.SetList(ctx, []domain.Product{{ID: "p1"}})
	mr.FastForward(2 * time.Minute)

	_, ok := c.GetList(ctx)
	assert.False(t, ok)
}

func TestProductCache_SetListIfCurrentSkipsAfterInvalidate(t *testing.T) {
	c, mr := newMiniredisCache(t)
	ctx := context.Background()

	gen := c.Generation()
	c.Invalidate(ctx)
	c.SetListIfCurrent(ctx, []domain.Product{{ID: "stale"}}, gen)
	assert.False(t, mr.Exists(listKey))

	c.SetListIfCurrent(ctx, []domain.Product{{ID: "fresh"}}, c.Generation())
	list, ok := c.GetList(ctx)
	require.True(t, ok)
	assert.Equal(t, "fresh", list[0].ID)
}

func TestProductCache_CorruptEntryIsAMiss(t *testing.T) {
	c, mr := newMiniredisCache(t)
	require.NoError(t, mr.Set(listKey, "{not json"))

	_, ok := c.GetList(context.Background())
	assert.False(t, ok)
}
