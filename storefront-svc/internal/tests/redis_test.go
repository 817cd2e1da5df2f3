package tests

import (
	"context"
	"testing"
	"time"

	"campus-storefront/changefeed"
	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisCache_RatingMarker(t *testing.T) {
	mr, client := newMiniRedis(t)
	cache := storage.NewRedisCache(client, time.Hour, time.Minute)
	ctx := context.Background()
	key := cache.RatingMarkerKey("user-1")

	exists, err := cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.SetMarker(ctx, key))

	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(2 * time.Hour)
	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Sections(t *testing.T) {
	_, client := newMiniRedis(t)
	cache := storage.NewRedisCache(client, time.Hour, time.Minute)
	ctx := context.Background()

	_, found, err := cache.GetSections(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	sections := []domain.Section{{ID: 1, Name: "Breakfast", Active: true}}
	require.NoError(t, cache.SetSections(ctx, sections))

	cached, found, err := cache.GetSections(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Breakfast", cached[0].Name)

	require.NoError(t, cache.InvalidateSections(ctx))
	_, found, err = cache.GetSections(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Unreachable(t *testing.T) {
	mr, client := newMiniRedis(t)
	cache := storage.NewRedisCache(client, time.Hour, time.Minute)
	mr.Close()

	_, _, err := cache.GetSections(context.Background())
	assert.Error(t, err)
}

func TestRedisCache_TopSellers(t *testing.T) {
	mr, client := newMiniRedis(t)
	cache := storage.NewRedisCache(client, time.Hour, time.Minute)
	key := changefeed.SalesKey("2026-10-16")

	mr.ZAdd(key, 3, "7")
	mr.ZAdd(key, 11, "2")
	mr.ZAdd(key, 5, "4")

	tests := []struct {
		name  string
		date  string
		limit int
		want  []domain.ProductSales
	}{
		{
			name:  "best first",
			date:  "2026-10-16",
			limit: 2,
			want:  []domain.ProductSales{{ProductID: 2, UnitsSold: 11}, {ProductID: 4, UnitsSold: 5}},
		},
		{
			name:  "day without sales",
			date:  "2026-10-15",
			limit: 10,
			want:  []domain.ProductSales{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := cache.TopSellers(context.Background(), testCase.date, testCase.limit)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestTokenStore(t *testing.T) {
	mr, client := newMiniRedis(t)
	store := storage.NewTokenStore(client)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", 30*time.Minute))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// already expired tokens need no entry
	require.NoError(t, store.Revoke(ctx, "jti-2", 0))
	assert.False(t, mr.Exists("revoked:jti-2"))

	mr.FastForward(time.Hour)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
