package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"campus-storefront/changefeed"
	"campus-storefront/storefront-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const sectionsKey = "catalog:sections:active"

type RedisCache struct {
	Client     *redis.Client
	MarkerTTL  time.Duration
	SectionTTL time.Duration
}

func NewRedisCache(client *redis.Client, markerTTL, sectionTTL time.Duration) *RedisCache {
	return &RedisCache{Client: client, MarkerTTL: markerTTL, SectionTTL: sectionTTL}
}

func (c *RedisCache) RatingMarkerKey(userID string) string {
	return "rating:" + userID
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) SetMarker(ctx context.Context, key string) error {
	return c.Client.Set(ctx, key, "1", c.MarkerTTL).Err()
}

// GetSections reports found=false on a cache miss.
func (c *RedisCache) GetSections(ctx context.Context) ([]domain.Section, bool, error) {
	payload, err := c.Client.Get(ctx, sectionsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var sections []domain.Section
	if err := json.Unmarshal(payload, &sections); err != nil {
		return nil, false, err
	}
	return sections, true, nil
}

func (c *RedisCache) SetSections(ctx context.Context, sections []domain.Section) error {
	payload, err := json.Marshal(sections)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, sectionsKey, payload, c.SectionTTL).Err()
}

func (c *RedisCache) InvalidateSections(ctx context.Context) error {
	return c.Client.Del(ctx, sectionsKey).Err()
}

// TopSellers reads the per-day sales recorded by the feed relay, best first.
func (c *RedisCache) TopSellers(ctx context.Context, date string, limit int) ([]domain.ProductSales, error) {
	entries, err := c.Client.ZRevRangeWithScores(ctx, changefeed.SalesKey(date), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	sales := make([]domain.ProductSales, 0, len(entries))
	for _, entry := range entries {
		member, _ := entry.Member.(string)
		productID, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		sales = append(sales, domain.ProductSales{ProductID: productID, UnitsSold: int(entry.Score)})
	}
	return sales, nil
}

// TokenStore keeps revoked session token ids until the token would have
// expired anyway.
type TokenStore struct {
	Client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{Client: client}
}

func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, "revoked:"+tokenID, "1", ttl).Err()
}

func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	res, err := s.Client.Exists(ctx, "revoked:"+tokenID).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}
