package storage

import (
	"context"
	"strconv"
	"time"

	"campus-storefront/changefeed"

	"github.com/redis/go-redis/v9"
)

const salesRetention = 7 * 24 * time.Hour

type SalesStats struct {
	rdb *redis.Client
}

func NewSalesStats(rdb *redis.Client) *SalesStats {
	return &SalesStats{rdb: rdb}
}

func (s *SalesStats) RecordSale(ctx context.Context, date string, productID, quantity int) error {
	key := changefeed.SalesKey(date)
	pipe := s.rdb.TxPipeline()
	pipe.ZIncrBy(ctx, key, float64(quantity), strconv.Itoa(productID))
	pipe.Expire(ctx, key, salesRetention)
	_, err := pipe.Exec(ctx)
	return err
}
