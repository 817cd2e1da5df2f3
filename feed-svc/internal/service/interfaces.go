package service

import (
	"context"

	"campus-storefront/changefeed"
	"campus-storefront/feed-svc/internal/storage"
)

type NotificationSource interface {
	Next(ctx context.Context) ([]byte, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}

type SalesRecorder interface {
	RecordSale(ctx context.Context, date string, productID, quantity int) error
}

type RelayInterface interface {
	Start(ctx context.Context) error
	Process(ctx context.Context, payload []byte) error
	TrackSales(ctx context.Context, evt changefeed.Event)
}

var (
	_ RelayInterface     = (*Relay)(nil)
	_ NotificationSource = (*storage.PGListener)(nil)
	_ EventPublisher     = (*storage.KafkaPublisher)(nil)
	_ SalesRecorder      = (*storage.SalesStats)(nil)
)
