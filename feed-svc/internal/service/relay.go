package service

import (
	"context"
	"errors"
	"time"

	"campus-storefront/changefeed"

	log "github.com/sirupsen/logrus"
)

// Relay forwards row-change notifications to the Kafka topic of their table.
// Delivery is best-effort: bad payloads and publish failures are logged and
// skipped.
type Relay struct {
	Source    NotificationSource
	Publisher EventPublisher
	Sales     SalesRecorder
}

func NewRelay(source NotificationSource, publisher EventPublisher, sales SalesRecorder) *Relay {
	return &Relay{
		Source:    source,
		Publisher: publisher,
		Sales:     sales,
	}
}

// Start returns nil once ctx is cancelled, or the source's error when the
// source can no longer deliver.
func (r *Relay) Start(ctx context.Context) error {
	log.Info("Starting change feed relay...")
	for {
		payload, err := r.Source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if err := r.Process(ctx, payload); err != nil {
			log.Warnf("Skipping change notification: %v", err)
		}
	}
}

func (r *Relay) Process(ctx context.Context, payload []byte) error {
	evt, err := changefeed.Decode(payload)
	if err != nil {
		return err
	}
	if evt.CommitTime.IsZero() {
		evt.CommitTime = time.Now().UTC()
	}

	topic, err := changefeed.TopicFor(evt.Table)
	if err != nil {
		return err
	}
	value, err := evt.Encode()
	if err != nil {
		return err
	}

	if err := r.Publisher.Publish(ctx, topic, changefeed.RowKey(evt), value); err != nil {
		log.WithFields(log.Fields{"table": evt.Table, "event": evt.EventType}).Errorf("Error publishing change: %v", err)
	}

	r.TrackSales(ctx, evt)
	return nil
}

// TrackSales records the units sold by a daily_stock update.
func (r *Relay) TrackSales(ctx context.Context, evt changefeed.Event) {
	if r.Sales == nil || evt.Table != changefeed.TableStock || evt.EventType != changefeed.Update {
		return
	}

	after, err := changefeed.DecodeStock(evt)
	if err != nil {
		return
	}
	before, err := changefeed.DecodeStock(changefeed.Event{
		EventType: changefeed.Delete,
		Table:     evt.Table,
		Before:    evt.Before,
	})
	if err != nil {
		return
	}

	sold := after.SoldQuantity - before.SoldQuantity
	if sold <= 0 {
		return
	}
	if err := r.Sales.RecordSale(ctx, after.StockDate, after.ProductID, sold); err != nil {
		log.Warnf("Error recording sale of product %d: %v", after.ProductID, err)
	}
}
