package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"campus-storefront/config"
	"campus-storefront/feed-svc/internal/service"
	"campus-storefront/feed-svc/internal/storage"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.InitLogger(cfg.Log, "feed-svc")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg.DB)
	if err := storage.EnsureTriggers(ctx, db); err != nil {
		logger.Fatalf("Failed to install change triggers: %v", err)
	}
	db.Close()

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	listener, err := storage.NewPGListener(cfg.DB.DSN())
	if err != nil {
		logger.Fatalf("Failed to listen for row changes: %v", err)
	}
	defer listener.Close()

	writer := config.NewKafkaWriter(cfg.Kafka, "")
	defer writer.Close()

	relay := service.NewRelay(listener, storage.NewKafkaPublisher(writer), storage.NewSalesStats(rdb))
	if err := relay.Start(ctx); err != nil {
		logger.Fatalf("Relay stopped: %v", err)
	}
	logger.Info("Change feed relay stopped")
}
