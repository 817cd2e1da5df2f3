package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"campus-storefront/changefeed"
	"campus-storefront/config"
	httpapi "campus-storefront/storefront-svc/internal/api/http"
	"campus-storefront/storefront-svc/internal/cart"
	"campus-storefront/storefront-svc/internal/checkout"
	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/realtime"
	"campus-storefront/storefront-svc/internal/service"
	"campus-storefront/storefront-svc/internal/session"
	"campus-storefront/storefront-svc/internal/storage"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type app struct {
	handler *httpapi.Handler
	feed    *realtime.Feed
	carts   *cart.Registry
}

// newApp wires every storefront component. imageStore may be nil.
func newApp(cfg *config.Config, db *sql.DB, rdb *redis.Client, imageStore service.ImageStore) (*app, error) {
	location, err := cfg.Store.Location()
	if err != nil {
		return nil, err
	}
	calendar := domain.NewCalendar(location)

	repo := storage.NewPostgresRepository(db)
	cache := storage.NewRedisCache(rdb, cfg.Store.RatingMarkerTTL, cfg.Store.SectionCacheTTL)
	tokens := storage.NewTokenStore(rdb)

	gateway := service.NewGateway(repo, repo, cache, cfg.Store.TaxRate, calendar)
	qr := service.DefaultQRGenerator{BaseURL: cfg.HTTP.PublicBaseURL}
	gate := session.NewGate(repo, cfg.Auth.ProfileTimeout)
	carts := cart.NewRegistry(gateway, calendar)
	feed := realtime.NewFeed()

	handler := &httpapi.Handler{
		Gateway:      gateway,
		Catalog:      service.NewCatalogService(repo, cache, calendar),
		Ratings:      service.NewRatingService(repo, cache, gateway),
		Profiles:     service.NewProfileService(repo),
		Auth:         session.NewAuthenticator(repo, repo, tokens, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Gate:         gate,
		Carts:        carts,
		Checkout:     checkout.NewOrchestrator(gateway, gate, qr),
		Feed:         feed,
		QR:           qr,
		DefaultStock: cfg.Store.DefaultStock,
	}
	if imageStore != nil {
		handler.Images = service.NewImageService(imageStore, repo)
	}

	return &app{handler: handler, feed: feed, carts: carts}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.InitLogger(cfg.Log, "storefront-svc")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg.DB)
	defer db.Close()
	if err := storage.NewPostgresRepository(db).EnsureSchema(ctx); err != nil {
		logger.Fatalf("Failed to ensure schema: %v", err)
	}

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	var imageStore service.ImageStore
	s3Client, err := config.NewS3Client(ctx, cfg.S3)
	if err != nil {
		logger.Fatalf("Failed to init S3: %v", err)
	}
	if s3Client != nil {
		imageStore = storage.NewS3ImageStore(s3Client, cfg.S3.Bucket, cfg.S3.PublicURL())
	} else {
		logger.Warn("S3 bucket not configured, product image storage disabled")
	}

	a, err := newApp(cfg, db, rdb, imageStore)
	if err != nil {
		logger.Fatalf("Failed to wire storefront: %v", err)
	}
	defer a.feed.Close()

	var sources []realtime.Source
	for _, table := range changefeed.Tables() {
		topic, _ := changefeed.TopicFor(table)
		source := realtime.NewKafkaSource(config.NewKafkaReader(cfg.Kafka, topic))
		defer source.Close()
		sources = append(sources, source)
	}
	go a.feed.Run(ctx, sources...)

	stockEvents := a.feed.Subscribe(changefeed.TableStock, 256)
	defer stockEvents.Close()
	go a.carts.Follow(ctx, stockEvents.Events())

	if err := httpapi.StartServer(ctx, cfg.HTTP.Addr, httpapi.NewRouter(a.handler)); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
	logger.Info("Storefront Service stopped")
}
