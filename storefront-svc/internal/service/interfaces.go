package service

import (
	"context"
	"io"

	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/storage"
)

type CatalogRepository interface {
	ListActiveSections(ctx context.Context) ([]domain.Section, error)
	CreateSection(ctx context.Context, section *domain.Section) error
	ListActiveProducts(ctx context.Context) ([]domain.ProductWithStock, error)
	ListProductsBySection(ctx context.Context, sectionID int) ([]domain.ProductWithStock, error)
	GetActiveProduct(ctx context.Context, id int) (domain.ProductWithStock, bool, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) (int64, error)
	DeactivateProduct(ctx context.Context, id int) (int64, error)
	UpdateProductImage(ctx context.Context, id int, imageURL string) error
	GetCurrentStock(ctx context.Context, productID int) (int, error)
	GetStockLevel(ctx context.Context, productID int) (string, int, bool, error)
	InitializeDailyStock(ctx context.Context, date string, quantity int) (int64, error)
	ListDailyStock(ctx context.Context, date string) ([]domain.DailyStock, error)
}

type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, req domain.InvoiceRequest, taxRate float64) (domain.InvoiceResult, error)
	ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, id int) (domain.Invoice, bool, error)
	CountPaidInvoices(ctx context.Context, customerID string) (int, error)
}

type RatingRepository interface {
	HasRating(ctx context.Context, userID string) (bool, error)
	InsertRating(ctx context.Context, rating *domain.Rating) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (domain.Profile, bool, error)
	UpsertProfile(ctx context.Context, profile domain.Profile) error
}

type SectionCache interface {
	GetSections(ctx context.Context) ([]domain.Section, bool, error)
	SetSections(ctx context.Context, sections []domain.Section) error
	InvalidateSections(ctx context.Context) error
}

type SalesReader interface {
	TopSellers(ctx context.Context, date string, limit int) ([]domain.ProductSales, error)
}

// GatewayCache is the Redis side of the gateway.
type GatewayCache interface {
	SectionCache
	SalesReader
}

type RatingCache interface {
	RatingMarkerKey(userID string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	List(ctx context.Context, prefix string) ([]domain.ProductImage, error)
	Delete(ctx context.Context, key string) error
}

type GatewayInterface interface {
	ListActiveSections(ctx context.Context) ([]domain.Section, error)
	ListProductsWithStock(ctx context.Context) ([]domain.ProductWithStock, error)
	ListProductsBySection(ctx context.Context, sectionID int) ([]domain.ProductWithStock, error)
	GetProductWithStock(ctx context.Context, id int) (domain.ProductWithStock, bool, error)
	GetCurrentStock(ctx context.Context, productID int) (int, error)
	ListBestSellers(ctx context.Context, date string, limit int) ([]domain.ProductSales, error)
	CheckAvailability(ctx context.Context, lines []domain.StockRequest) (domain.Availability, error)
	CreateInvoice(ctx context.Context, customerID string, lines []domain.StockRequest, paymentMethod, notes string) (domain.InvoiceResult, error)
	ListInvoicesForUser(ctx context.Context, customerID string) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, id int) (domain.Invoice, bool, error)
	IsFirstPaidInvoice(ctx context.Context, userID string) (bool, error)
}

type CatalogServiceInterface interface {
	CreateSection(ctx context.Context, section *domain.Section) error
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) (bool, error)
	DeactivateProduct(ctx context.Context, id int) (bool, error)
	InitializeDailyStock(ctx context.Context, date string, quantity int) (int64, error)
	ListDailyStock(ctx context.Context, date string) ([]domain.DailyStock, error)
}

type RatingServiceInterface interface {
	HasUserRated(ctx context.Context, userID string) (bool, error)
	Eligibility(ctx context.Context, userID string) (domain.RatingEligibility, error)
	SubmitRating(ctx context.Context, userID string, score int, comment string) (*domain.Rating, error)
}

type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, userID string) (domain.Profile, bool, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) error
}

type ImageServiceInterface interface {
	Upload(ctx context.Context, productID int, filename, contentType string, body io.Reader) (domain.ProductImage, error)
	List(ctx context.Context, productID int) ([]domain.ProductImage, error)
	Delete(ctx context.Context, productID int, key string) error
}

var (
	_ GatewayInterface        = (*Gateway)(nil)
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ RatingServiceInterface  = (*RatingService)(nil)
	_ ProfileServiceInterface = (*ProfileService)(nil)
	_ ImageServiceInterface   = (*ImageService)(nil)

	_ CatalogRepository = (*storage.PostgresRepository)(nil)
	_ InvoiceRepository = (*storage.PostgresRepository)(nil)
	_ RatingRepository  = (*storage.PostgresRepository)(nil)
	_ ProfileRepository = (*storage.PostgresRepository)(nil)
	_ GatewayCache      = (*storage.RedisCache)(nil)
	_ RatingCache       = (*storage.RedisCache)(nil)
	_ ImageStore        = (*storage.S3ImageStore)(nil)
)
