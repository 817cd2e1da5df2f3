package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"campus-storefront/storefront-svc/internal/domain"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type ImageService struct {
	store   ImageStore
	catalog CatalogRepository
	now     func() time.Time
}

func NewImageService(store ImageStore, catalog CatalogRepository) *ImageService {
	return &ImageService{store: store, catalog: catalog, now: time.Now}
}

func productImagePrefix(productID int) string {
	return fmt.Sprintf("products/producto_%d/", productID)
}

// Upload stores the image and points the product at it.
func (s *ImageService) Upload(ctx context.Context, productID int, filename, contentType string, body io.Reader) (domain.ProductImage, error) {
	if !allowedImageTypes[contentType] {
		return domain.ProductImage{}, domain.NewValidationError("image", "unsupported content type "+contentType)
	}

	name := strings.ReplaceAll(path.Base(filename), " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	now := s.now()
	key := fmt.Sprintf("%s%d_%s", productImagePrefix(productID), now.Unix(), name)

	url, err := s.store.Upload(ctx, key, contentType, body)
	if err != nil {
		return domain.ProductImage{}, domain.NewDataAccessError("upload image", err)
	}
	if err := s.catalog.UpdateProductImage(ctx, productID, url); err != nil {
		return domain.ProductImage{}, domain.NewDataAccessError("update product image", err)
	}

	return domain.ProductImage{Key: key, URL: url, UpdatedAt: now}, nil
}

func (s *ImageService) List(ctx context.Context, productID int) ([]domain.ProductImage, error) {
	images, err := s.store.List(ctx, productImagePrefix(productID))
	if err != nil {
		return nil, domain.NewDataAccessError("list images", err)
	}
	return images, nil
}

func (s *ImageService) Delete(ctx context.Context, productID int, key string) error {
	if !strings.HasPrefix(key, productImagePrefix(productID)) {
		return domain.NewValidationError("key", "does not belong to this product")
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return domain.NewDataAccessError("delete image", err)
	}
	return nil
}
