package service

import (
	"context"
	"strings"

	"campus-storefront/storefront-svc/internal/domain"

	log "github.com/sirupsen/logrus"
)

// CatalogService holds the staff-only catalog operations.
type CatalogService struct {
	repository CatalogRepository
	sections   SectionCache
	calendar   domain.Calendar
}

func NewCatalogService(repository CatalogRepository, sections SectionCache, calendar domain.Calendar) *CatalogService {
	return &CatalogService{repository: repository, sections: sections, calendar: calendar}
}

func (s *CatalogService) CreateSection(ctx context.Context, section *domain.Section) error {
	section.Name = strings.TrimSpace(section.Name)
	if section.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if err := s.repository.CreateSection(ctx, section); err != nil {
		return domain.NewDataAccessError("create section", err)
	}
	s.invalidateSections(ctx)
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.repository.CreateProduct(ctx, product); err != nil {
		return domain.NewDataAccessError("create product", err)
	}
	return nil
}

// UpdateProduct reports false when no product has the given id.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) (bool, error) {
	if err := validateProduct(product); err != nil {
		return false, err
	}
	affected, err := s.repository.UpdateProduct(ctx, product)
	if err != nil {
		return false, domain.NewDataAccessError("update product", err)
	}
	return affected > 0, nil
}

func (s *CatalogService) DeactivateProduct(ctx context.Context, id int) (bool, error) {
	affected, err := s.repository.DeactivateProduct(ctx, id)
	if err != nil {
		return false, domain.NewDataAccessError("deactivate product", err)
	}
	return affected > 0, nil
}

// InitializeDailyStock creates a row for every active product that has none
// for the date yet. An empty date means today.
func (s *CatalogService) InitializeDailyStock(ctx context.Context, date string, quantity int) (int64, error) {
	date, err := s.calendar.ResolveDate(date)
	if err != nil {
		return 0, err
	}
	if quantity < 0 {
		return 0, domain.NewValidationError("quantity", "must not be negative")
	}

	created, err := s.repository.InitializeDailyStock(ctx, date, quantity)
	if err != nil {
		return 0, domain.NewDataAccessError("initialize daily stock", err)
	}
	log.WithFields(log.Fields{"date": date, "quantity": quantity}).Infof("initialized %d stock rows", created)
	return created, nil
}

func (s *CatalogService) ListDailyStock(ctx context.Context, date string) ([]domain.DailyStock, error) {
	date, err := s.calendar.ResolveDate(date)
	if err != nil {
		return nil, err
	}
	stock, err := s.repository.ListDailyStock(ctx, date)
	if err != nil {
		return nil, domain.NewDataAccessError("list daily stock", err)
	}
	return stock, nil
}

func (s *CatalogService) invalidateSections(ctx context.Context) {
	if s.sections == nil {
		return
	}
	if err := s.sections.InvalidateSections(ctx); err != nil {
		log.Warnf("section cache invalidation failed: %v", err)
	}
}

func validateProduct(product *domain.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	switch {
	case product.Name == "":
		return domain.NewValidationError("name", "is required")
	case product.SectionID <= 0:
		return domain.NewValidationError("section_id", "is required")
	case product.Price < 0:
		return domain.NewValidationError("price", "must not be negative")
	}
	return nil
}
