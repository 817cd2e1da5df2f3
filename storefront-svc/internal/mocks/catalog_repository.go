package mocks

import (
	"context"

	"campus-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// CatalogRepository is a mock type for the CatalogRepository type
type CatalogRepository struct {
	mock.Mock
}

// ListActiveSections provides a mock function with given fields: ctx
func (_m *CatalogRepository) ListActiveSections(ctx context.Context) ([]domain.Section, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Section
	if rf, ok := ret.Get(0).([]domain.Section); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// CreateSection provides a mock function with given fields: ctx, section
func (_m *CatalogRepository) CreateSection(ctx context.Context, section *domain.Section) error {
	ret := _m.Called(ctx, section)

	r0 := ret.Error(0)

	return r0
}

// ListActiveProducts provides a mock function with given fields: ctx
func (_m *CatalogRepository) ListActiveProducts(ctx context.Context) ([]domain.ProductWithStock, error) {
	ret := _m.Called(ctx)

	var r0 []domain.ProductWithStock
	if rf, ok := ret.Get(0).([]domain.ProductWithStock); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListProductsBySection provides a mock function with given fields: ctx, sectionID
func (_m *CatalogRepository) ListProductsBySection(ctx context.Context, sectionID int) ([]domain.ProductWithStock, error) {
	ret := _m.Called(ctx, sectionID)

	var r0 []domain.ProductWithStock
	if rf, ok := ret.Get(0).([]domain.ProductWithStock); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// GetActiveProduct provides a mock function with given fields: ctx, id
func (_m *CatalogRepository) GetActiveProduct(ctx context.Context, id int) (domain.ProductWithStock, bool, error) {
	ret := _m.Called(ctx, id)

	var r0 domain.ProductWithStock
	if rf, ok := ret.Get(0).(domain.ProductWithStock); ok {
		r0 = rf
	}
	r1 := ret.Bool(1)
	r2 := ret.Error(2)

	return r0, r1, r2
}

// CreateProduct provides a mock function with given fields: ctx, product
func (_m *CatalogRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	ret := _m.Called(ctx, product)

	r0 := ret.Error(0)

	return r0
}

// UpdateProduct provides a mock function with given fields: ctx, product
func (_m *CatalogRepository) UpdateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	ret := _m.Called(ctx, product)

	var r0 int64
	if rf, ok := ret.Get(0).(int64); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// DeactivateProduct provides a mock function with given fields: ctx, id
func (_m *CatalogRepository) DeactivateProduct(ctx context.Context, id int) (int64, error) {
	ret := _m.Called(ctx, id)

	var r0 int64
	if rf, ok := ret.Get(0).(int64); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// UpdateProductImage provides a mock function with given fields: ctx, id, imageURL
func (_m *CatalogRepository) UpdateProductImage(ctx context.Context, id int, imageURL string) error {
	ret := _m.Called(ctx, id, imageURL)

	r0 := ret.Error(0)

	return r0
}

// GetCurrentStock provides a mock function with given fields: ctx, productID
func (_m *CatalogRepository) GetCurrentStock(ctx context.Context, productID int) (int, error) {
	ret := _m.Called(ctx, productID)

	r0 := ret.Int(0)
	r1 := ret.Error(1)

	return r0, r1
}

// GetStockLevel provides a mock function with given fields: ctx, productID
func (_m *CatalogRepository) GetStockLevel(ctx context.Context, productID int) (string, int, bool, error) {
	ret := _m.Called(ctx, productID)

	r0 := ret.String(0)
	r1 := ret.Int(1)
	r2 := ret.Bool(2)
	r3 := ret.Error(3)

	return r0, r1, r2, r3
}

// InitializeDailyStock provides a mock function with given fields: ctx, date, quantity
func (_m *CatalogRepository) InitializeDailyStock(ctx context.Context, date string, quantity int) (int64, error) {
	ret := _m.Called(ctx, date, quantity)

	var r0 int64
	if rf, ok := ret.Get(0).(int64); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListDailyStock provides a mock function with given fields: ctx, date
func (_m *CatalogRepository) ListDailyStock(ctx context.Context, date string) ([]domain.DailyStock, error) {
	ret := _m.Called(ctx, date)

	var r0 []domain.DailyStock
	if rf, ok := ret.Get(0).([]domain.DailyStock); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// NewCatalogRepository creates a new instance of CatalogRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewCatalogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
