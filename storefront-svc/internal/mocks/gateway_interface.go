package mocks

import (
	"context"

	"campus-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// GatewayInterface is a mock type for the GatewayInterface type
type GatewayInterface struct {
	mock.Mock
}

// ListActiveSections provides a mock function with given fields: ctx
func (_m *GatewayInterface) ListActiveSections(ctx context.Context) ([]domain.Section, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Section
	if rf, ok := ret.Get(0).([]domain.Section); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListProductsWithStock provides a mock function with given fields: ctx
func (_m *GatewayInterface) ListProductsWithStock(ctx context.Context) ([]domain.ProductWithStock, error) {
	ret := _m.Called(ctx)

	var r0 []domain.ProductWithStock
	if rf, ok := ret.Get(0).([]domain.ProductWithStock); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListProductsBySection provides a mock function with given fields: ctx, sectionID
func (_m *GatewayInterface) ListProductsBySection(ctx context.Context, sectionID int) ([]domain.ProductWithStock, error) {
	ret := _m.Called(ctx, sectionID)

	var r0 []domain.ProductWithStock
	if rf, ok := ret.Get(0).([]domain.ProductWithStock); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// GetProductWithStock provides a mock function with given fields: ctx, id
func (_m *GatewayInterface) GetProductWithStock(ctx context.Context, id int) (domain.ProductWithStock, bool, error) {
	ret := _m.Called(ctx, id)

	var r0 domain.ProductWithStock
	if rf, ok := ret.Get(0).(domain.ProductWithStock); ok {
		r0 = rf
	}
	r1 := ret.Bool(1)
	r2 := ret.Error(2)

	return r0, r1, r2
}

// GetCurrentStock provides a mock function with given fields: ctx, productID
func (_m *GatewayInterface) GetCurrentStock(ctx context.Context, productID int) (int, error) {
	ret := _m.Called(ctx, productID)

	r0 := ret.Int(0)
	r1 := ret.Error(1)

	return r0, r1
}

// ListBestSellers provides a mock function with given fields: ctx, date, limit
func (_m *GatewayInterface) ListBestSellers(ctx context.Context, date string, limit int) ([]domain.ProductSales, error) {
	ret := _m.Called(ctx, date, limit)

	var r0 []domain.ProductSales
	if rf, ok := ret.Get(0).([]domain.ProductSales); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// CheckAvailability provides a mock function with given fields: ctx, lines
func (_m *GatewayInterface) CheckAvailability(ctx context.Context, lines []domain.StockRequest) (domain.Availability, error) {
	ret := _m.Called(ctx, lines)

	var r0 domain.Availability
	if rf, ok := ret.Get(0).(domain.Availability); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// CreateInvoice provides a mock function with given fields: ctx, customerID, lines, paymentMethod, notes
func (_m *GatewayInterface) CreateInvoice(ctx context.Context, customerID string, lines []domain.StockRequest, paymentMethod string, notes string) (domain.InvoiceResult, error) {
	ret := _m.Called(ctx, customerID, lines, paymentMethod, notes)

	var r0 domain.InvoiceResult
	if rf, ok := ret.Get(0).(domain.InvoiceResult); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListInvoicesForUser provides a mock function with given fields: ctx, customerID
func (_m *GatewayInterface) ListInvoicesForUser(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []domain.Invoice
	if rf, ok := ret.Get(0).([]domain.Invoice); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// GetInvoice provides a mock function with given fields: ctx, id
func (_m *GatewayInterface) GetInvoice(ctx context.Context, id int) (domain.Invoice, bool, error) {
	ret := _m.Called(ctx, id)

	var r0 domain.Invoice
	if rf, ok := ret.Get(0).(domain.Invoice); ok {
		r0 = rf
	}
	r1 := ret.Bool(1)
	r2 := ret.Error(2)

	return r0, r1, r2
}

// IsFirstPaidInvoice provides a mock function with given fields: ctx, userID
func (_m *GatewayInterface) IsFirstPaidInvoice(ctx context.Context, userID string) (bool, error) {
	ret := _m.Called(ctx, userID)

	r0 := ret.Bool(0)
	r1 := ret.Error(1)

	return r0, r1
}

// NewGatewayInterface creates a new instance of GatewayInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewGatewayInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *GatewayInterface {
	m := &GatewayInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
