package mocks

import (
	"context"

	"campus-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// InvoiceRepository is a mock type for the InvoiceRepository type
type InvoiceRepository struct {
	mock.Mock
}

// CreateInvoice provides a mock function with given fields: ctx, req, taxRate
func (_m *InvoiceRepository) CreateInvoice(ctx context.Context, req domain.InvoiceRequest, taxRate float64) (domain.InvoiceResult, error) {
	ret := _m.Called(ctx, req, taxRate)

	var r0 domain.InvoiceResult
	if rf, ok := ret.Get(0).(domain.InvoiceResult); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListInvoicesByCustomer provides a mock function with given fields: ctx, customerID
func (_m *InvoiceRepository) ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []domain.Invoice
	if rf, ok := ret.Get(0).([]domain.Invoice); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// GetInvoice provides a mock function with given fields: ctx, id
func (_m *InvoiceRepository) GetInvoice(ctx context.Context, id int) (domain.Invoice, bool, error) {
	ret := _m.Called(ctx, id)

	var r0 domain.Invoice
	if rf, ok := ret.Get(0).(domain.Invoice); ok {
		r0 = rf
	}
	r1 := ret.Bool(1)
	r2 := ret.Error(2)

	return r0, r1, r2
}

// CountPaidInvoices provides a mock function with given fields: ctx, customerID
func (_m *InvoiceRepository) CountPaidInvoices(ctx context.Context, customerID string) (int, error) {
	ret := _m.Called(ctx, customerID)

	r0 := ret.Int(0)
	r1 := ret.Error(1)

	return r0, r1
}

// NewInvoiceRepository creates a new instance of InvoiceRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewInvoiceRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *InvoiceRepository {
	m := &InvoiceRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
