package mocks

import (
	"context"

	"campus-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// GatewayCache is a mock type for the GatewayCache type
type GatewayCache struct {
	mock.Mock
}

// GetSections provides a mock function with given fields: ctx
func (_m *GatewayCache) GetSections(ctx context.Context) ([]domain.Section, bool, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Section
	if rf, ok := ret.Get(0).([]domain.Section); ok {
		r0 = rf
	}
	r1 := ret.Bool(1)
	r2 := ret.Error(2)

	return r0, r1, r2
}

// SetSections provides a mock function with given fields: ctx, sections
func (_m *GatewayCache) SetSections(ctx context.Context, sections []domain.Section) error {
	ret := _m.Called(ctx, sections)

	r0 := ret.Error(0)

	return r0
}

// InvalidateSections provides a mock function with given fields: ctx
func (_m *GatewayCache) InvalidateSections(ctx context.Context) error {
	ret := _m.Called(ctx)

	r0 := ret.Error(0)

	return r0
}

// TopSellers provides a mock function with given fields: ctx, date, limit
func (_m *GatewayCache) TopSellers(ctx context.Context, date string, limit int) ([]domain.ProductSales, error) {
	ret := _m.Called(ctx, date, limit)

	var r0 []domain.ProductSales
	if rf, ok := ret.Get(0).([]domain.ProductSales); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// NewGatewayCache creates a new instance of GatewayCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewGatewayCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *GatewayCache {
	m := &GatewayCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
