package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// SalesRecorder is a mock type for the SalesRecorder type
type SalesRecorder struct {
	mock.Mock
}

// RecordSale provides a mock function with given fields: ctx, date, productID, quantity
func (_m *SalesRecorder) RecordSale(ctx context.Context, date string, productID int, quantity int) error {
	ret := _m.Called(ctx, date, productID, quantity)

	r0 := ret.Error(0)

	return r0
}

// NewSalesRecorder creates a new instance of SalesRecorder. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewSalesRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *SalesRecorder {
	m := &SalesRecorder{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
