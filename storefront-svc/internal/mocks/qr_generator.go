package mocks

import (
	"github.com/stretchr/testify/mock"
)

// QRGenerator is a mock type for the QRGenerator type
type QRGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: invoiceNumber
func (_m *QRGenerator) Generate(invoiceNumber string) ([]byte, error) {
	ret := _m.Called(invoiceNumber)

	var r0 []byte
	if rf, ok := ret.Get(0).([]byte); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// NewQRGenerator creates a new instance of QRGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewQRGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
