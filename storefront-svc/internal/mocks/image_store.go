package mocks

import (
	"context"
	"io"

	"campus-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ImageStore is a mock type for the ImageStore type
type ImageStore struct {
	mock.Mock
}

// Upload provides a mock function with given fields: ctx, key, contentType, body
func (_m *ImageStore) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	ret := _m.Called(ctx, key, contentType, body)

	r0 := ret.String(0)
	r1 := ret.Error(1)

	return r0, r1
}

// List provides a mock function with given fields: ctx, prefix
func (_m *ImageStore) List(ctx context.Context, prefix string) ([]domain.ProductImage, error) {
	ret := _m.Called(ctx, prefix)

	var r0 []domain.ProductImage
	if rf, ok := ret.Get(0).([]domain.ProductImage); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, key
func (_m *ImageStore) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)

	r0 := ret.Error(0)

	return r0
}

// NewImageStore creates a new instance of ImageStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewImageStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ImageStore {
	m := &ImageStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
