package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// RatingCache is a mock type for the RatingCache type
type RatingCache struct {
	mock.Mock
}

// RatingMarkerKey provides a mock function with given fields: userID
func (_m *RatingCache) RatingMarkerKey(userID string) string {
	ret := _m.Called(userID)

	r0 := ret.String(0)

	return r0
}

// Exists provides a mock function with given fields: ctx, key
func (_m *RatingCache) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)

	r0 := ret.Bool(0)
	r1 := ret.Error(1)

	return r0, r1
}

// SetMarker provides a mock function with given fields: ctx, key
func (_m *RatingCache) SetMarker(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)

	r0 := ret.Error(0)

	return r0
}

// NewRatingCache creates a new instance of RatingCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewRatingCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *RatingCache {
	m := &RatingCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
