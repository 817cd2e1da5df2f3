package mocks

import (
	"context"

	"campus-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// RatingRepository is a mock type for the RatingRepository type
type RatingRepository struct {
	mock.Mock
}

// HasRating provides a mock function with given fields: ctx, userID
func (_m *RatingRepository) HasRating(ctx context.Context, userID string) (bool, error) {
	ret := _m.Called(ctx, userID)

	r0 := ret.Bool(0)
	r1 := ret.Error(1)

	return r0, r1
}

// InsertRating provides a mock function with given fields: ctx, rating
func (_m *RatingRepository) InsertRating(ctx context.Context, rating *domain.Rating) error {
	ret := _m.Called(ctx, rating)

	r0 := ret.Error(0)

	return r0
}

// NewRatingRepository creates a new instance of RatingRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewRatingRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *RatingRepository {
	m := &RatingRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
