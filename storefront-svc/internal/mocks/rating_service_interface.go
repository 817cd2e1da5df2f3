package mocks

import (
	"context"

	"campus-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// RatingServiceInterface is a mock type for the RatingServiceInterface type
type RatingServiceInterface struct {
	mock.Mock
}

// HasUserRated provides a mock function with given fields: ctx, userID
func (_m *RatingServiceInterface) HasUserRated(ctx context.Context, userID string) (bool, error) {
	ret := _m.Called(ctx, userID)

	r0 := ret.Bool(0)
	r1 := ret.Error(1)

	return r0, r1
}

// Eligibility provides a mock function with given fields: ctx, userID
func (_m *RatingServiceInterface) Eligibility(ctx context.Context, userID string) (domain.RatingEligibility, error) {
	ret := _m.Called(ctx, userID)

	var r0 domain.RatingEligibility
	if rf, ok := ret.Get(0).(domain.RatingEligibility); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// SubmitRating provides a mock function with given fields: ctx, userID, score, comment
func (_m *RatingServiceInterface) SubmitRating(ctx context.Context, userID string, score int, comment string) (*domain.Rating, error) {
	ret := _m.Called(ctx, userID, score, comment)

	var r0 *domain.Rating
	if rf, ok := ret.Get(0).(*domain.Rating); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// NewRatingServiceInterface creates a new instance of RatingServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewRatingServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *RatingServiceInterface {
	m := &RatingServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
