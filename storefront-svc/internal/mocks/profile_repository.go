package mocks

import (
	"context"

	"campus-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ProfileRepository is a mock type for the ProfileRepository type
type ProfileRepository struct {
	mock.Mock
}

// GetProfile provides a mock function with given fields: ctx, userID
func (_m *ProfileRepository) GetProfile(ctx context.Context, userID string) (domain.Profile, bool, error) {
	ret := _m.Called(ctx, userID)

	var r0 domain.Profile
	if rf, ok := ret.Get(0).(domain.Profile); ok {
		r0 = rf
	}
	r1 := ret.Bool(1)
	r2 := ret.Error(2)

	return r0, r1, r2
}

// UpsertProfile provides a mock function with given fields: ctx, profile
func (_m *ProfileRepository) UpsertProfile(ctx context.Context, profile domain.Profile) error {
	ret := _m.Called(ctx, profile)

	r0 := ret.Error(0)

	return r0
}

// NewProfileRepository creates a new instance of ProfileRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewProfileRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProfileRepository {
	m := &ProfileRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
