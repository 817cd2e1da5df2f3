package mocks

import (
	"context"

	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/session"

	"github.com/stretchr/testify/mock"
)

// Authenticator is a mock type for the Authenticator type
type Authenticator struct {
	mock.Mock
}

// SignUp provides a mock function with given fields: ctx, email, password, profile
func (_m *Authenticator) SignUp(ctx context.Context, email string, password string, profile domain.Profile) (session.Session, error) {
	ret := _m.Called(ctx, email, password, profile)

	var r0 session.Session
	if rf, ok := ret.Get(0).(session.Session); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// SignIn provides a mock function with given fields: ctx, email, password
func (_m *Authenticator) SignIn(ctx context.Context, email string, password string) (session.Session, error) {
	ret := _m.Called(ctx, email, password)

	var r0 session.Session
	if rf, ok := ret.Get(0).(session.Session); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// SignOut provides a mock function with given fields: ctx, token
func (_m *Authenticator) SignOut(ctx context.Context, token string) {
	_m.Called(ctx, token)
}

// Verify provides a mock function with given fields: ctx, token
func (_m *Authenticator) Verify(ctx context.Context, token string) (domain.Identity, error) {
	ret := _m.Called(ctx, token)

	var r0 domain.Identity
	if rf, ok := ret.Get(0).(domain.Identity); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// NewAuthenticator creates a new instance of Authenticator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAuthenticator(t interface {
	mock.TestingT
	Cleanup(func())
}) *Authenticator {
	m := &Authenticator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
