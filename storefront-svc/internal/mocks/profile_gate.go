package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// ProfileGate is a mock type for the ProfileGate type
type ProfileGate struct {
	mock.Mock
}

// CheckProfileComplete provides a mock function with given fields: ctx, userID
func (_m *ProfileGate) CheckProfileComplete(ctx context.Context, userID string) bool {
	ret := _m.Called(ctx, userID)

	r0 := ret.Bool(0)

	return r0
}

// NewProfileGate creates a new instance of ProfileGate. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewProfileGate(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProfileGate {
	m := &ProfileGate{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
