package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// NotificationSource is a mock type for the NotificationSource type
type NotificationSource struct {
	mock.Mock
}

// Next provides a mock function with given fields: ctx
func (_m *NotificationSource) Next(ctx context.Context) ([]byte, error) {
	ret := _m.Called(ctx)

	var r0 []byte
	if rf, ok := ret.Get(0).([]byte); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// NewNotificationSource creates a new instance of NotificationSource. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewNotificationSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *NotificationSource {
	m := &NotificationSource{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
