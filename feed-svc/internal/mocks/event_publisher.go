package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// EventPublisher is a mock type for the EventPublisher type
type EventPublisher struct {
	mock.Mock
}

// Publish provides a mock function with given fields: ctx, topic, key, value
func (_m *EventPublisher) Publish(ctx context.Context, topic string, key string, value []byte) error {
	ret := _m.Called(ctx, topic, key, value)

	r0 := ret.Error(0)

	return r0
}

// NewEventPublisher creates a new instance of EventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
