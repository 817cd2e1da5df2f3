package mocks

import (
	"context"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// MessageWriter is a mock type for the MessageWriter type
type MessageWriter struct {
	mock.Mock
}

// WriteMessages provides a mock function with given fields: ctx, msgs
func (_m *MessageWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_ca := []interface{}{ctx}
	for _, v := range msgs {
		_ca = append(_ca, v)
	}
	ret := _m.Called(_ca...)

	r0 := ret.Error(0)

	return r0
}

// NewMessageWriter creates a new instance of MessageWriter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMessageWriter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MessageWriter {
	m := &MessageWriter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
