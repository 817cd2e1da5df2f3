package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

// S3API is a mock type for the S3API type
type S3API struct {
	mock.Mock
}

// PutObject provides a mock function with given fields: ctx, params, optFns
func (_m *S3API) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	_ca := []interface{}{ctx, params}
	for _, v := range optFns {
		_ca = append(_ca, v)
	}
	ret := _m.Called(_ca...)

	var r0 *s3.PutObjectOutput
	if rf, ok := ret.Get(0).(*s3.PutObjectOutput); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListObjectsV2 provides a mock function with given fields: ctx, params, optFns
func (_m *S3API) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	_ca := []interface{}{ctx, params}
	for _, v := range optFns {
		_ca = append(_ca, v)
	}
	ret := _m.Called(_ca...)

	var r0 *s3.ListObjectsV2Output
	if rf, ok := ret.Get(0).(*s3.ListObjectsV2Output); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// DeleteObject provides a mock function with given fields: ctx, params, optFns
func (_m *S3API) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	_ca := []interface{}{ctx, params}
	for _, v := range optFns {
		_ca = append(_ca, v)
	}
	ret := _m.Called(_ca...)

	var r0 *s3.DeleteObjectOutput
	if rf, ok := ret.Get(0).(*s3.DeleteObjectOutput); ok {
		r0 = rf
	}
	r1 := ret.Error(1)

	return r0, r1
}

// NewS3API creates a new instance of S3API. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewS3API(t interface {
	mock.TestingT
	Cleanup(func())
}) *S3API {
	m := &S3API{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
