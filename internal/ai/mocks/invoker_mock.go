package mocks

import (
	"context"

	"dm-server/internal/ai"

	"github.com/stretchr/testify/mock"
)

// MockInvoker is a mock type for the Invoker type
type MockInvoker struct {
	mock.Mock
}

// Invoke provides a mock function with given fields: ctx, req
func (_m *MockInvoker) Invoke(ctx context.Context, req ai.Request) (ai.Response, error) {
	ret := _m.Called(ctx, req)

	var r0 ai.Response
	if rf, ok := ret.Get(0).(func(context.Context, ai.Request) ai.Response); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(ai.Response)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, ai.Request) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockInvoker creates a new instance of MockInvoker. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockInvoker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInvoker {
	m := &MockInvoker{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ ai.Invoker = (*MockInvoker)(nil)
