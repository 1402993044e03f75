package mocks

import (
	"context"

	"dm-server/internal/ai"
	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockModelGateway is a mock type for the ModelGateway type
type MockModelGateway struct {
	mock.Mock
}

// ResolveCredential provides a mock function with given fields: supplied
func (_m *MockModelGateway) ResolveCredential(supplied string) (string, error) {
	ret := _m.Called(supplied)
	return ret.String(0), ret.Error(1)
}

// DefaultModel provides a mock function with no fields
func (_m *MockModelGateway) DefaultModel() string {
	ret := _m.Called()
	return ret.String(0)
}

// Complete provides a mock function with given fields: ctx, model, prompt, credential
func (_m *MockModelGateway) Complete(ctx context.Context, model string, prompt models.Prompt, credential string) (ai.Completion, error) {
	ret := _m.Called(ctx, model, prompt, credential)

	var r0 ai.Completion
	if rf, ok := ret.Get(0).(func(context.Context, string, models.Prompt, string) ai.Completion); ok {
		r0 = rf(ctx, model, prompt, credential)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(ai.Completion)
	}

	return r0, ret.Error(1)
}

// NewMockModelGateway creates a new instance of MockModelGateway. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockModelGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockModelGateway {
	m := &MockModelGateway{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ interfaces.ModelGateway = (*MockModelGateway)(nil)
