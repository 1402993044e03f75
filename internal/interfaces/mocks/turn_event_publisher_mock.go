package mocks

import (
	"context"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockTurnEventPublisher is a mock type for the TurnEventPublisher type
type MockTurnEventPublisher struct {
	mock.Mock
}

// PublishTurnCompleted provides a mock function with given fields: ctx, event
func (_m *MockTurnEventPublisher) PublishTurnCompleted(ctx context.Context, event models.TurnCompletedEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// Close provides a mock function with no fields
func (_m *MockTurnEventPublisher) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}

// NewMockTurnEventPublisher creates a new instance of MockTurnEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTurnEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTurnEventPublisher {
	m := &MockTurnEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ interfaces.TurnEventPublisher = (*MockTurnEventPublisher)(nil)
