package mocks

import (
	"context"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMessageRepository is a mock type for the MessageRepository type
type MockMessageRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, msg
func (_m *MockMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	ret := _m.Called(ctx, msg)

	if rf, ok := ret.Get(0).(func(context.Context, *models.Message) error); ok {
		return rf(ctx, msg)
	}
	return ret.Error(0)
}

// ListByCampaign provides a mock function with given fields: ctx, campaignID
func (_m *MockMessageRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Message, error) {
	ret := _m.Called(ctx, campaignID)

	var r0 []models.Message
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Message)
	}

	return r0, ret.Error(1)
}

// NewMockMessageRepository creates a new instance of MockMessageRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockMessageRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessageRepository {
	m := &MockMessageRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ interfaces.MessageRepository = (*MockMessageRepository)(nil)
