package mocks

import (
	"context"

	"dm-server/internal/models"
	"dm-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGameService is a mock type for the GameService type
type MockGameService struct {
	mock.Mock
}

// SendMessage provides a mock function with given fields: ctx, userID, campaignID, content, apiKey
func (_m *MockGameService) SendMessage(ctx context.Context, userID uuid.UUID, campaignID uuid.UUID, content string, apiKey string) (*models.TurnResult, error) {
	ret := _m.Called(ctx, userID, campaignID, content, apiKey)

	var r0 *models.TurnResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.TurnResult)
	}

	return r0, ret.Error(1)
}

// Roll provides a mock function with given fields: ctx, userID, campaignID, diceSpec, apiKey
func (_m *MockGameService) Roll(ctx context.Context, userID uuid.UUID, campaignID uuid.UUID, diceSpec string, apiKey string) (*models.RollOutcome, error) {
	ret := _m.Called(ctx, userID, campaignID, diceSpec, apiKey)

	var r0 *models.RollOutcome
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.RollOutcome)
	}

	return r0, ret.Error(1)
}

// NewMockGameService creates a new instance of MockGameService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockGameService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGameService {
	m := &MockGameService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ service.GameService = (*MockGameService)(nil)
