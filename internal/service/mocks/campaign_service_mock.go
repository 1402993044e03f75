package mocks

import (
	"context"

	"dm-server/internal/models"
	"dm-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCampaignService is a mock type for the CampaignService type
type MockCampaignService struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, userID
func (_m *MockCampaignService) List(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error) {
	ret := _m.Called(ctx, userID)

	var r0 []models.Campaign
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Campaign)
	}

	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, userID, in
func (_m *MockCampaignService) Create(ctx context.Context, userID uuid.UUID, in service.CreateCampaignInput) (*models.Campaign, error) {
	ret := _m.Called(ctx, userID, in)

	var r0 *models.Campaign
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Campaign)
	}

	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx, userID, campaignID
func (_m *MockCampaignService) Get(ctx context.Context, userID uuid.UUID, campaignID uuid.UUID) (*models.Campaign, error) {
	ret := _m.Called(ctx, userID, campaignID)

	var r0 *models.Campaign
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Campaign)
	}

	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, userID, campaignID
func (_m *MockCampaignService) Delete(ctx context.Context, userID uuid.UUID, campaignID uuid.UUID) error {
	ret := _m.Called(ctx, userID, campaignID)
	return ret.Error(0)
}

// AppendContext provides a mock function with given fields: ctx, userID, campaignID, text
func (_m *MockCampaignService) AppendContext(ctx context.Context, userID uuid.UUID, campaignID uuid.UUID, text string) (int, error) {
	ret := _m.Called(ctx, userID, campaignID, text)
	return ret.Int(0), ret.Error(1)
}

// NewMockCampaignService creates a new instance of MockCampaignService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCampaignService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCampaignService {
	m := &MockCampaignService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ service.CampaignService = (*MockCampaignService)(nil)
