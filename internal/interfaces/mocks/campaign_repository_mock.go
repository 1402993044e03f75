package mocks

import (
	"context"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCampaignRepository is a mock type for the CampaignRepository type
type MockCampaignRepository struct {
	mock.Mock
}

// ListByUser provides a mock function with given fields: ctx, userID
func (_m *MockCampaignRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error) {
	ret := _m.Called(ctx, userID)

	var r0 []models.Campaign
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []models.Campaign); ok {
		r0 = rf(ctx, userID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Campaign)
	}

	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, campaign
func (_m *MockCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	ret := _m.Called(ctx, campaign)

	if rf, ok := ret.Get(0).(func(context.Context, *models.Campaign) error); ok {
		return rf(ctx, campaign)
	}
	return ret.Error(0)
}

// GetByID provides a mock function with given fields: ctx, userID, campaignID
func (_m *MockCampaignRepository) GetByID(ctx context.Context, userID uuid.UUID, campaignID uuid.UUID) (*models.Campaign, error) {
	ret := _m.Called(ctx, userID, campaignID)

	var r0 *models.Campaign
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) *models.Campaign); ok {
		r0 = rf(ctx, userID, campaignID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Campaign)
	}

	return r0, ret.Error(1)
}

// GetWithHistory provides a mock function with given fields: ctx, userID, campaignID
func (_m *MockCampaignRepository) GetWithHistory(ctx context.Context, userID uuid.UUID, campaignID uuid.UUID) (*models.Campaign, error) {
	ret := _m.Called(ctx, userID, campaignID)

	var r0 *models.Campaign
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) *models.Campaign); ok {
		r0 = rf(ctx, userID, campaignID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Campaign)
	}

	return r0, ret.Error(1)
}

// UpdateContext provides a mock function with given fields: ctx, userID, campaignID, text
func (_m *MockCampaignRepository) UpdateContext(ctx context.Context, userID uuid.UUID, campaignID uuid.UUID, text string) error {
	ret := _m.Called(ctx, userID, campaignID, text)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, userID, campaignID
func (_m *MockCampaignRepository) Delete(ctx context.Context, userID uuid.UUID, campaignID uuid.UUID) error {
	ret := _m.Called(ctx, userID, campaignID)
	return ret.Error(0)
}

// NewMockCampaignRepository creates a new instance of MockCampaignRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCampaignRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCampaignRepository {
	m := &MockCampaignRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ interfaces.CampaignRepository = (*MockCampaignRepository)(nil)
