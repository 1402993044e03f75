package mocks

import (
	"context"

	"dm-server/internal/models"
	"dm-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCharacterService is a mock type for the CharacterService type
type MockCharacterService struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, userID
func (_m *MockCharacterService) List(ctx context.Context, userID uuid.UUID) ([]models.Character, error) {
	ret := _m.Called(ctx, userID)

	var r0 []models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Character)
	}

	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx, userID, characterID
func (_m *MockCharacterService) Get(ctx context.Context, userID uuid.UUID, characterID uuid.UUID) (*models.Character, error) {
	ret := _m.Called(ctx, userID, characterID)

	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}

	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, userID, in
func (_m *MockCharacterService) Create(ctx context.Context, userID uuid.UUID, in service.CreateCharacterInput) (*models.Character, error) {
	ret := _m.Called(ctx, userID, in)

	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}

	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, userID, characterID
func (_m *MockCharacterService) Delete(ctx context.Context, userID uuid.UUID, characterID uuid.UUID) error {
	ret := _m.Called(ctx, userID, characterID)
	return ret.Error(0)
}

// NewMockCharacterService creates a new instance of MockCharacterService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCharacterService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCharacterService {
	m := &MockCharacterService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ service.CharacterService = (*MockCharacterService)(nil)
