package mocks

import (
	"context"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCharacterRepository is a mock type for the CharacterRepository type
type MockCharacterRepository struct {
	mock.Mock
}

// ListByUser provides a mock function with given fields: ctx, userID
func (_m *MockCharacterRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Character, error) {
	ret := _m.Called(ctx, userID)

	var r0 []models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Character)
	}

	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, userID, characterID
func (_m *MockCharacterRepository) GetByID(ctx context.Context, userID uuid.UUID, characterID uuid.UUID) (*models.Character, error) {
	ret := _m.Called(ctx, userID, characterID)

	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}

	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, character
func (_m *MockCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	ret := _m.Called(ctx, character)

	if rf, ok := ret.Get(0).(func(context.Context, *models.Character) error); ok {
		return rf(ctx, character)
	}
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, userID, characterID
func (_m *MockCharacterRepository) Delete(ctx context.Context, userID uuid.UUID, characterID uuid.UUID) error {
	ret := _m.Called(ctx, userID, characterID)
	return ret.Error(0)
}

// ApplyPatch provides a mock function with given fields: ctx, characterID, patch
func (_m *MockCharacterRepository) ApplyPatch(ctx context.Context, characterID uuid.UUID, patch *models.CharacterPatch) (*models.Character, error) {
	ret := _m.Called(ctx, characterID, patch)

	var r0 *models.Character
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, *models.CharacterPatch) *models.Character); ok {
		r0 = rf(ctx, characterID, patch)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}

	return r0, ret.Error(1)
}

// NewMockCharacterRepository creates a new instance of MockCharacterRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCharacterRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCharacterRepository {
	m := &MockCharacterRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ interfaces.CharacterRepository = (*MockCharacterRepository)(nil)
