package mocks

import (
	"context"

	"dm-server/internal/interfaces"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTokenRepository is a mock type for the TokenRepository type
type MockTokenRepository struct {
	mock.Mock
}

// GetUserIDByAccessUUID provides a mock function with given fields: ctx, accessUUID
func (_m *MockTokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	ret := _m.Called(ctx, accessUUID)

	var r0 uuid.UUID
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(uuid.UUID)
	}

	return r0, ret.Error(1)
}

// NewMockTokenRepository creates a new instance of MockTokenRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTokenRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenRepository {
	m := &MockTokenRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ interfaces.TokenRepository = (*MockTokenRepository)(nil)
