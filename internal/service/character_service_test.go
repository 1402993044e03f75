package service_test

import (
	"context"
	"testing"

	"dm-server/internal/dice"
	"dm-server/internal/interfaces/mocks"
	"dm-server/internal/models"
	"dm-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStartingGoldRange(t *testing.T) {
	assert.Equal(t, 50, service.StartingGold(fixedRoller{value: 1}))
	assert.Equal(t, 149, service.StartingGold(fixedRoller{value: 100}))

	r := dice.NewSeededRoller(7)
	for i := 0; i < 1000; i++ {
		gp := service.StartingGold(r)
		require.GreaterOrEqual(t, gp, 50)
		require.LessOrEqual(t, gp, 149)
	}
}

func TestCharacterCreate_DefaultsAndRolledGold(t *testing.T) {
	repo := mocks.NewMockCharacterRepository(t)
	svc := service.NewCharacterService(repo, fixedRoller{value: 30}, zap.NewNop())
	userID := uuid.New()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Character")).Return(nil).Once()

	c, err := svc.Create(context.Background(), userID, service.CreateCharacterInput{Name: " Thorin ", MaxHP: 12})

	require.NoError(t, err)
	assert.Equal(t, "Thorin", c.Name)
	assert.Equal(t, userID, c.UserID)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 12, c.MaxHP)
	assert.Equal(t, 12, c.HP)
	assert.Equal(t, 10, c.AC)
	assert.Equal(t, 10, c.Strength)
	assert.Equal(t, 79, c.GP)
}

func TestCharacterCreate_ExplicitGold(t *testing.T) {
	repo := mocks.NewMockCharacterRepository(t)
	svc := service.NewCharacterService(repo, fixedRoller{value: 30}, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	gp := 0
	c, err := svc.Create(context.Background(), uuid.New(), service.CreateCharacterInput{Name: "Pauper", HP: 4, MaxHP: 8, GP: &gp})

	require.NoError(t, err)
	assert.Equal(t, 0, c.GP)
	assert.Equal(t, 4, c.HP)
	assert.Equal(t, 8, c.MaxHP)
}

func TestCharacterCreate_DescendingArmorClassKept(t *testing.T) {
	repo := mocks.NewMockCharacterRepository(t)
	svc := service.NewCharacterService(repo, fixedRoller{value: 1}, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Times(3)

	for _, ac := range []int{2, 0, -2} {
		c, err := svc.Create(context.Background(), uuid.New(), service.CreateCharacterInput{Name: "Knight", AC: &ac})
		require.NoError(t, err)
		assert.Equal(t, ac, c.AC)
	}
}

func TestCharacterCreate_Validation(t *testing.T) {
	repo := mocks.NewMockCharacterRepository(t)
	svc := service.NewCharacterService(repo, fixedRoller{value: 1}, zap.NewNop())

	cases := []service.CreateCharacterInput{
		{Name: ""},
		{Name: "A", HP: -1},
		{Name: "A", MaxHP: -3},
		{Name: "A", Level: -1},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), uuid.New(), in)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
