package service_test

import (
	"context"
	"strings"
	"testing"

	"dm-server/internal/interfaces/mocks"
	"dm-server/internal/models"
	"dm-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCampaignService(t *testing.T) (service.CampaignService, *mocks.MockCampaignRepository, *mocks.MockCharacterRepository) {
	campaigns := mocks.NewMockCampaignRepository(t)
	characters := mocks.NewMockCharacterRepository(t)
	return service.NewCampaignService(campaigns, characters, "claude-haiku-4-5-20251001", zap.NewNop()), campaigns, characters
}

func TestCampaignCreate_AppliesDefaults(t *testing.T) {
	svc, campaigns, _ := newCampaignService(t)
	userID := uuid.New()

	campaigns.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Campaign) bool {
		return c.UserID == userID && c.Name == models.DefaultCampaignName &&
			c.System == models.DefaultRuleSystem && c.AIModel == "claude-haiku-4-5-20251001" &&
			c.CustomInstructions == nil && c.CharacterID == nil
	})).Return(nil).Once()

	c, err := svc.Create(context.Background(), userID, service.CreateCampaignInput{Name: "  "})

	require.NoError(t, err)
	assert.Equal(t, models.DefaultCampaignName, c.Name)
}

func TestCampaignCreate_WithCharacter(t *testing.T) {
	svc, campaigns, characters := newCampaignService(t)
	userID, charID := uuid.New(), uuid.New()

	characters.On("GetByID", mock.Anything, userID, charID).Return(&models.Character{ID: charID, UserID: userID}, nil).Once()
	campaigns.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Campaign) bool {
		return c.CharacterID != nil && *c.CharacterID == charID && c.AIModel == "gpt-4o" &&
			c.CustomInstructions != nil && *c.CustomInstructions == "No elves."
	})).Return(nil).Once()

	c, err := svc.Create(context.Background(), userID, service.CreateCampaignInput{
		Name: "Tomb", AIModel: "gpt-4o", CustomInstructions: " No elves. ", CharacterID: &charID,
	})

	require.NoError(t, err)
	assert.Equal(t, "Tomb", c.Name)
}

func TestCampaignCreate_ForeignCharacterRejected(t *testing.T) {
	svc, _, characters := newCampaignService(t)
	userID, charID := uuid.New(), uuid.New()

	characters.On("GetByID", mock.Anything, userID, charID).Return(nil, models.ErrCharacterNotFound).Once()

	_, err := svc.Create(context.Background(), userID, service.CreateCampaignInput{CharacterID: &charID})

	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCampaignAppendContext(t *testing.T) {
	userID, campaignID := uuid.New(), uuid.New()

	t.Run("first source", func(t *testing.T) {
		svc, campaigns, _ := newCampaignService(t)
		campaigns.On("GetByID", mock.Anything, userID, campaignID).Return(&models.Campaign{ID: campaignID}, nil).Once()
		campaigns.On("UpdateContext", mock.Anything, userID, campaignID, "Lore A").Return(nil).Once()

		n, err := svc.AppendContext(context.Background(), userID, campaignID, "Lore A")

		require.NoError(t, err)
		assert.Equal(t, 6, n)
	})

	t.Run("appends with separator", func(t *testing.T) {
		svc, campaigns, _ := newCampaignService(t)
		existing := "Lore A"
		expected := "Lore A" + service.ContextSourceSeparator + "Лор Б"
		campaigns.On("GetByID", mock.Anything, userID, campaignID).Return(&models.Campaign{ID: campaignID, Context: &existing}, nil).Once()
		campaigns.On("UpdateContext", mock.Anything, userID, campaignID, expected).Return(nil).Once()

		n, err := svc.AppendContext(context.Background(), userID, campaignID, "Лор Б")

		require.NoError(t, err)
		assert.Equal(t, len([]rune(expected)), n)
	})

	t.Run("caps a single upload", func(t *testing.T) {
		svc, campaigns, _ := newCampaignService(t)
		campaigns.On("GetByID", mock.Anything, userID, campaignID).Return(&models.Campaign{ID: campaignID}, nil).Once()
		campaigns.On("UpdateContext", mock.Anything, userID, campaignID, mock.MatchedBy(func(s string) bool {
			return len([]rune(s)) == service.MaxContextUploadRunes
		})).Return(nil).Once()

		n, err := svc.AppendContext(context.Background(), userID, campaignID, strings.Repeat("x", service.MaxContextUploadRunes+500))

		require.NoError(t, err)
		assert.Equal(t, service.MaxContextUploadRunes, n)
	})

	t.Run("empty text", func(t *testing.T) {
		svc, _, _ := newCampaignService(t)
		_, err := svc.AppendContext(context.Background(), userID, campaignID, " \n")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		svc, campaigns, _ := newCampaignService(t)
		campaigns.On("GetByID", mock.Anything, userID, campaignID).Return(nil, models.ErrCampaignNotFound).Once()

		_, err := svc.AppendContext(context.Background(), userID, campaignID, "text")
		assert.ErrorIs(t, err, models.ErrCampaignNotFound)
	})
}

func TestCampaignDeleteAndGetAreScoped(t *testing.T) {
	svc, campaigns, _ := newCampaignService(t)
	userID, campaignID := uuid.New(), uuid.New()

	campaigns.On("Delete", mock.Anything, userID, campaignID).Return(models.ErrCampaignNotFound).Once()
	campaigns.On("GetWithHistory", mock.Anything, userID, campaignID).Return(nil, models.ErrCampaignNotFound).Once()

	assert.ErrorIs(t, svc.Delete(context.Background(), userID, campaignID), models.ErrCampaignNotFound)
	_, err := svc.Get(context.Background(), userID, campaignID)
	assert.ErrorIs(t, err, models.ErrCampaignNotFound)
}
