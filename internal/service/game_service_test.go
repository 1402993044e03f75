package service_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"dm-server/internal/ai"
	"dm-server/internal/interfaces/mocks"
	"dm-server/internal/models"
	"dm-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedRoller struct{ value int }

func (f fixedRoller) Roll(sides int) int {
	if f.value > sides {
		return sides
	}
	return f.value
}

type gameDeps struct {
	campaigns  *mocks.MockCampaignRepository
	characters *mocks.MockCharacterRepository
	messages   *mocks.MockMessageRepository
	gateway    *mocks.MockModelGateway
	publisher  *mocks.MockTurnEventPublisher
	svc        service.GameService
	saved      []*models.Message
}

func newGameDeps(t *testing.T, rollValue int) *gameDeps {
	d := &gameDeps{
		campaigns:  mocks.NewMockCampaignRepository(t),
		characters: mocks.NewMockCharacterRepository(t),
		messages:   mocks.NewMockMessageRepository(t),
		gateway:    mocks.NewMockModelGateway(t),
		publisher:  mocks.NewMockTurnEventPublisher(t),
	}
	d.svc = service.NewGameService(d.campaigns, d.characters, d.messages, d.gateway,
		fixedRoller{value: rollValue}, d.publisher, zap.NewNop())
	return d
}

// expectMessages принимает любые сохранения сообщений и запоминает их.
func (d *gameDeps) expectMessages() {
	d.messages.On("Create", mock.Anything, mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			m := args.Get(1).(*models.Message)
			m.ID = uuid.New()
			m.CreatedAt = time.Now()
			d.saved = append(d.saved, m)
		}).Return(nil)
}

func campaignWithCharacter(userID uuid.UUID) *models.Campaign {
	charID := uuid.New()
	return &models.Campaign{
		ID: uuid.New(), UserID: userID, Name: "Keep", System: "AD&D 1e", AIModel: "claude-sonnet-4-5",
		CharacterID: &charID,
		Character:   &models.Character{ID: charID, UserID: userID, Name: "Thorin", HP: 10, MaxHP: 10, AC: 5},
		Messages: []models.Message{
			{Role: models.RoleUser, Content: "I enter the cave."},
			{Role: models.RoleAssistant, Content: "A goblin leaps out."},
		},
	}
}

func TestSendMessage_AppliesUpdateAndStripsDirective(t *testing.T) {
	d := newGameDeps(t, 1)
	userID := uuid.New()
	c := campaignWithCharacter(userID)

	d.campaigns.On("GetWithHistory", mock.Anything, userID, c.ID).Return(c, nil).Once()
	d.expectMessages()
	d.gateway.On("ResolveCredential", "user-key").Return("user-key", nil).Once()
	d.gateway.On("Complete", mock.Anything, "claude-sonnet-4-5", mock.MatchedBy(func(p models.Prompt) bool {
		last := p.Turns[len(p.Turns)-1]
		return len(p.Turns) == 3 && last.Role == models.ChatRoleUser && last.Content == "I dodge" &&
			strings.Contains(p.System, "HP: 10/10")
	}), "user-key").Return(ai.Completion{
		Text:  `You dodge! <<<UPDATE {"hp": 8}>>> The goblin snarls.`,
		Model: "claude-sonnet-4-5",
	}, nil).Once()

	updated := *c.Character
	updated.HP = 8
	d.characters.On("ApplyPatch", mock.Anything, c.Character.ID, mock.MatchedBy(func(p *models.CharacterPatch) bool {
		return p.HP != nil && *p.HP == 8 && p.MaxHP == nil && len(p.Keys()) == 1
	})).Return(&updated, nil).Once()
	d.publisher.On("PublishTurnCompleted", mock.Anything, mock.MatchedBy(func(e models.TurnCompletedEvent) bool {
		return e.CampaignID == c.ID && e.UserID == userID && e.CharacterUpdated && e.Role == models.RoleAssistant
	})).Return(nil).Once()

	res, err := d.svc.SendMessage(context.Background(), userID, c.ID, "I dodge", "user-key")

	require.NoError(t, err)
	require.NotNil(t, res.AssistantMessage)
	assert.Equal(t, "You dodge!  The goblin snarls.", res.AssistantMessage.Content)
	require.NotNil(t, res.Character)
	assert.Equal(t, 8, res.Character.HP)
	assert.Equal(t, 10, res.Character.MaxHP)
	require.Len(t, d.saved, 2)
	assert.Equal(t, models.RoleUser, d.saved[0].Role)
	assert.Equal(t, "I dodge", d.saved[0].Content)
	assert.Equal(t, models.RoleAssistant, d.saved[1].Role)
}

func TestSendMessage_ResolvesTwoRolls(t *testing.T) {
	d := newGameDeps(t, 4)
	userID := uuid.New()
	c := campaignWithCharacter(userID)

	d.campaigns.On("GetWithHistory", mock.Anything, userID, c.ID).Return(c, nil)
	d.expectMessages()
	d.gateway.On("ResolveCredential", "").Return("server-key", nil)
	d.gateway.On("Complete", mock.Anything, c.AIModel, mock.Anything, "server-key").
		Return(ai.Completion{Text: "Damage: <<<ROLL d6>>> and <<<ROLL d6>>>", Model: c.AIModel}, nil)
	d.publisher.On("PublishTurnCompleted", mock.Anything, mock.Anything).Return(nil)

	res, err := d.svc.SendMessage(context.Background(), userID, c.ID, "I swing twice", "")

	require.NoError(t, err)
	matches := regexp.MustCompile(`\(Rolled d6: ([1-6])\)`).FindAllString(res.AssistantMessage.Content, -1)
	assert.Len(t, matches, 2)
	assert.Len(t, res.Rolls, 2)
	assert.Nil(t, res.Character)
	d.characters.AssertNotCalled(t, "ApplyPatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_MissingCredentialKeepsUserMessage(t *testing.T) {
	d := newGameDeps(t, 1)
	userID := uuid.New()
	c := campaignWithCharacter(userID)

	d.campaigns.On("GetWithHistory", mock.Anything, userID, c.ID).Return(c, nil)
	d.expectMessages()
	d.gateway.On("ResolveCredential", "").Return("", models.ErrAuthenticationMissing)

	res, err := d.svc.SendMessage(context.Background(), userID, c.ID, "Hello?", "")

	assert.ErrorIs(t, err, models.ErrAuthenticationMissing)
	require.NotNil(t, res)
	require.NotNil(t, res.UserMessage)
	assert.Equal(t, "Hello?", res.UserMessage.Content)
	assert.Nil(t, res.AssistantMessage)
	assert.Len(t, d.saved, 1)
	d.gateway.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_ModelUnavailable(t *testing.T) {
	d := newGameDeps(t, 1)
	userID := uuid.New()
	c := campaignWithCharacter(userID)

	d.campaigns.On("GetWithHistory", mock.Anything, userID, c.ID).Return(c, nil)
	d.expectMessages()
	d.gateway.On("ResolveCredential", "k").Return("k", nil)
	d.gateway.On("Complete", mock.Anything, c.AIModel, mock.Anything, "k").
		Return(ai.Completion{}, models.ErrModelUnavailable)

	res, err := d.svc.SendMessage(context.Background(), userID, c.ID, "Hello?", "k")

	assert.ErrorIs(t, err, models.ErrModelUnavailable)
	require.NotNil(t, res.UserMessage)
	assert.Nil(t, res.AssistantMessage)
	assert.Len(t, d.saved, 1)
}

func TestSendMessage_UnclassifiedGatewayErrorBecomesModelUnavailable(t *testing.T) {
	d := newGameDeps(t, 1)
	userID := uuid.New()
	c := campaignWithCharacter(userID)

	d.campaigns.On("GetWithHistory", mock.Anything, userID, c.ID).Return(c, nil)
	d.expectMessages()
	d.gateway.On("ResolveCredential", "k").Return("k", nil)
	d.gateway.On("Complete", mock.Anything, c.AIModel, mock.Anything, "k").Return(ai.Completion{}, errors.New("socket closed"))

	_, err := d.svc.SendMessage(context.Background(), userID, c.ID, "Hello?", "k")

	assert.ErrorIs(t, err, models.ErrModelUnavailable)
}

func TestSendMessage_UpdateWithoutCharacterIsStrippedOnly(t *testing.T) {
	d := newGameDeps(t, 1)
	userID := uuid.New()
	c := &models.Campaign{ID: uuid.New(), UserID: userID, Name: "No hero", System: "AD&D 1e", AIModel: "m"}

	d.campaigns.On("GetWithHistory", mock.Anything, userID, c.ID).Return(c, nil)
	d.expectMessages()
	d.gateway.On("ResolveCredential", "k").Return("k", nil)
	d.gateway.On("Complete", mock.Anything, "m", mock.Anything, "k").
		Return(ai.Completion{Text: `The wind howls. <<<UPDATE {"gp": 5}>>>`, Model: "m"}, nil)
	d.publisher.On("PublishTurnCompleted", mock.Anything, mock.MatchedBy(func(e models.TurnCompletedEvent) bool {
		return !e.CharacterUpdated
	})).Return(nil)

	res, err := d.svc.SendMessage(context.Background(), userID, c.ID, "Wait", "k")

	require.NoError(t, err)
	assert.Equal(t, "The wind howls.", res.AssistantMessage.Content)
	assert.Nil(t, res.Character)
	d.characters.AssertNotCalled(t, "ApplyPatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_MalformedUpdateLeavesCharacter(t *testing.T) {
	d := newGameDeps(t, 1)
	userID := uuid.New()
	c := campaignWithCharacter(userID)

	d.campaigns.On("GetWithHistory", mock.Anything, userID, c.ID).Return(c, nil)
	d.expectMessages()
	d.gateway.On("ResolveCredential", "k").Return("k", nil)
	d.gateway.On("Complete", mock.Anything, c.AIModel, mock.Anything, "k").
		Return(ai.Completion{Text: "Ouch. <<<UPDATE {hp: }>>>", Model: c.AIModel}, nil)
	d.publisher.On("PublishTurnCompleted", mock.Anything, mock.Anything).Return(nil)

	res, err := d.svc.SendMessage(context.Background(), userID, c.ID, "I fall", "k")

	require.NoError(t, err)
	assert.Equal(t, "Ouch.", res.AssistantMessage.Content)
	assert.Nil(t, res.Character)
	d.characters.AssertNotCalled(t, "ApplyPatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_PublishFailureDoesNotFailTurn(t *testing.T) {
	d := newGameDeps(t, 1)
	userID := uuid.New()
	c := campaignWithCharacter(userID)

	d.campaigns.On("GetWithHistory", mock.Anything, userID, c.ID).Return(c, nil)
	d.expectMessages()
	d.gateway.On("ResolveCredential", "k").Return("k", nil)
	d.gateway.On("Complete", mock.Anything, c.AIModel, mock.Anything, "k").
		Return(ai.Completion{Text: "Silence.", Model: ai.DefaultModel, FellBack: true}, nil)
	d.publisher.On("PublishTurnCompleted", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	res, err := d.svc.SendMessage(context.Background(), userID, c.ID, "Listen", "k")

	require.NoError(t, err)
	assert.True(t, res.UsedFallback)
	assert.Equal(t, ai.DefaultModel, res.Model)
}

func TestSendMessage_Validation(t *testing.T) {
	d := newGameDeps(t, 1)

	_, err := d.svc.SendMessage(context.Background(), uuid.New(), uuid.New(), "   ", "k")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	userID, campaignID := uuid.New(), uuid.New()
	d.campaigns.On("GetWithHistory", mock.Anything, userID, campaignID).Return(nil, models.ErrCampaignNotFound)
	_, err = d.svc.SendMessage(context.Background(), userID, campaignID, "hi", "k")
	assert.ErrorIs(t, err, models.ErrCampaignNotFound)
}

func TestRoll_WithoutCredentialReturnsRollOnly(t *testing.T) {
	d := newGameDeps(t, 14)
	userID := uuid.New()
	c := campaignWithCharacter(userID)

	d.campaigns.On("GetWithHistory", mock.Anything, userID, c.ID).Return(c, nil)
	d.expectMessages()
	d.gateway.On("ResolveCredential", "").Return("", models.ErrAuthenticationMissing)
	d.publisher.On("PublishTurnCompleted", mock.Anything, mock.MatchedBy(func(e models.TurnCompletedEvent) bool {
		return e.Role == models.RoleUser && len(e.Rolls) == 1 && e.Rolls[0].Result == 14
	})).Return(nil).Once()

	out, err := d.svc.Roll(context.Background(), userID, c.ID, "d20", "")

	require.NoError(t, err)
	assert.Equal(t, models.DiceRoll{Dice: "d20", Sides: 20, Result: 14}, out.Roll)
	require.NotNil(t, out.RollMessage)
	assert.Equal(t, "*Rolls d20... Result: 14*", out.RollMessage.Content)
	assert.Nil(t, out.Turn)
	assert.Len(t, d.saved, 1)
	d.gateway.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRoll_WithCredentialRunsTurnWithAddendum(t *testing.T) {
	d := newGameDeps(t, 14)
	userID := uuid.New()
	c := campaignWithCharacter(userID)

	d.campaigns.On("GetWithHistory", mock.Anything, userID, c.ID).Return(c, nil)
	d.expectMessages()
	d.gateway.On("ResolveCredential", "k").Return("k", nil)
	d.gateway.On("Complete", mock.Anything, c.AIModel, mock.MatchedBy(func(p models.Prompt) bool {
		last := p.Turns[len(p.Turns)-1]
		return strings.Contains(p.System, "rolled a d20") && strings.Contains(p.System, "result is 14") &&
			last.Content == "*Rolls d20... Result: 14*"
	}), "k").Return(ai.Completion{Text: "Your arrow finds its mark.", Model: c.AIModel}, nil).Once()
	d.publisher.On("PublishTurnCompleted", mock.Anything, mock.Anything).Return(nil).Once()

	out, err := d.svc.Roll(context.Background(), userID, c.ID, "D20", "k")

	require.NoError(t, err)
	require.NotNil(t, out.Turn)
	assert.Equal(t, "Your arrow finds its mark.", out.Turn.AssistantMessage.Content)
	assert.Equal(t, out.RollMessage, out.Turn.UserMessage)
	assert.Len(t, d.saved, 2)
}

func TestRoll_InvalidDiceSpec(t *testing.T) {
	d := newGameDeps(t, 1)

	for _, spec := range []string{"", "20", "dx", "d0", "d-4", "2d6"} {
		_, err := d.svc.Roll(context.Background(), uuid.New(), uuid.New(), spec, "k")
		assert.ErrorIs(t, err, models.ErrInvalidDiceSpec, spec)
	}
	d.campaigns.AssertNotCalled(t, "GetWithHistory", mock.Anything, mock.Anything, mock.Anything)
}
