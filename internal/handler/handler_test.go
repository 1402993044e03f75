package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dm-server/internal/interfaces"
	interfaceMocks "dm-server/internal/interfaces/mocks"
	"dm-server/internal/models"
	"dm-server/internal/service"
	serviceMocks "dm-server/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const goodToken = "good-token"

type testEnv struct {
	router     *gin.Engine
	game       *serviceMocks.MockGameService
	campaigns  *serviceMocks.MockCampaignService
	characters *serviceMocks.MockCharacterService
	userID     uuid.UUID
	jti        string
}

func fakeVerifier(userID uuid.UUID, jti string) TokenVerifier {
	return func(_ context.Context, token string) (*models.Claims, error) {
		switch token {
		case goodToken:
			return &models.Claims{UserID: userID, RegisteredClaims: jwt.RegisteredClaims{ID: jti}}, nil
		case "expired":
			return nil, models.ErrTokenExpired
		}
		return nil, models.ErrTokenInvalid
	}
}

func newTestEnv(t *testing.T, tokens *interfaceMocks.MockTokenRepository) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		game:       serviceMocks.NewMockGameService(t),
		campaigns:  serviceMocks.NewMockCampaignService(t),
		characters: serviceMocks.NewMockCharacterService(t),
		userID:     uuid.New(),
		jti:        uuid.NewString(),
	}
	var tokenRepo interfaces.TokenRepository
	if tokens != nil {
		tokenRepo = tokens
	}
	h := NewGameHandler(env.game, env.campaigns, env.characters, fakeVerifier(env.userID, env.jti), tokenRepo, zap.NewNop())
	env.router = gin.New()
	h.RegisterRoutes(env.router)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/game/campaigns", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, models.ErrCodeTokenInvalid, decodeError(t, w).Code)

	w = env.do(t, http.MethodGet, "/api/game/campaigns", nil, "expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, models.ErrCodeTokenExpired, decodeError(t, w).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/game/campaigns", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	tokens := interfaceMocks.NewMockTokenRepository(t)
	env := newTestEnv(t, tokens)

	tokens.On("GetUserIDByAccessUUID", mock.Anything, env.jti).Return(uuid.Nil, models.ErrTokenNotFound).Once()
	w := env.do(t, http.MethodGet, "/api/characters", nil, goodToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tokens.On("GetUserIDByAccessUUID", mock.Anything, env.jti).Return(env.userID, nil).Once()
	env.characters.On("List", mock.Anything, env.userID).Return(nil, nil).Once()
	w = env.do(t, http.MethodGet, "/api/characters", nil, goodToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSendMessage_Success(t *testing.T) {
	env := newTestEnv(t, nil)
	campaignID := uuid.New()
	result := &models.TurnResult{
		UserMessage:      &models.Message{ID: uuid.New(), Role: models.RoleUser, Content: "I dodge"},
		AssistantMessage: &models.Message{ID: uuid.New(), Role: models.RoleAssistant, Content: "You dodge!  The goblin snarls."},
		Character:        &models.Character{HP: 8, MaxHP: 10},
	}
	env.game.On("SendMessage", mock.Anything, env.userID, campaignID, "I dodge", "sk-user").Return(result, nil).Once()

	w := env.do(t, http.MethodPost, "/api/game/campaigns/"+campaignID.String()+"/message",
		map[string]string{"content": "I dodge", "apiKey": "sk-user"}, goodToken)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Message   models.Message   `json:"message"`
		Character models.Character `json:"character"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "You dodge!  The goblin snarls.", body.Message.Content)
	assert.Equal(t, 8, body.Character.HP)
}

func TestSendMessage_FailureCarriesUserMessage(t *testing.T) {
	env := newTestEnv(t, nil)
	campaignID := uuid.New()
	userMsg := &models.Message{ID: uuid.New(), Role: models.RoleUser, Content: "Hello?"}

	env.game.On("SendMessage", mock.Anything, env.userID, campaignID, "Hello?", "").
		Return(&models.TurnResult{UserMessage: userMsg}, models.ErrModelUnavailable).Once()

	w := env.do(t, http.MethodPost, "/api/game/campaigns/"+campaignID.String()+"/message",
		map[string]string{"content": "Hello?"}, goodToken)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, models.ErrCodeModelUnavailable, resp.Code)
	require.NotNil(t, resp.UserMessage)
	assert.Equal(t, userMsg.ID, resp.UserMessage.ID)
}

func TestSendMessage_BadRequests(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/game/campaigns/not-a-uuid/message", map[string]string{"content": "x"}, goodToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/game/campaigns/"+uuid.NewString()+"/message", map[string]string{}, goodToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoll(t *testing.T) {
	env := newTestEnv(t, nil)
	campaignID := uuid.New()

	rollMsg := &models.Message{ID: uuid.New(), Role: models.RoleUser, Content: "*Rolls d20... Result: 14*"}
	env.game.On("Roll", mock.Anything, env.userID, campaignID, "d20", "").
		Return(&models.RollOutcome{Roll: models.DiceRoll{Dice: "d20", Sides: 20, Result: 14}, RollMessage: rollMsg}, nil).Once()

	w := env.do(t, http.MethodPost, "/api/game/campaigns/"+campaignID.String()+"/roll", map[string]string{"dice": "d20"}, goodToken)
	require.Equal(t, http.StatusOK, w.Code)
	var outcome models.RollOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, 14, outcome.Roll.Result)
	assert.Nil(t, outcome.Turn)

	env.game.On("Roll", mock.Anything, env.userID, campaignID, "d0", "").Return(nil, models.ErrInvalidDiceSpec).Once()
	w = env.do(t, http.MethodPost, "/api/game/campaigns/"+campaignID.String()+"/roll", map[string]string{"dice": "d0"}, goodToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeInvalidDice, decodeError(t, w).Code)
}

func TestCampaignRoutes(t *testing.T) {
	env := newTestEnv(t, nil)
	campaignID := uuid.New()

	env.campaigns.On("Create", mock.Anything, env.userID, service.CreateCampaignInput{Name: "Tomb"}).
		Return(&models.Campaign{ID: campaignID, Name: "Tomb"}, nil).Once()
	w := env.do(t, http.MethodPost, "/api/game/campaigns", map[string]string{"name": "Tomb"}, goodToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	env.campaigns.On("Get", mock.Anything, env.userID, campaignID).Return(nil, models.ErrCampaignNotFound).Once()
	w = env.do(t, http.MethodGet, "/api/game/campaigns/"+campaignID.String(), nil, goodToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.campaigns.On("Delete", mock.Anything, env.userID, campaignID).Return(nil).Once()
	w = env.do(t, http.MethodDelete, "/api/game/campaigns/"+campaignID.String(), nil, goodToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	env.campaigns.On("AppendContext", mock.Anything, env.userID, campaignID, "Lore").Return(4, nil).Once()
	w = env.do(t, http.MethodPost, "/api/game/campaigns/"+campaignID.String()+"/context", map[string]string{"text": "Lore"}, goodToken)
	require.Equal(t, http.StatusOK, w.Code)
	var ctxResp appendContextResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ctxResp))
	assert.Equal(t, 4, ctxResp.ContextLength)
}

func TestCharacterRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	env.characters.On("Create", mock.Anything, env.userID, mock.MatchedBy(func(in service.CreateCharacterInput) bool {
		return in.Name == "Thorin" && in.MaxHP == 12 && in.GP == nil && in.AC == nil
	})).Return(&models.Character{ID: uuid.New(), Name: "Thorin", GP: 80}, nil).Once()
	w := env.do(t, http.MethodPost, "/api/characters", map[string]any{"name": "Thorin", "maxHp": 12}, goodToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	env.characters.On("Create", mock.Anything, env.userID, mock.MatchedBy(func(in service.CreateCharacterInput) bool {
		return in.Name == "Paladin" && in.AC != nil && *in.AC == 0
	})).Return(&models.Character{ID: uuid.New(), Name: "Paladin", AC: 0}, nil).Once()
	w = env.do(t, http.MethodPost, "/api/characters", map[string]any{"name": "Paladin", "ac": 0}, goodToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	env.characters.On("Create", mock.Anything, env.userID, mock.Anything).
		Return(nil, models.ErrInvalidInput).Once()
	w = env.do(t, http.MethodPost, "/api/characters", map[string]any{"name": "Bad", "hp": -1}, goodToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeValidation, decodeError(t, w).Code)

	id := uuid.New()
	env.characters.On("Delete", mock.Anything, env.userID, id).Return(models.ErrCharacterNotFound).Once()
	w = env.do(t, http.MethodDelete, "/api/characters/"+id.String(), nil, goodToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{models.ErrAuthenticationMissing, http.StatusBadRequest, models.ErrCodeAuthenticationMissing},
		{models.ErrModelUnavailable, http.StatusBadGateway, models.ErrCodeModelUnavailable},
		{models.ErrCampaignNotFound, http.StatusNotFound, models.ErrCodeNotFound},
		{models.ErrTokenNotFound, http.StatusUnauthorized, models.ErrCodeTokenInvalid},
		{assert.AnError, http.StatusInternalServerError, models.ErrCodeInternal},
	}
	for _, tt := range tests {
		status, resp := errorStatus(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, resp.Code, tt.err.Error())
	}
}
