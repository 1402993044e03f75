package handler

import (
	"context"
	"errors"
	"net/http"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"
	"dm-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenVerifier проверяет строку токена и возвращает claims.
type TokenVerifier func(ctx context.Context, tokenString string) (*models.Claims, error)

// GameHandler обрабатывает HTTP запросы DM Server.
type GameHandler struct {
	game       service.GameService
	campaigns  service.CampaignService
	characters service.CharacterService
	verifier   TokenVerifier
	tokens     interfaces.TokenRepository
	logger     *zap.Logger
}

// NewGameHandler создает GameHandler. tokens может быть nil: тогда отзыв токенов не проверяется.
func NewGameHandler(
	game service.GameService,
	campaigns service.CampaignService,
	characters service.CharacterService,
	verifier TokenVerifier,
	tokens interfaces.TokenRepository,
	logger *zap.Logger,
) *GameHandler {
	return &GameHandler{
		game:       game,
		campaigns:  campaigns,
		characters: characters,
		verifier:   verifier,
		tokens:     tokens,
		logger:     logger.Named("GameHandler"),
	}
}

// RegisterRoutes регистрирует маршруты API.
func (h *GameHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(h.AuthMiddleware())

	game := api.Group("/game")
	{
		game.GET("/campaigns", h.listCampaigns)
		game.POST("/campaigns", h.createCampaign)
		game.GET("/campaigns/:id", h.getCampaign)
		game.DELETE("/campaigns/:id", h.deleteCampaign)
		game.POST("/campaigns/:id/message", h.sendMessage)
		game.POST("/campaigns/:id/roll", h.roll)
		game.POST("/campaigns/:id/context", h.appendContext)
	}

	characters := api.Group("/characters")
	{
		characters.GET("", h.listCharacters)
		characters.GET("/:id", h.getCharacter)
		characters.POST("", h.createCharacter)
		characters.DELETE("/:id", h.deleteCharacter)
	}
}

// getUserIDFromContext достает userID, положенный AuthMiddleware. При ошибке запрос уже прерван.
func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(models.UserIDKey)
	if !exists {
		handleServiceError(c, models.ErrUnauthorized)
		return uuid.Nil, errors.New("user_id not found in context")
	}
	userID, ok := val.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		handleServiceError(c, models.ErrUnauthorized)
		return uuid.Nil, errors.New("invalid user_id in context")
	}
	return userID, nil
}

// parseIDParam разбирает UUID из параметра пути. При ошибке запрос уже прерван.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeBadRequest,
			Message: "Invalid " + name + " format",
		})
		return uuid.Nil, false
	}
	return id, true
}
