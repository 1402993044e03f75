package handler

import (
	"errors"
	"net/http"

	"dm-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorStatus сопоставляет ошибку сервиса HTTP-статусу и телу ответа.
func errorStatus(err error) (int, models.ErrorResponse) {
	switch {
	case errors.Is(err, models.ErrCampaignNotFound):
		return http.StatusNotFound, models.ErrorResponse{Code: models.ErrCodeNotFound, Message: "Campaign not found"}
	case errors.Is(err, models.ErrCharacterNotFound):
		return http.StatusNotFound, models.ErrorResponse{Code: models.ErrCodeNotFound, Message: "Character not found"}
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, models.ErrorResponse{Code: models.ErrCodeNotFound, Message: "Resource not found"}
	case errors.Is(err, models.ErrTokenExpired):
		return http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenExpired, Message: "Token has expired"}
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed), errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Token is invalid or malformed"}
	case errors.Is(err, models.ErrTokenNotFound):
		return http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Provided token is invalid (possibly revoked or expired)"}
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, models.ErrorResponse{Code: models.ErrCodeForbidden, Message: "Forbidden"}
	case errors.Is(err, models.ErrAuthenticationMissing):
		return http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeAuthenticationMissing, Message: "Model API key is missing: supply apiKey or configure a server key"}
	case errors.Is(err, models.ErrModelUnavailable):
		return http.StatusBadGateway, models.ErrorResponse{Code: models.ErrCodeModelUnavailable, Message: "The Dungeon Master is unavailable, try again later"}
	case errors.Is(err, models.ErrInvalidDiceSpec):
		return http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeInvalidDice, Message: err.Error()}
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Message: err.Error()}
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: err.Error()}
	}
	zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
	return http.StatusInternalServerError, models.ErrorResponse{Code: models.ErrCodeInternal, Message: "An unexpected internal error occurred"}
}

func handleServiceError(c *gin.Context, err error) {
	statusCode, errResp := errorStatus(err)
	c.AbortWithStatusJSON(statusCode, errResp)
}

// handleTurnError отвечает ошибкой сорванного хода вместе с уже сохраненным вводом игрока.
func handleTurnError(c *gin.Context, err error, userMsg *models.Message) {
	statusCode, errResp := errorStatus(err)
	errResp.UserMessage = userMsg
	c.AbortWithStatusJSON(statusCode, errResp)
}
