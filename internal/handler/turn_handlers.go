package handler

import (
	"net/http"

	"dm-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sendMessage принимает ход игрока и возвращает ответ ведущего и, если было обновление, персонажа.
func (h *GameHandler) sendMessage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	campaignID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, models.ErrBadRequest)
		return
	}

	result, err := h.game.SendMessage(c.Request.Context(), userID, campaignID, req.Content, req.APIKey)
	if err != nil {
		turnsTotal.WithLabelValues("message", "error").Inc()
		h.logger.Warn("Turn failed",
			zap.String("userID", userID.String()),
			zap.String("campaignID", campaignID.String()),
			zap.Error(err),
		)
		var userMsg *models.Message
		if result != nil {
			userMsg = result.UserMessage
		}
		handleTurnError(c, err, userMsg)
		return
	}

	turnsTotal.WithLabelValues("message", "success").Inc()
	c.JSON(http.StatusOK, result)
}

// roll бросает кость на сервере. Без ключа модели возвращается только бросок.
func (h *GameHandler) roll(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	campaignID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req rollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, models.ErrBadRequest)
		return
	}

	outcome, err := h.game.Roll(c.Request.Context(), userID, campaignID, req.Dice, req.APIKey)
	if err != nil {
		turnsTotal.WithLabelValues("roll", "error").Inc()
		var rollMsg *models.Message
		if outcome != nil {
			// Бросок сохранен, сорвалась только реакция ведущего.
			rollMsg = outcome.RollMessage
		}
		handleTurnError(c, err, rollMsg)
		return
	}

	turnsTotal.WithLabelValues("roll", "success").Inc()
	c.JSON(http.StatusOK, outcome)
}
