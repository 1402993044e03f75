package handler

import (
	"errors"
	"net/http"

	"dm-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *GameHandler) listCharacters(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	characters, err := h.characters.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error listing characters", zap.String("userID", userID.String()), zap.Error(err))
		handleServiceError(c, err)
		return
	}
	if characters == nil {
		characters = []models.Character{}
	}
	c.JSON(http.StatusOK, characters)
}

func (h *GameHandler) getCharacter(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	characterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	character, err := h.characters.Get(c.Request.Context(), userID, characterID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *GameHandler) createCharacter(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	var req createCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for createCharacter", zap.String("userID", userID.String()), zap.Error(err))
		handleServiceError(c, models.ErrBadRequest)
		return
	}

	character, err := h.characters.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		if !errors.Is(err, models.ErrInvalidInput) {
			h.logger.Error("Error creating character", zap.String("userID", userID.String()), zap.Error(err))
		}
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *GameHandler) deleteCharacter(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	characterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.characters.Delete(c.Request.Context(), userID, characterID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
