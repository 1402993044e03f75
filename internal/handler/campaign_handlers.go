package handler

import (
	"errors"
	"net/http"

	"dm-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *GameHandler) listCampaigns(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	campaigns, err := h.campaigns.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error listing campaigns", zap.String("userID", userID.String()), zap.Error(err))
		handleServiceError(c, err)
		return
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	c.JSON(http.StatusOK, campaigns)
}

func (h *GameHandler) createCampaign(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body for createCampaign", zap.String("userID", userID.String()), zap.Error(err))
		handleServiceError(c, models.ErrBadRequest)
		return
	}

	campaign, err := h.campaigns.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		if !errors.Is(err, models.ErrInvalidInput) {
			h.logger.Error("Error creating campaign", zap.String("userID", userID.String()), zap.Error(err))
		}
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (h *GameHandler) getCampaign(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	campaignID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaigns.Get(c.Request.Context(), userID, campaignID)
	if err != nil {
		if !errors.Is(err, models.ErrCampaignNotFound) {
			h.logger.Error("Error getting campaign", zap.String("campaignID", campaignID.String()), zap.Error(err))
		}
		handleServiceError(c, err)
		return
	}
	if campaign.Messages == nil {
		campaign.Messages = []models.Message{}
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *GameHandler) deleteCampaign(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	campaignID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.campaigns.Delete(c.Request.Context(), userID, campaignID); err != nil {
		if !errors.Is(err, models.ErrCampaignNotFound) {
			h.logger.Error("Error deleting campaign", zap.String("campaignID", campaignID.String()), zap.Error(err))
		}
		handleServiceError(c, err)
		return
	}
	h.logger.Info("Campaign deleted", zap.String("userID", userID.String()), zap.String("campaignID", campaignID.String()))
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) appendContext(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	campaignID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req appendContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, models.ErrBadRequest)
		return
	}

	length, err := h.campaigns.AppendContext(c.Request.Context(), userID, campaignID, req.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appendContextResponse{Message: "Context added successfully", ContextLength: length})
}
