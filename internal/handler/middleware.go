package handler

import (
	"errors"
	"strings"

	"dm-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware проверяет Bearer JWT и, если подключен Redis, что токен не отозван.
func (h *GameHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.logger.Warn("Authorization header missing", zap.String("path", c.Request.URL.Path))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			h.logger.Warn("Invalid Authorization header format")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		claims, err := h.verifier(c.Request.Context(), parts[1])
		if err != nil {
			h.logger.Warn("Access token verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err)
			return
		}

		if h.tokens != nil {
			ownerID, err := h.tokens.GetUserIDByAccessUUID(c.Request.Context(), claims.ID)
			if err != nil {
				tokenVerificationsTotal.WithLabelValues("revoked").Inc()
				if !errors.Is(err, models.ErrTokenNotFound) {
					h.logger.Error("Token storage lookup failed", zap.Error(err))
				}
				handleServiceError(c, models.ErrTokenNotFound)
				return
			}
			if ownerID != claims.UserID {
				h.logger.Warn("Token owner mismatch",
					zap.String("claimsUserID", claims.UserID.String()),
					zap.String("storedUserID", ownerID.String()),
				)
				tokenVerificationsTotal.WithLabelValues("failure").Inc()
				handleServiceError(c, models.ErrTokenInvalid)
				return
			}
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(models.UserIDKey, claims.UserID)
		c.Next()
	}
}
