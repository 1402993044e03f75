package interfaces

import (
	"context"

	"dm-server/internal/models"

	"github.com/google/uuid"
)

// CampaignRepository - хранилище кампаний. Все операции ограничены владельцем userID:
// чужая кампания неотличима от несуществующей (models.ErrCampaignNotFound).
type CampaignRepository interface {
	// ListByUser возвращает кампании пользователя, новые первыми.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error)
	// Create сохраняет кампанию, заполняя ID и временные метки.
	Create(ctx context.Context, campaign *models.Campaign) error
	// GetByID возвращает кампанию без истории.
	GetByID(ctx context.Context, userID, campaignID uuid.UUID) (*models.Campaign, error)
	// GetWithHistory возвращает кампанию вместе с персонажем (если привязан) и сообщениями по возрастанию времени.
	GetWithHistory(ctx context.Context, userID, campaignID uuid.UUID) (*models.Campaign, error)
	// UpdateContext заменяет фоновые материалы кампании.
	UpdateContext(ctx context.Context, userID, campaignID uuid.UUID, text string) error
	// Delete удаляет кампанию, сообщения удаляются каскадно.
	Delete(ctx context.Context, userID, campaignID uuid.UUID) error
}
