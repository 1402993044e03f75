package interfaces

import (
	"context"

	"dm-server/internal/models"

	"github.com/google/uuid"
)

// MessageRepository - журнал сообщений кампании, только добавление.
type MessageRepository interface {
	// Create добавляет сообщение, заполняя ID и CreatedAt.
	Create(ctx context.Context, msg *models.Message) error
	// ListByCampaign возвращает сообщения в порядке создания.
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Message, error)
}
