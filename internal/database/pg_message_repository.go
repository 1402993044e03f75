package database

import (
	"context"
	"fmt"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgMessageRepository implements MessageRepository
var _ interfaces.MessageRepository = (*pgMessageRepository)(nil)

type pgMessageRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgMessageRepository creates a new PostgreSQL-backed MessageRepository.
func NewPgMessageRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.MessageRepository {
	return &pgMessageRepository{
		db:     db,
		logger: logger.Named("PgMessageRepo"),
	}
}

const createMessageQuery = `
INSERT INTO messages (id, campaign_id, role, content)
VALUES ($1, $2, $3, $4)
RETURNING created_at`

const listMessagesByCampaignQuery = `
SELECT id, campaign_id, role, content, created_at
FROM messages
WHERE campaign_id = $1
ORDER BY created_at ASC, seq ASC`

// Create appends a message. CreatedAt is assigned by the database clock.
func (r *pgMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	if !msg.Role.IsValid() {
		return fmt.Errorf("%w: message role %q", models.ErrInvalidInput, msg.Role)
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, createMessageQuery, msg.ID, msg.CampaignID, msg.Role, msg.Content).Scan(&msg.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create message",
			zap.String("campaignID", msg.CampaignID.String()),
			zap.String("role", string(msg.Role)),
			zap.Error(err),
		)
		return fmt.Errorf("failed to create message: %w", err)
	}
	r.logger.Debug("Message created", zap.String("messageID", msg.ID.String()), zap.String("role", string(msg.Role)))
	return nil
}

// ListByCampaign returns messages in creation order.
func (r *pgMessageRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	if err := pgxscan.Select(ctx, r.db, &messages, listMessagesByCampaignQuery, campaignID); err != nil {
		r.logger.Error("Failed to list messages", zap.String("campaignID", campaignID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
