package database

import (
	"context"
	"errors"
	"fmt"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgCampaignRepository implements CampaignRepository
var _ interfaces.CampaignRepository = (*pgCampaignRepository)(nil)

type pgCampaignRepository struct {
	db         interfaces.DBTX
	characters interfaces.CharacterRepository
	messages   interfaces.MessageRepository
	logger     *zap.Logger
}

// NewPgCampaignRepository creates a new PostgreSQL-backed CampaignRepository.
func NewPgCampaignRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.CampaignRepository {
	return &pgCampaignRepository{
		db:         db,
		characters: NewPgCharacterRepository(db, logger),
		messages:   NewPgMessageRepository(db, logger),
		logger:     logger.Named("PgCampaignRepo"),
	}
}

const campaignColumns = `id, user_id, name, system, ai_model, custom_instructions, context, character_id, created_at, updated_at`

const listCampaignsByUserQuery = `
SELECT id, user_id, name, system, ai_model, custom_instructions, NULL::text AS context, character_id, created_at, updated_at
FROM campaigns
WHERE user_id = $1
ORDER BY created_at DESC`

const createCampaignQuery = `
INSERT INTO campaigns (id, user_id, name, system, ai_model, custom_instructions, context, character_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at, updated_at`

const getCampaignByIDQuery = `
SELECT ` + campaignColumns + `
FROM campaigns
WHERE id = $1 AND user_id = $2`

const updateCampaignContextQuery = `
UPDATE campaigns SET context = $3, updated_at = NOW()
WHERE id = $1 AND user_id = $2`

const deleteCampaignQuery = `DELETE FROM campaigns WHERE id = $1 AND user_id = $2`

// ListByUser returns the caller's campaigns, newest first. Context is not loaded for the list.
func (r *pgCampaignRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error) {
	campaigns := make([]models.Campaign, 0)
	if err := pgxscan.Select(ctx, r.db, &campaigns, listCampaignsByUserQuery, userID); err != nil {
		r.logger.Error("Failed to list campaigns", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// Create inserts a new campaign.
func (r *pgCampaignRepository) Create(ctx context.Context, c *models.Campaign) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, createCampaignQuery,
		c.ID, c.UserID, c.Name, c.System, c.AIModel, c.CustomInstructions, c.Context, c.CharacterID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create campaign", zap.String("userID", c.UserID.String()), zap.Error(err))
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	r.logger.Info("Campaign created", zap.String("campaignID", c.ID.String()), zap.String("userID", c.UserID.String()))
	return nil
}

// GetByID returns a campaign owned by userID.
func (r *pgCampaignRepository) GetByID(ctx context.Context, userID, campaignID uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	if err := pgxscan.Get(ctx, r.db, &c, getCampaignByIDQuery, campaignID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Campaign not found", zap.String("campaignID", campaignID.String()), zap.String("userID", userID.String()))
			return nil, models.ErrCampaignNotFound
		}
		r.logger.Error("Failed to get campaign", zap.String("campaignID", campaignID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &c, nil
}

// GetWithHistory loads the campaign with its character and ordered messages.
func (r *pgCampaignRepository) GetWithHistory(ctx context.Context, userID, campaignID uuid.UUID) (*models.Campaign, error) {
	c, err := r.GetByID(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}

	if c.CharacterID != nil {
		character, err := r.characters.GetByID(ctx, userID, *c.CharacterID)
		switch {
		case err == nil:
			c.Character = character
		case errors.Is(err, models.ErrCharacterNotFound):
			r.logger.Warn("Campaign references a missing character",
				zap.String("campaignID", c.ID.String()),
				zap.String("characterID", c.CharacterID.String()),
			)
		default:
			return nil, err
		}
	}

	messages, err := r.messages.ListByCampaign(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Messages = messages
	return c, nil
}

// UpdateContext replaces the campaign background context.
func (r *pgCampaignRepository) UpdateContext(ctx context.Context, userID, campaignID uuid.UUID, text string) error {
	tag, err := r.db.Exec(ctx, updateCampaignContextQuery, campaignID, userID, text)
	if err != nil {
		r.logger.Error("Failed to update campaign context", zap.String("campaignID", campaignID.String()), zap.Error(err))
		return fmt.Errorf("failed to update campaign context: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCampaignNotFound
	}
	return nil
}

// Delete removes a campaign; messages are removed by the FK cascade.
func (r *pgCampaignRepository) Delete(ctx context.Context, userID, campaignID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteCampaignQuery, campaignID, userID)
	if err != nil {
		r.logger.Error("Failed to delete campaign", zap.String("campaignID", campaignID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCampaignNotFound
	}
	r.logger.Info("Campaign deleted", zap.String("campaignID", campaignID.String()), zap.String("userID", userID.String()))
	return nil
}
