package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"
	"dm-server/internal/prompt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// ContextSourceSeparator разделяет загруженные в кампанию источники.
	ContextSourceSeparator = "\n\n--- NEW SOURCE ---\n\n"
	// MaxContextUploadRunes - предел одной загрузки фоновых материалов.
	MaxContextUploadRunes = 100000
)

// CreateCampaignInput - параметры новой кампании. Пустые поля заменяются значениями по умолчанию.
type CreateCampaignInput struct {
	Name               string
	System             string
	AIModel            string
	CustomInstructions string
	CharacterID        *uuid.UUID
}

// CampaignService - управление кампаниями пользователя.
type CampaignService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error)
	Create(ctx context.Context, userID uuid.UUID, in CreateCampaignInput) (*models.Campaign, error)
	Get(ctx context.Context, userID, campaignID uuid.UUID) (*models.Campaign, error)
	Delete(ctx context.Context, userID, campaignID uuid.UUID) error
	// AppendContext дописывает текст к фоновым материалам и возвращает их новую длину в символах.
	AppendContext(ctx context.Context, userID, campaignID uuid.UUID, text string) (int, error)
}

type campaignServiceImpl struct {
	campaigns    interfaces.CampaignRepository
	characters   interfaces.CharacterRepository
	defaultModel string
	logger       *zap.Logger
}

// NewCampaignService creates a new instance of CampaignService.
func NewCampaignService(
	campaigns interfaces.CampaignRepository,
	characters interfaces.CharacterRepository,
	defaultModel string,
	logger *zap.Logger,
) CampaignService {
	return &campaignServiceImpl{
		campaigns:    campaigns,
		characters:   characters,
		defaultModel: defaultModel,
		logger:       logger.Named("CampaignService"),
	}
}

func (s *campaignServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error) {
	return s.campaigns.ListByUser(ctx, userID)
}

func (s *campaignServiceImpl) Create(ctx context.Context, userID uuid.UUID, in CreateCampaignInput) (*models.Campaign, error) {
	c := &models.Campaign{
		UserID:  userID,
		Name:    orDefault(in.Name, models.DefaultCampaignName),
		System:  orDefault(in.System, models.DefaultRuleSystem),
		AIModel: orDefault(in.AIModel, s.defaultModel),
	}
	if instr := strings.TrimSpace(in.CustomInstructions); instr != "" {
		c.CustomInstructions = &instr
	}

	if in.CharacterID != nil {
		if _, err := s.characters.GetByID(ctx, userID, *in.CharacterID); err != nil {
			if errors.Is(err, models.ErrCharacterNotFound) {
				return nil, fmt.Errorf("%w: character %s does not exist", models.ErrInvalidInput, in.CharacterID)
			}
			return nil, err
		}
		c.CharacterID = in.CharacterID
	}

	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *campaignServiceImpl) Get(ctx context.Context, userID, campaignID uuid.UUID) (*models.Campaign, error) {
	return s.campaigns.GetWithHistory(ctx, userID, campaignID)
}

func (s *campaignServiceImpl) Delete(ctx context.Context, userID, campaignID uuid.UUID) error {
	return s.campaigns.Delete(ctx, userID, campaignID)
}

func (s *campaignServiceImpl) AppendContext(ctx context.Context, userID, campaignID uuid.UUID, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%w: context text is empty", models.ErrInvalidInput)
	}

	c, err := s.campaigns.GetByID(ctx, userID, campaignID)
	if err != nil {
		return 0, err
	}

	upload := prompt.TruncateRunes(text, MaxContextUploadRunes)
	newContext := upload
	if c.Context != nil && *c.Context != "" {
		newContext = *c.Context + ContextSourceSeparator + upload
	}

	if err := s.campaigns.UpdateContext(ctx, userID, campaignID, newContext); err != nil {
		return 0, err
	}
	s.logger.Info("Campaign context extended",
		zap.String("campaignID", campaignID.String()),
		zap.Int("uploaded_len", len(upload)),
		zap.Int("total_len", len(newContext)),
	)
	return len([]rune(newContext)), nil
}

func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
