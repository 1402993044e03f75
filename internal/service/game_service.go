package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dm-server/internal/dice"
	"dm-server/internal/directive"
	"dm-server/internal/interfaces"
	"dm-server/internal/models"
	"dm-server/internal/prompt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GameService проводит ходы ведущего: ввод игрока, бросок игрока, ответ модели.
type GameService interface {
	// SendMessage сохраняет ввод игрока и проводит полный ход.
	// При ErrAuthenticationMissing/ErrModelUnavailable возвращает и результат с сохраненным UserMessage, и ошибку.
	SendMessage(ctx context.Context, userID, campaignID uuid.UUID, content, apiKey string) (*models.TurnResult, error)
	// Roll бросает кость на сервере, сохраняет сообщение о броске и, если есть ключ, запрашивает реакцию ведущего.
	Roll(ctx context.Context, userID, campaignID uuid.UUID, diceSpec, apiKey string) (*models.RollOutcome, error)
}

type gameServiceImpl struct {
	campaigns   interfaces.CampaignRepository
	characters  interfaces.CharacterRepository
	messages    interfaces.MessageRepository
	gateway     interfaces.ModelGateway
	interpreter *directive.Interpreter
	roller      dice.Roller
	publisher   interfaces.TurnEventPublisher
	logger      *zap.Logger
}

// NewGameService creates a new instance of GameService.
func NewGameService(
	campaigns interfaces.CampaignRepository,
	characters interfaces.CharacterRepository,
	messages interfaces.MessageRepository,
	gateway interfaces.ModelGateway,
	roller dice.Roller,
	publisher interfaces.TurnEventPublisher,
	logger *zap.Logger,
) GameService {
	return &gameServiceImpl{
		campaigns:   campaigns,
		characters:  characters,
		messages:    messages,
		gateway:     gateway,
		interpreter: directive.NewInterpreter(roller, logger),
		roller:      roller,
		publisher:   publisher,
		logger:      logger.Named("GameService"),
	}
}

func (s *gameServiceImpl) SendMessage(ctx context.Context, userID, campaignID uuid.UUID, content, apiKey string) (*models.TurnResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content is empty", models.ErrInvalidInput)
	}

	campaign, err := s.campaigns.GetWithHistory(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}

	userMsg, err := s.persistMessage(ctx, campaign.ID, models.RoleUser, content)
	if err != nil {
		return nil, err
	}

	return s.runTurn(ctx, campaign, userMsg, "", apiKey)
}

func (s *gameServiceImpl) Roll(ctx context.Context, userID, campaignID uuid.UUID, diceSpec, apiKey string) (*models.RollOutcome, error) {
	sides, err := dice.ParseSpec(diceSpec)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.GetWithHistory(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}

	roll := dice.Throw(s.roller, sides)
	rollMsg, err := s.persistMessage(ctx, campaign.ID, models.RoleUser, dice.PlayerMessage(roll))
	if err != nil {
		return nil, err
	}
	outcome := &models.RollOutcome{Roll: roll, RollMessage: rollMsg}

	log := s.logger.With(
		zap.String("campaignID", campaign.ID.String()),
		zap.String("dice", roll.Dice),
		zap.Int("result", roll.Result),
	)

	if _, err := s.gateway.ResolveCredential(apiKey); err != nil {
		log.Info("No model credential, returning roll without a DM reaction")
		s.publishTurn(ctx, campaign, rollMsg, false, []models.DiceRoll{roll})
		return outcome, nil
	}

	turn, err := s.runTurn(ctx, campaign, rollMsg, prompt.RollAddendum(roll), apiKey)
	outcome.Turn = turn
	if err != nil {
		log.Warn("DM reaction to roll failed", zap.Error(err))
		return outcome, err
	}
	return outcome, nil
}

// runTurn вызывает модель для уже сохраненного сообщения игрока userMsg.
// campaign.Messages - история до этого сообщения.
func (s *gameServiceImpl) runTurn(ctx context.Context, campaign *models.Campaign, userMsg *models.Message, systemAddendum, apiKey string) (*models.TurnResult, error) {
	result := &models.TurnResult{UserMessage: userMsg}
	log := s.logger.With(zap.String("campaignID", campaign.ID.String()), zap.String("userID", campaign.UserID.String()))

	credential, err := s.gateway.ResolveCredential(apiKey)
	if err != nil {
		log.Warn("Turn rejected: no model credential")
		return result, err
	}

	p := prompt.Build(campaign, campaign.Messages, userMsg.Content)
	p.System += systemAddendum

	completion, err := s.gateway.Complete(ctx, campaign.AIModel, p, credential)
	if err != nil {
		log.Error("Model invocation failed", zap.String("model", campaign.AIModel), zap.Error(err))
		if !errors.Is(err, models.ErrModelUnavailable) && !errors.Is(err, models.ErrAuthenticationMissing) {
			err = fmt.Errorf("%w: %v", models.ErrModelUnavailable, err)
		}
		return result, err
	}
	result.Model = completion.Model
	result.UsedFallback = completion.FellBack

	interpreted := s.interpreter.Interpret(completion.Text)
	result.Rolls = interpreted.Rolls
	if interpreted.ParseErr != nil {
		log.Warn("Ignoring malformed character update from model", zap.Error(interpreted.ParseErr))
	}

	if interpreted.Patch != nil {
		if campaign.HasCharacter() {
			updated, err := s.characters.ApplyPatch(ctx, campaign.Character.ID, interpreted.Patch)
			if err != nil {
				// Ошибка обновления листа не срывает ход.
				log.Error("Failed to apply character update", zap.String("characterID", campaign.Character.ID.String()), zap.Error(err))
			} else {
				result.Character = updated
				log.Info("Applied character update from model", zap.Strings("keys", interpreted.Patch.Keys()))
			}
		} else {
			log.Info("Model issued a character update but the campaign has no character; skipping")
		}
	}

	assistantMsg, err := s.persistMessage(ctx, campaign.ID, models.RoleAssistant, interpreted.Text)
	if err != nil {
		return result, err
	}
	result.AssistantMessage = assistantMsg

	s.publishTurn(ctx, campaign, assistantMsg, result.Character != nil, result.Rolls)
	return result, nil
}

func (s *gameServiceImpl) persistMessage(ctx context.Context, campaignID uuid.UUID, role models.MessageRole, content string) (*models.Message, error) {
	msg := &models.Message{CampaignID: campaignID, Role: role, Content: content}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to persist %s message: %w", role, err)
	}
	return msg, nil
}

func (s *gameServiceImpl) publishTurn(ctx context.Context, campaign *models.Campaign, msg *models.Message, characterUpdated bool, rolls []models.DiceRoll) {
	if s.publisher == nil {
		return
	}
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	event := models.TurnCompletedEvent{
		CampaignID:       campaign.ID,
		UserID:           campaign.UserID,
		MessageID:        msg.ID,
		Role:             msg.Role,
		CharacterUpdated: characterUpdated,
		Rolls:            rolls,
		CreatedAt:        createdAt,
	}
	if err := s.publisher.PublishTurnCompleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish turn event",
			zap.String("campaignID", campaign.ID.String()),
			zap.String("messageID", msg.ID.String()),
			zap.Error(err),
		)
	}
}
