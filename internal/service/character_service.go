package service

import (
	"context"
	"fmt"
	"strings"

	"dm-server/internal/dice"
	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateCharacterInput - лист персонажа из мастера создания. Нулевые характеристики получают значения по умолчанию.
type CreateCharacterInput struct {
	Name       string
	Race       string
	Class      string
	Alignment  string
	Background string
	Level      int

	HP    int
	MaxHP int
	// AC == nil - класс брони 10. Ноль и отрицательные значения допустимы (нисходящий AC).
	AC *int

	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int

	// GP == nil - стартовый кошелек бросается на сервере.
	GP        *int
	Inventory string
}

// CharacterService - управление персонажами пользователя.
type CharacterService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Character, error)
	Get(ctx context.Context, userID, characterID uuid.UUID) (*models.Character, error)
	Create(ctx context.Context, userID uuid.UUID, in CreateCharacterInput) (*models.Character, error)
	Delete(ctx context.Context, userID, characterID uuid.UUID) error
}

type characterServiceImpl struct {
	characters interfaces.CharacterRepository
	roller     dice.Roller
	logger     *zap.Logger
}

// NewCharacterService creates a new instance of CharacterService.
func NewCharacterService(characters interfaces.CharacterRepository, roller dice.Roller, logger *zap.Logger) CharacterService {
	return &characterServiceImpl{
		characters: characters,
		roller:     roller,
		logger:     logger.Named("CharacterService"),
	}
}

func (s *characterServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]models.Character, error) {
	return s.characters.ListByUser(ctx, userID)
}

func (s *characterServiceImpl) Get(ctx context.Context, userID, characterID uuid.UUID) (*models.Character, error) {
	return s.characters.GetByID(ctx, userID, characterID)
}

func (s *characterServiceImpl) Create(ctx context.Context, userID uuid.UUID, in CreateCharacterInput) (*models.Character, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: character name is required", models.ErrInvalidInput)
	}
	if in.HP < 0 || in.MaxHP < 0 || in.Level < 0 {
		return nil, fmt.Errorf("%w: hp, maxHp and level must not be negative", models.ErrInvalidInput)
	}

	c := &models.Character{
		UserID:       userID,
		Name:         name,
		Race:         in.Race,
		Class:        in.Class,
		Alignment:    in.Alignment,
		Background:   in.Background,
		Level:        positiveOr(in.Level, 1),
		MaxHP:        positiveOr(in.MaxHP, positiveOr(in.HP, 1)),
		AC:           10,
		Strength:     positiveOr(in.Strength, 10),
		Dexterity:    positiveOr(in.Dexterity, 10),
		Constitution: positiveOr(in.Constitution, 10),
		Intelligence: positiveOr(in.Intelligence, 10),
		Wisdom:       positiveOr(in.Wisdom, 10),
		Charisma:     positiveOr(in.Charisma, 10),
		Inventory:    in.Inventory,
	}
	c.HP = positiveOr(in.HP, c.MaxHP)
	if in.AC != nil {
		c.AC = *in.AC
	}

	if in.GP != nil {
		c.GP = *in.GP
	} else {
		c.GP = StartingGold(s.roller)
	}

	if err := s.characters.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *characterServiceImpl) Delete(ctx context.Context, userID, characterID uuid.UUID) error {
	return s.characters.Delete(ctx, userID, characterID)
}

// StartingGold - стартовый кошелек нового персонажа, равномерно в [50, 149] gp.
func StartingGold(r dice.Roller) int {
	return r.Roll(100) + 49
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
