package interfaces

import (
	"context"

	"dm-server/internal/models"

	"github.com/google/uuid"
)

// CharacterRepository - хранилище листов персонажей.
type CharacterRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Character, error)
	GetByID(ctx context.Context, userID, characterID uuid.UUID) (*models.Character, error)
	Create(ctx context.Context, character *models.Character) error
	// Delete удаляет персонажа; кампании, ссылавшиеся на него, остаются без персонажа.
	Delete(ctx context.Context, userID, characterID uuid.UUID) error
	// ApplyPatch частично обновляет только поля из патча и возвращает запись целиком.
	// Пустой патч не пишет в БД и возвращает текущую запись.
	ApplyPatch(ctx context.Context, characterID uuid.UUID, patch *models.CharacterPatch) (*models.Character, error)
}
