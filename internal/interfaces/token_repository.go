package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// TokenRepository - проверка, что access-токен не отозван.
// Токены выпускает внешний сервис авторизации, здесь только чтение.
type TokenRepository interface {
	// GetUserIDByAccessUUID возвращает владельца токена по его jti.
	// Возвращает models.ErrTokenNotFound, если токен отозван или истек.
	GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error)
}
