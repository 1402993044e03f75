package interfaces

import (
	"context"

	"dm-server/internal/models"
)

// TurnEventPublisher публикует события о завершенных ходах.
type TurnEventPublisher interface {
	PublishTurnCompleted(ctx context.Context, event models.TurnCompletedEvent) error
	Close() error
}
