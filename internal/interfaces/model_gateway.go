package interfaces

import (
	"context"

	"dm-server/internal/ai"
	"dm-server/internal/models"
)

// ModelGateway - вызов языковой модели с проверкой ключа и повтором на модели по умолчанию.
// Реализуется ai.Dispatcher.
type ModelGateway interface {
	ResolveCredential(supplied string) (string, error)
	DefaultModel() string
	Complete(ctx context.Context, model string, prompt models.Prompt, credential string) (ai.Completion, error)
}

var _ ModelGateway = (*ai.Dispatcher)(nil)
