package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dm-server/internal/models"

	"go.uber.org/zap"
)

// ErrAIGenerationFailed - ошибка отдельного обращения к провайдеру модели.
var ErrAIGenerationFailed = errors.New("AI generation failed")

// Провайдеры модели.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
)

// Request - один вызов модели: системная инструкция, история и потолок ответа.
type Request struct {
	Model     string
	System    string
	Turns     []models.ChatTurn
	MaxTokens int
	APIKey    string
}

// UsageInfo содержит информацию об использовании токенов.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
}

// Response - текст ответа модели и расход токенов.
type Response struct {
	Text  string
	Usage UsageInfo
}

// Invoker - синхронный вызов языковой модели без стриминга и без собственных повторов.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (Response, error)
}

// ClientConfig - параметры создания клиента провайдера.
type ClientConfig struct {
	Provider string
	BaseURL  string
	Timeout  time.Duration
}

// NewInvoker создает клиента для выбранного провайдера.
func NewInvoker(cfg ClientConfig, logger *zap.Logger) (Invoker, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderAnthropic:
		logger.Info("Using AI provider: Anthropic", zap.String("base_url", cfg.BaseURL))
		return newAnthropicClient(cfg, logger), nil
	case ProviderOpenAI:
		logger.Info("Using AI provider: OpenAI-compatible", zap.String("base_url", cfg.BaseURL))
		return newOpenAIClient(cfg, logger), nil
	case ProviderOllama:
		logger.Info("Using AI provider: Ollama", zap.String("base_url", cfg.BaseURL))
		return newOllamaClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider: '%s'", cfg.Provider)
	}
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.System) == "" {
		return fmt.Errorf("%w: system prompt is empty", ErrAIGenerationFailed)
	}
	if len(req.Turns) == 0 {
		return fmt.Errorf("%w: no turns to send", ErrAIGenerationFailed)
	}
	if req.Model == "" {
		return fmt.Errorf("%w: model is not set", ErrAIGenerationFailed)
	}
	return nil
}
