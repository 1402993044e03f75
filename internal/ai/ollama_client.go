package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dm-server/internal/models"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// ollamaClient реализует Invoker через нативный API Ollama.
// Ключ запроса Ollama не использует.
type ollamaClient struct {
	client *api.Client
	logger *zap.Logger
}

func newOllamaClient(cfg ClientConfig, logger *zap.Logger) (*ollamaClient, error) {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/v1")
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Ollama base URL '%s': %w", baseURL, err)
	}
	return &ollamaClient{
		client: api.NewClient(parsedURL, &http.Client{Timeout: cfg.Timeout}),
		logger: logger.Named("OllamaClient"),
	}, nil
}

func (c *ollamaClient) Invoke(ctx context.Context, req Request) (Response, error) {
	if err := validateRequest(req); err != nil {
		return Response{}, err
	}

	messages := make([]api.Message, 0, len(req.Turns)+1)
	messages = append(messages, api.Message{Role: "system", Content: req.System})
	for _, t := range req.Turns {
		role := "assistant"
		if t.Role == models.ChatRoleUser {
			role = "user"
		}
		messages = append(messages, api.Message{Role: role, Content: t.Content})
	}

	stream := false
	chatReq := &api.ChatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]interface{}{
			"num_predict": req.MaxTokens,
		},
	}

	startTime := time.Now()
	var resp api.ChatResponse
	err := c.client.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	duration := time.Since(startTime)
	if err != nil {
		aiRequestsTotal.WithLabelValues(req.Model, "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Warn("Ollama API timeout", zap.String("model", req.Model), zap.Duration("duration", duration))
		} else {
			c.logger.Warn("Ollama API error", zap.String("model", req.Model), zap.Duration("duration", duration), zap.Error(err))
		}
		return Response{}, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	if strings.TrimSpace(resp.Message.Content) == "" {
		aiRequestsTotal.WithLabelValues(req.Model, "error_empty_response").Inc()
		return Response{}, fmt.Errorf("%w: empty response", ErrAIGenerationFailed)
	}

	aiRequestsTotal.WithLabelValues(req.Model, "success").Inc()
	aiRequestDuration.WithLabelValues(req.Model).Observe(duration.Seconds())
	usage := UsageInfo{
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
	}
	observeUsage(req.Model, usage)

	return Response{Text: resp.Message.Content, Usage: usage}, nil
}
