package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dm-server/internal/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// anthropicClient реализует Invoker через Anthropic Messages API.
// Ключ приходит с каждым запросом, поэтому SDK-клиент создается на вызов.
type anthropicClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func newAnthropicClient(cfg ClientConfig, logger *zap.Logger) *anthropicClient {
	return &anthropicClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("AnthropicClient"),
	}
}

func (c *anthropicClient) Invoke(ctx context.Context, req Request) (Response, error) {
	if err := validateRequest(req); err != nil {
		return Response{}, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(req.APIKey),
		option.WithHTTPClient(c.httpClient),
		option.WithMaxRetries(0),
	}
	if c.baseURL != "" {
		opts = append(opts, option.WithBaseURL(c.baseURL))
	}
	client := anthropic.NewClient(opts...)

	messages := make([]anthropic.MessageParam, 0, len(req.Turns))
	for _, t := range req.Turns {
		block := anthropic.NewTextBlock(t.Content)
		if t.Role == models.ChatRoleUser {
			messages = append(messages, anthropic.NewUserMessage(block))
		} else {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		}
	}

	startTime := time.Now()
	c.logger.Debug("Sending request to Anthropic",
		zap.String("model", req.Model),
		zap.Int("system_bytes", len(req.System)),
		zap.Int("turns", len(req.Turns)),
	)

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(req.MaxTokens),
		System:    []anthropic.TextBlockParam{{Text: req.System}},
		Messages:  messages,
	})
	duration := time.Since(startTime)
	if err != nil {
		aiRequestsTotal.WithLabelValues(req.Model, "error").Inc()
		c.logger.Warn("Anthropic API error", zap.String("model", req.Model), zap.Duration("duration", duration), zap.Error(err))
		return Response{}, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		aiRequestsTotal.WithLabelValues(req.Model, "error_empty_response").Inc()
		return Response{}, fmt.Errorf("%w: empty response", ErrAIGenerationFailed)
	}

	aiRequestsTotal.WithLabelValues(req.Model, "success").Inc()
	aiRequestDuration.WithLabelValues(req.Model).Observe(duration.Seconds())
	usage := UsageInfo{
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
	}
	observeUsage(req.Model, usage)

	c.logger.Debug("Anthropic response received",
		zap.String("model", req.Model),
		zap.Duration("duration", duration),
		zap.Int("response_len", len(text)),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens),
	)
	return Response{Text: text, Usage: usage}, nil
}
