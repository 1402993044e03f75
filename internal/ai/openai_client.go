package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dm-server/internal/models"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// openAIClient реализует Invoker для OpenAI-совместимых API (OpenAI, OpenRouter и т.п.).
type openAIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func newOpenAIClient(cfg ClientConfig, logger *zap.Logger) *openAIClient {
	return &openAIClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("OpenAIClient"),
	}
}

func (c *openAIClient) Invoke(ctx context.Context, req Request) (Response, error) {
	if err := validateRequest(req); err != nil {
		return Response{}, err
	}

	openaiConfig := openaigo.DefaultConfig(req.APIKey)
	if c.baseURL != "" {
		openaiConfig.BaseURL = c.baseURL
	}
	openaiConfig.HTTPClient = c.httpClient
	client := openaigo.NewClientWithConfig(openaiConfig)

	messages := make([]openaigo.ChatCompletionMessage, 0, len(req.Turns)+1)
	messages = append(messages, openaigo.ChatCompletionMessage{
		Role:    openaigo.ChatMessageRoleSystem,
		Content: req.System,
	})
	for _, t := range req.Turns {
		role := openaigo.ChatMessageRoleAssistant
		if t.Role == models.ChatRoleUser {
			role = openaigo.ChatMessageRoleUser
		}
		messages = append(messages, openaigo.ChatCompletionMessage{Role: role, Content: t.Content})
	}

	startTime := time.Now()
	resp, err := client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:     req.Model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	})
	duration := time.Since(startTime)
	if err != nil {
		aiRequestsTotal.WithLabelValues(req.Model, "error").Inc()
		c.logger.Warn("OpenAI API error", zap.String("model", req.Model), zap.Duration("duration", duration), zap.Error(err))
		return Response{}, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		aiRequestsTotal.WithLabelValues(req.Model, "error_empty_response").Inc()
		return Response{}, fmt.Errorf("%w: empty response", ErrAIGenerationFailed)
	}

	aiRequestsTotal.WithLabelValues(req.Model, "success").Inc()
	aiRequestDuration.WithLabelValues(req.Model).Observe(duration.Seconds())
	usage := UsageInfo{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}
	observeUsage(req.Model, usage)

	return Response{Text: resp.Choices[0].Message.Content, Usage: usage}, nil
}
