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

const (
	// DefaultModel - недорогая модель по умолчанию и цель единственного повтора.
	DefaultModel = "claude-haiku-4-5-20251001"
	// DefaultMaxOutputTokens - потолок длины ответа.
	DefaultMaxOutputTokens = 1024
	// DefaultTimeout - предел одной попытки вызова модели.
	DefaultTimeout = 60 * time.Second
)

// DispatcherConfig передается явно при создании, глобальных настроек нет.
type DispatcherConfig struct {
	DefaultModel    string
	MaxOutputTokens int
	Timeout         time.Duration
	// FallbackAPIKey используется, если вызывающий не передал свой ключ.
	FallbackAPIKey string
}

// Completion - успешный ответ модели.
type Completion struct {
	Text     string
	Model    string
	FellBack bool
	Usage    UsageInfo
}

// Dispatcher вызывает модель с политикой одного повтора на модели по умолчанию.
type Dispatcher struct {
	invoker   Invoker
	cfg       DispatcherConfig
	estimator *TokenEstimator
	logger    *zap.Logger
}

// NewDispatcher создает диспетчер. estimator может быть nil: тогда оценка промпта не считается.
func NewDispatcher(invoker Invoker, cfg DispatcherConfig, estimator *TokenEstimator, logger *zap.Logger) *Dispatcher {
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Dispatcher{
		invoker:   invoker,
		cfg:       cfg,
		estimator: estimator,
		logger:    logger.Named("AIDispatcher"),
	}
}

// DefaultModel возвращает идентификатор модели по умолчанию.
func (d *Dispatcher) DefaultModel() string {
	return d.cfg.DefaultModel
}

// ResolveCredential выбирает ключ: переданный вызывающим или настроенный резервный.
// Без ключа возвращает models.ErrAuthenticationMissing. Сеть не трогает.
func (d *Dispatcher) ResolveCredential(supplied string) (string, error) {
	if key := strings.TrimSpace(supplied); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(d.cfg.FallbackAPIKey); key != "" {
		return key, nil
	}
	aiCredentialMissingTotal.Inc()
	return "", models.ErrAuthenticationMissing
}

// Complete вызывает модель model (пустая строка - модель по умолчанию).
// При любой ошибке, кроме отмены контекста вызывающего, и если model не модель по умолчанию,
// делается ровно одна повторная попытка на модели по умолчанию с тем же промптом.
// Итоговый отказ оборачивает models.ErrModelUnavailable.
func (d *Dispatcher) Complete(ctx context.Context, model string, p models.Prompt, credential string) (Completion, error) {
	if credential == "" {
		return Completion{}, models.ErrAuthenticationMissing
	}
	if model == "" {
		model = d.cfg.DefaultModel
	}
	d.estimate(p)

	resp, err := d.attempt(ctx, model, p, credential)
	if err == nil {
		return Completion{Text: resp.Text, Model: model, Usage: resp.Usage}, nil
	}

	if ctx.Err() != nil {
		d.logger.Warn("Model call aborted by caller context", zap.String("model", model), zap.Error(ctx.Err()))
		return Completion{}, fmt.Errorf("%w: %v", models.ErrModelUnavailable, ctx.Err())
	}
	if model == d.cfg.DefaultModel {
		d.logger.Error("Default model failed, no fallback left", zap.String("model", model), zap.Error(err))
		return Completion{}, fmt.Errorf("%w: %v", models.ErrModelUnavailable, err)
	}

	d.logger.Warn("Model failed, attempting fallback",
		zap.String("model", model),
		zap.String("fallback_model", d.cfg.DefaultModel),
		zap.Error(err),
	)
	resp, fbErr := d.attempt(ctx, d.cfg.DefaultModel, p, credential)
	if fbErr != nil {
		aiFallbacksTotal.WithLabelValues(model, "error").Inc()
		d.logger.Error("Fallback model failed", zap.String("fallback_model", d.cfg.DefaultModel), zap.Error(fbErr))
		return Completion{}, fmt.Errorf("%w: %v (fallback: %v)", models.ErrModelUnavailable, err, fbErr)
	}
	aiFallbacksTotal.WithLabelValues(model, "success").Inc()
	return Completion{Text: resp.Text, Model: d.cfg.DefaultModel, FellBack: true, Usage: resp.Usage}, nil
}

func (d *Dispatcher) attempt(ctx context.Context, model string, p models.Prompt, credential string) (Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	resp, err := d.invoker.Invoke(attemptCtx, Request{
		Model:     model,
		System:    p.System,
		Turns:     p.Turns,
		MaxTokens: d.cfg.MaxOutputTokens,
		APIKey:    credential,
	})
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return Response{}, fmt.Errorf("model call timed out after %s: %w", d.cfg.Timeout, err)
		}
		return Response{}, err
	}
	return resp, nil
}

func (d *Dispatcher) estimate(p models.Prompt) {
	if d.estimator == nil {
		return
	}
	n, err := d.estimator.Count(p)
	if err != nil {
		d.logger.Debug("Token estimate unavailable", zap.Error(err))
		return
	}
	aiPromptTokensEstimated.Observe(float64(n))
}
