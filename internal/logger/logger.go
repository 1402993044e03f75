package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config содержит настройки для логгера.
type Config struct {
	Level       string // debug, info, warn, error
	Encoding    string // json или console
	OutputPath  string // пусто - stdout
	Service     string // попадает в каждую запись полем "service"
	Development bool   // добавляет caller к записям
}

// redactedKeys - поля, значения которых никогда не пишутся в лог.
var redactedKeys = map[string]struct{}{
	"apikey":        {},
	"api_key":       {},
	"authorization": {},
	"token":         {},
	"password":      {},
	"secret":        {},
}

const redactedValue = "[REDACTED]"

// New создает zap.Logger по конфигурации.
// Неизвестный уровень не считается ошибкой: используется info, и логгер сам сообщает об этом.
func New(cfg Config) (*zap.Logger, error) {
	levelText := strings.ToLower(strings.TrimSpace(cfg.Level))
	if levelText == "" {
		levelText = "info"
	}
	lvl, levelErr := zapcore.ParseLevel(levelText)
	if levelErr != nil {
		lvl = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoding := strings.ToLower(cfg.Encoding)
	if encoding != "console" {
		encoding = "json"
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = "stdout"
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Development:       cfg.Development,
		DisableCaller:     !cfg.Development,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{outputPath},
		ErrorOutputPaths:  []string{"stderr"},
	}
	if cfg.Service != "" {
		zapConfig.InitialFields = map[string]interface{}{"service": cfg.Service}
	}

	logger, err := zapConfig.Build(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return NewRedactingCore(core)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if levelErr != nil {
		logger.Warn("Invalid log level, using info", zap.String("level", cfg.Level))
	}
	return logger, nil
}

// redactingCore заменяет значения полей с учетными данными на "[REDACTED]".
type redactingCore struct {
	zapcore.Core
}

// NewRedactingCore оборачивает core так, что ключи API, токены и пароли не попадают в вывод.
func NewRedactingCore(core zapcore.Core) zapcore.Core {
	return &redactingCore{Core: core}
}

func (c *redactingCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactingCore{Core: c.Core.With(redact(fields))}
}

func (c *redactingCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *redactingCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, redact(fields))
}

func redact(fields []zapcore.Field) []zapcore.Field {
	var out []zapcore.Field
	for i, f := range fields {
		if _, ok := redactedKeys[strings.ToLower(f.Key)]; !ok {
			continue
		}
		if out == nil {
			out = make([]zapcore.Field, len(fields))
			copy(out, fields)
		}
		out[i] = zap.String(f.Key, redactedValue)
	}
	if out == nil {
		return fields
	}
	return out
}
