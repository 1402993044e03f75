package config

import (
	"fmt"
	"time"

	"dm-server/internal/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Config содержит конфигурацию DM Server.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	Port        string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"dm"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	// Секрет, без envconfig тега
	DBPassword string `ignored:"true"`

	// Redis: проверка отзыва access-токенов. Пустой адрес отключает проверку.
	RedisAddr string `envconfig:"REDIS_ADDR"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	// RabbitMQ: события о ходах. Пустой URL включает no-op издателя.
	RabbitMQURL     string `envconfig:"RABBITMQ_URL"`
	TurnEventsQueue string `envconfig:"TURN_EVENTS_QUEUE" default:"dm_turn_events"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Языковая модель
	AIProvider        string        `envconfig:"AI_PROVIDER" default:"anthropic"`
	AIBaseURL         string        `envconfig:"AI_BASE_URL"`
	AIDefaultModel    string        `envconfig:"AI_DEFAULT_MODEL" default:"claude-haiku-4-5-20251001"`
	AIMaxOutputTokens int           `envconfig:"AI_MAX_OUTPUT_TOKENS" default:"1024"`
	AITimeout         time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	AICountTokens     bool          `envconfig:"AI_COUNT_TOKENS" default:"true"`
	// Резервный ключ модели, необязателен
	AIAPIKey string `ignored:"true"`

	JWTSecret string `ignored:"true"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// RedactedDSN - DSN без пароля, для логов.
func (c *Config) RedactedDSN() string {
	return fmt.Sprintf("postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из окружения (.env опционален) и секретов.
// db_password и jwt_secret обязательны, ai_api_key берется из файла или AI_API_KEY.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return load(true)
}

// LoadDatabaseConfig загружает только то, что нужно для подключения к БД (для CLI).
func LoadDatabaseConfig() (*Config, error) {
	_ = godotenv.Load()
	return load(false)
}

func load(full bool) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	var err error
	cfg.DBPassword, err = utils.ReadSecret("db_password")
	if err != nil {
		return nil, err
	}
	if !full {
		return &cfg, nil
	}

	cfg.JWTSecret, err = utils.ReadSecret("jwt_secret")
	if err != nil {
		return nil, err
	}
	cfg.AIAPIKey = utils.ReadOptionalSecret("ai_api_key", "AI_API_KEY")

	if cfg.AIMaxOutputTokens <= 0 {
		return nil, fmt.Errorf("AI_MAX_OUTPUT_TOKENS must be positive, got %d", cfg.AIMaxOutputTokens)
	}
	if cfg.AITimeout <= 0 {
		return nil, fmt.Errorf("AI_TIMEOUT must be positive, got %s", cfg.AITimeout)
	}
	return &cfg, nil
}

// LogSummary выводит загруженную конфигурацию без секретов.
func (c *Config) LogSummary(logger *zap.Logger) {
	logger.Info("Configuration loaded",
		zap.String("env", c.Env),
		zap.String("port", c.Port),
		zap.String("db", c.RedactedDSN()),
		zap.Int("db_max_conns", c.DBMaxConns),
		zap.Bool("redis_enabled", c.RedisAddr != ""),
		zap.Bool("rabbitmq_enabled", c.RabbitMQURL != ""),
		zap.String("turn_events_queue", c.TurnEventsQueue),
		zap.String("ai_provider", c.AIProvider),
		zap.String("ai_default_model", c.AIDefaultModel),
		zap.Duration("ai_timeout", c.AITimeout),
		zap.Bool("ai_fallback_key_present", c.AIAPIKey != ""),
	)
}
