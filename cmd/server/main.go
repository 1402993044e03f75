package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dm-server/internal/ai"
	"dm-server/internal/authutils"
	"dm-server/internal/config"
	"dm-server/internal/database"
	"dm-server/internal/dice"
	"dm-server/internal/handler"
	"dm-server/internal/interfaces"
	"dm-server/internal/logger"
	"dm-server/internal/messaging"
	"dm-server/internal/service"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	log.Println("Starting DM Server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		Service:     "dm-server",
		Development: cfg.Env == "development",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	zap.ReplaceGlobals(zapLogger)
	cfg.LogSummary(zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- PostgreSQL ---
	dbPool, err := database.NewPool(ctx, database.PoolConfig{
		DSN:         cfg.GetDSN(),
		MaxConns:    cfg.DBMaxConns,
		IdleTimeout: cfg.DBIdleTimeout,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if err := database.NewMigrator(dbPool, zapLogger).Up(ctx); err != nil {
		zapLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// --- Redis (опционально) ---
	var tokenRepo interfaces.TokenRepository
	if cfg.RedisAddr != "" {
		redisClient, err := setupRedis(ctx, cfg, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		tokenRepo = database.NewRedisTokenRepository(redisClient, zapLogger)
	} else {
		zapLogger.Warn("REDIS_ADDR not set, access token revocation is not checked")
	}

	// --- RabbitMQ (опционально) ---
	var publisher interfaces.TurnEventPublisher = messaging.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		rabbitConn, err := connectRabbitMQ(ctx, cfg.RabbitMQURL, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer rabbitConn.Close()
		turnPublisher, err := messaging.NewRabbitMQTurnPublisher(rabbitConn, cfg.TurnEventsQueue)
		if err != nil {
			zapLogger.Fatal("Failed to create turn event publisher", zap.Error(err))
		}
		publisher = turnPublisher
	} else {
		zapLogger.Info("RABBITMQ_URL not set, turn events are not published")
	}
	defer publisher.Close()

	// --- Языковая модель ---
	invoker, err := ai.NewInvoker(ai.ClientConfig{
		Provider: cfg.AIProvider,
		BaseURL:  cfg.AIBaseURL,
		Timeout:  cfg.AITimeout,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create model client", zap.Error(err))
	}
	var estimator *ai.TokenEstimator
	if cfg.AICountTokens {
		estimator = ai.NewTokenEstimator()
	}
	dispatcher := ai.NewDispatcher(invoker, ai.DispatcherConfig{
		DefaultModel:    cfg.AIDefaultModel,
		MaxOutputTokens: cfg.AIMaxOutputTokens,
		Timeout:         cfg.AITimeout,
		FallbackAPIKey:  cfg.AIAPIKey,
	}, estimator, zapLogger)

	// --- Сервисы ---
	campaignRepo := database.NewPgCampaignRepository(dbPool, zapLogger)
	characterRepo := database.NewPgCharacterRepository(dbPool, zapLogger)
	messageRepo := database.NewPgMessageRepository(dbPool, zapLogger)
	roller := dice.NewRoller()

	gameService := service.NewGameService(campaignRepo, characterRepo, messageRepo, dispatcher, roller, publisher, zapLogger)
	campaignService := service.NewCampaignService(campaignRepo, characterRepo, dispatcher.DefaultModel(), zapLogger)
	characterService := service.NewCharacterService(characterRepo, roller, zapLogger)

	verifier, err := authutils.NewJWTVerifier(cfg.JWTSecret, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create JWT verifier", zap.Error(err))
	}
	gameHandler := handler.NewGameHandler(gameService, campaignService, characterService, verifier.VerifyToken, tokenRepo, zapLogger)

	// --- HTTP (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}
	router := newRouter(cfg, gameHandler, zapLogger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
		// Ход может ждать модель дважды по AI_TIMEOUT.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.AITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("DM Server stopped")
}

func setupRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	logger.Info("Connected to Redis", zap.String("address", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return client, nil
}

func connectRabbitMQ(ctx context.Context, url string, logger *zap.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	maxRetries := 5
	retryDelay := 5 * time.Second
	for i := 0; i < maxRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			logger.Info("Connected to RabbitMQ")
			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, err
}
