package main

import (
	"time"

	"dm-server/internal/config"
	"dm-server/internal/handler"
	"dm-server/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// newRouter собирает gin.Engine: логирование, recovery, CORS, метрики и маршруты API.
func newRouter(cfg *config.Config, gameHandler *handler.GameHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.GinZapLogger(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Gin фиксирует цепочку middleware при регистрации маршрута,
	// поэтому Prometheus подключается до RegisterRoutes.
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	gameHandler.RegisterRoutes(router)
	return router
}
