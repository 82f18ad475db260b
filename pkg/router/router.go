// Package router wires the HTTP surface together.
package router

import (
	"macro-news-bot/backend/ai"
	"macro-news-bot/backend/internal/api"
	"macro-news-bot/backend/internal/service"
	"macro-news-bot/backend/pkg/config"
	"macro-news-bot/backend/pkg/errors"
	"macro-news-bot/backend/pkg/logger"
	"macro-news-bot/backend/pkg/metrics"
	"macro-news-bot/backend/pkg/middleware"
	"macro-news-bot/backend/pkg/upload"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Router is the main router for the application
type Router struct {
	Engine *gin.Engine
	Logger *logger.Logger
}

// New creates the gin engine with the standard middleware stack
func New(db *gorm.DB, aiClient *ai.Client, uploads *upload.Store, log *logger.Logger) *Router {
	cfg := config.Get()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.Middleware(log))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())

	r := &Router{Engine: engine, Logger: log}
	r.setupRoutes(db, aiClient, uploads, cfg)
	return r
}

func (r *Router) setupRoutes(db *gorm.DB, aiClient *ai.Client, uploads *upload.Store, cfg *config.Config) {
	authService := service.NewAuthService(db)
	userService := service.NewUserService(db)
	newsService := service.NewNewsService(db)

	newsHandler := api.NewNewsHandler(newsService, authService)
	authHandler := api.NewAuthHandler(authService, r.Logger)
	userHandler := api.NewUserHandler(userService, uploads, r.Logger)
	aiHandler := api.NewAIHandler(aiClient)

	// Uploaded files are served as static content
	r.Engine.Static("/public", "./public")

	apiRoutes := r.Engine.Group("/api")
	{
		apiRoutes.POST("/news", newsHandler.ListNews)
		apiRoutes.POST("/login", authHandler.Login)
		apiRoutes.POST("/key", authHandler.ValidateKey)
		apiRoutes.POST("/user", userHandler.UpdateUser)
		apiRoutes.GET("/user", userHandler.GetUser)
		apiRoutes.GET("/health", api.HealthHandler(db))
	}

	// The provider bills per request; keep a per-client limiter on the proxy
	limiterOpts := middleware.DefaultRateLimiterOptions()
	limiterOpts.Limit = rate.Limit(cfg.AI.RateLimit)
	limiterOpts.Burst = cfg.AI.RateBurst
	rateLimiter := middleware.NewRateLimiter(r.Logger, limiterOpts)

	aiRoutes := r.Engine.Group("/api")
	aiRoutes.Use(rateLimiter.Middleware())
	{
		aiRoutes.POST("/macro", aiHandler.SummarizeMacro)
		aiRoutes.POST("/recommendation", aiHandler.RecommendInvestment)
	}

	r.Engine.GET("/metrics", metrics.Handler())
}
