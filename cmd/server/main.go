package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"macro-news-bot/backend/ai"
	"macro-news-bot/backend/internal/models"
	"macro-news-bot/backend/internal/poller"
	"macro-news-bot/backend/internal/service"
	"macro-news-bot/backend/pkg/config"
	"macro-news-bot/backend/pkg/logger"
	"macro-news-bot/backend/pkg/router"
	"macro-news-bot/backend/pkg/upload"
)

func main() {
	cfg := config.New()

	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	log.Info("Starting application", "env", cfg.Server.Env)

	db, err := config.NewDB()
	if err != nil {
		log.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.User{}, &models.APIKey{}, &models.NewsMessage{}); err != nil {
		log.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}

	aiClient := ai.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
	uploads := upload.NewStore(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)

	r := router.New(db, aiClient, uploads, log)

	// Channel poller runs for the lifetime of the process
	pollCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()

	var fetcher *poller.ChannelFetcher
	if cfg.Discord.Token != "" && cfg.Discord.ChannelID != "" {
		fetcher, err = poller.NewChannelFetcher(cfg.Discord.Token, cfg.Discord.ChannelID)
		if err != nil {
			log.LogError(err, "Failed to connect to Discord")
			os.Exit(1)
		}
		defer fetcher.Close()

		newsService := service.NewNewsService(db)
		p := poller.New(fetcher, newsService, log, cfg.Discord.PollInterval)
		go p.Run(pollCtx)
	} else {
		log.Warn("DISCORD_TOKEN or DISCORD_CHANNEL_ID not set, poller disabled")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogError(err, "Server failed to start")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.LogError(err, "Server forced to shutdown")
	}

	log.Info("Server exited")
}
