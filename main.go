package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/surveyhub/survey-service/internal/config"
	"github.com/surveyhub/survey-service/internal/events"
	"github.com/surveyhub/survey-service/internal/handlers"
	"github.com/surveyhub/survey-service/internal/repositories/postgres"
	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/validator"
	"github.com/surveyhub/survey-service/internal/utils"
	"github.com/surveyhub/survey-service/pkg"
)

// @title Survey Service API
// @version 1.0
// @description REST backend for creating and answering multiple-choice surveys
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	slogLogger := utils.NewJSONLogger(cfg.LogLevel)
	logger := utils.NewSlogLogger(slogLogger)

	logger.Info("Starting survey service",
		"environment", cfg.Environment,
		"port", cfg.Port)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", "error", err)
			redisClient = nil
		} else {
			logger.Info("Redis cache connected")
		}
	}

	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		logger.Error("Failed to initialize repositories", "error", err)
		os.Exit(1)
	}
	repo := repoManager.GetRepository()

	v := validator.New()

	var eventPublisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		eventPublisher, err = events.NewKafkaEventPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			logger.Error("Failed to connect Kafka publisher", "error", err)
			os.Exit(1)
		}
		logger.Info("Kafka event publisher connected", "brokers", cfg.KafkaBrokers)
	} else {
		eventPublisher = events.NewGoChannelEventPublisher(slogLogger)
		logger.Info("Using in-process event publisher")
	}

	serviceManager := services.NewServiceManager(repo, eventPublisher, slogLogger, v, services.TokenConfig{
		Secret:          cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	})

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	if err := serviceManager.Initialize(initCtx); err != nil {
		cancelInit()
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}
	cancelInit()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)

	handlerManager := handlers.NewHandlerManager(serviceManager, repo, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	if err := serviceManager.Shutdown(shutdownCtx); err != nil {
		logger.Error("Service shutdown failed", "error", err)
	}

	if err := repoManager.Shutdown(shutdownCtx); err != nil {
		logger.Error("Repository shutdown failed", "error", err)
	}

	logger.Info("Shutdown complete")
}
