package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/crosstrain/exchange/internal/api/handlers"
	"github.com/crosstrain/exchange/internal/config"
	"github.com/crosstrain/exchange/internal/database"
	"github.com/crosstrain/exchange/internal/directory"
	"github.com/crosstrain/exchange/internal/exchange"
	"github.com/crosstrain/exchange/internal/health"
	"github.com/crosstrain/exchange/internal/identity"
	"github.com/crosstrain/exchange/internal/middleware"
	"github.com/crosstrain/exchange/internal/snapshot"
	"github.com/crosstrain/exchange/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	utils.InitLogger()
	logger := utils.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	// Only open the backends the snapshot driver needs
	dbConfig := &database.Config{LogLevel: os.Getenv("LOG_LEVEL")}
	switch cfg.Snapshot.Driver {
	case "redis":
		dbConfig.RedisURL = cfg.Redis.URL
	case "postgres":
		dbConfig.DatabaseURL = cfg.Database.URL
		dbConfig.RedisURL = cfg.Redis.URL
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize backend connections")
	}
	defer dbManager.Close()

	store, err := snapshot.Open(cfg.Snapshot.Driver, cfg.Snapshot.Key, dbManager.DB, dbManager.Redis)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open snapshot store")
	}

	resolver := identity.NewResolver()
	if cfg.Directory.BaseURL != "" {
		overlayRoster(cfg.Directory.BaseURL, resolver, logger)
	}

	engine := exchange.NewEngine(cfg, resolver, store, logger)

	restoreCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := engine.Restore(restoreCtx); err != nil {
		if exchange.IsCorruptState(err) {
			logger.WithError(err).Warn("Snapshot corrupt, starting with empty state")
		} else {
			cancel()
			logger.WithError(err).Fatal("Failed to restore snapshot")
		}
	}
	cancel()

	cache := database.NewCache(dbManager.Redis, logger)
	checker := health.NewChecker(dbManager, store, logger)

	router := setupRouter(engine, cache, checker, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting knowledge exchange server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}

	logger.Info("Server stopped")
}

func overlayRoster(baseURL string, resolver *identity.Resolver, logger *logrus.Logger) {
	client := directory.NewClient(baseURL, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	entries, err := client.FetchRosterWithRetry(ctx)
	if err != nil {
		logger.WithError(err).Warn("Staff directory unavailable, using built-in roster")
		return
	}

	resolver.Merge(entries)
	logger.WithField("entries", len(entries)).Info("Staff directory roster merged")
}

func setupRouter(engine *exchange.Engine, cache *database.Cache, checker *health.Checker, logger *logrus.Logger) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())

	rateLimiter := middleware.NewRateLimiter(120)
	router.Use(rateLimiter.RateLimit())

	patternHandler := handlers.NewPatternHandler(engine, cache, logger)
	requestHandler := handlers.NewRequestHandler(engine, cache, logger)
	sessionHandler := handlers.NewSessionHandler(engine, cache, logger)
	analyticsHandler := handlers.NewAnalyticsHandler(engine, cache, checker, logger)

	router.GET("/health", analyticsHandler.HandleHealth)

	api := router.Group("/api")
	{
		patterns := api.Group("/patterns")
		{
			patterns.POST("", patternHandler.HandleShare)
			patterns.GET("", patternHandler.HandleList)
			patterns.POST("/:id/adopt", patternHandler.HandleAdopt)
			patterns.POST("/:id/rate", patternHandler.HandleRateAdoption)
			patterns.POST("/:id/vote", patternHandler.HandleVote)
		}

		requests := api.Group("/requests")
		{
			requests.POST("", requestHandler.HandleSubmit)
			requests.GET("", requestHandler.HandleList)
			requests.POST("/:id/responses", requestHandler.HandleRespond)
			requests.POST("/:id/responses/:index/rate", requestHandler.HandleRateResponse)
		}

		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.HandleSchedule)
			sessions.GET("/upcoming", sessionHandler.HandleUpcoming)
		}

		api.GET("/analytics", analyticsHandler.HandleAnalytics)
		api.GET("/activity", analyticsHandler.HandleStaffActivity)
	}

	return router
}
