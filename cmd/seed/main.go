package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/crosstrain/exchange/internal/config"
	"github.com/crosstrain/exchange/internal/database"
	"github.com/crosstrain/exchange/internal/exchange"
	"github.com/crosstrain/exchange/internal/identity"
	"github.com/crosstrain/exchange/internal/models"
	"github.com/crosstrain/exchange/internal/seeder"
	"github.com/crosstrain/exchange/internal/snapshot"
	"github.com/crosstrain/exchange/pkg/utils"
)

var (
	dryRun  = flag.Bool("dry-run", false, "Print what would be seeded without writing anything")
	verbose = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	utils.InitLogger()
	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Info("Starting demo catalog seeder...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	store, cleanup, err := openStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open snapshot store")
	}
	defer cleanup()

	engine := exchange.NewEngine(cfg, identity.NewResolver(), store, logger)

	ctx := context.Background()
	if err := engine.Restore(ctx); err != nil {
		if exchange.IsCorruptState(err) {
			logger.WithError(err).Warn("Snapshot corrupt, seeding into empty state")
		} else {
			logger.WithError(err).Fatal("Failed to restore snapshot")
		}
	}

	if existing := engine.ListPatterns(models.PatternFilter{}); len(existing) > 0 && !*dryRun {
		logger.WithField("patterns", len(existing)).Info("Store already has patterns, skipping seed")
		return
	}

	bootstrap := seeder.NewBootstrap(engine, logger, *dryRun)
	if err := bootstrap.Run(ctx); err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}

	logger.Info("Demo catalog seeding completed successfully!")
}

// openStore opens only the backend the configured driver needs. Dry runs
// use the in-memory store so nothing connects out.
func openStore(cfg *config.Config, logger *logrus.Logger) (snapshot.Store, func(), error) {
	if *dryRun {
		return snapshot.NewMemoryStore(), func() {}, nil
	}

	dbConfig := &database.Config{LogLevel: os.Getenv("LOG_LEVEL")}
	switch cfg.Snapshot.Driver {
	case "redis":
		dbConfig.RedisURL = cfg.Redis.URL
	case "postgres":
		dbConfig.DatabaseURL = cfg.Database.URL
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		return nil, nil, err
	}

	store, err := snapshot.Open(cfg.Snapshot.Driver, cfg.Snapshot.Key, dbManager.DB, dbManager.Redis)
	if err != nil {
		dbManager.Close()
		return nil, nil, err
	}

	return store, func() { dbManager.Close() }, nil
}
