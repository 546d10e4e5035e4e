package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager holds the backing connections. Either connection may be nil:
// only the backends named by the configured URLs are opened, so a
// memory-driver run needs neither Postgres nor Redis.
type Manager struct {
	DB     *gorm.DB
	Redis  *redis.Client
	logger *logrus.Logger
}

type Config struct {
	DatabaseURL string
	RedisURL    string
	LogLevel    string
}

// NewManager opens the configured connections with pooling and verifies
// each with a ping before returning.
func NewManager(config *Config, logger *logrus.Logger) (*Manager, error) {
	manager := &Manager{logger: logger}

	if config.DatabaseURL != "" {
		gormLogger := gormlogger.Default.LogMode(gormlogger.Silent)
		if config.LogLevel == "debug" {
			gormLogger = gormlogger.Default.LogMode(gormlogger.Info)
		}

		db, err := gorm.Open(postgres.Open(config.DatabaseURL), &gorm.Config{
			Logger:                 gormLogger,
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}

		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)

		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		manager.DB = db
	}

	if config.RedisURL != "" {
		redisOpts, err := redis.ParseURL(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}

		redisOpts.PoolSize = 20
		redisOpts.MinIdleConns = 5
		redisOpts.MaxConnAge = time.Hour
		redisOpts.IdleTimeout = 30 * time.Minute

		redisClient := redis.NewClient(redisOpts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		manager.Redis = redisClient
	}

	logger.WithFields(logrus.Fields{
		"postgres": manager.DB != nil,
		"redis":    manager.Redis != nil,
	}).Info("Backend connections established")

	return manager, nil
}

// Close closes all open connections
func (m *Manager) Close() error {
	if m.Redis != nil {
		if err := m.Redis.Close(); err != nil {
			m.logger.WithError(err).Error("Failed to close Redis connection")
		}
	}

	if m.DB != nil {
		sqlDB, err := m.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}

func (m *Manager) PingDatabase() error {
	if m.DB == nil {
		return nil
	}
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (m *Manager) PingRedis() error {
	if m.Redis == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Redis.Ping(ctx).Err()
}

// Cache stores derived read models in Redis so hot endpoints skip
// recomputation. Nil-client safe: every call degrades to a miss.
type Cache struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewCache(client *redis.Client, logger *logrus.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
	}
}

const (
	AnalyticsKey     = "exchange:analytics"
	StaffActivityKey = "exchange:activity"
)

func (c *Cache) CacheAnalytics(ctx context.Context, analytics interface{}, expiration time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(analytics)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics: %w", err)
	}

	return c.client.Set(ctx, AnalyticsKey, data, expiration).Err()
}

func (c *Cache) GetCachedAnalytics(ctx context.Context, result interface{}) error {
	if c.client == nil {
		return redis.Nil
	}

	data, err := c.client.Get(ctx, AnalyticsKey).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), result)
}

// InvalidateDerived drops cached read models after any mutation
func (c *Cache) InvalidateDerived(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, AnalyticsKey, StaffActivityKey).Err()
}

// IsCacheMiss reports whether a cache read failed because the key is absent
func IsCacheMiss(err error) bool {
	return err == redis.Nil
}
