package snapshot

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Store is the durable blob backend the engine snapshots into. Save
// replaces the current blob; Load returns (nil, nil) when no snapshot has
// ever been written, which callers treat as valid empty state.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Driver() string
}

// Open selects a blob backend by driver name. Connections are owned by the
// caller; memory needs neither.
//
//	redis:    single key in Redis (default)
//	postgres: append-only snapshots table, latest row wins
//	memory:   process-local, tests and ephemeral runs
func Open(driver, key string, db *gorm.DB, rdb *redis.Client) (Store, error) {
	switch driver {
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis snapshot driver requires a redis connection")
		}
		return NewRedisStore(rdb, key), nil
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres snapshot driver requires a database connection")
		}
		return NewPostgresStore(db, key)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown snapshot driver %s", driver)
	}
}
