package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SnapshotRecord is one persisted blob row. Rows are append-only: the
// newest row for a key is the current snapshot, older rows form a retained
// archive that operators can inspect or restore from manually.
type SnapshotRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"not null;index"`
	Payload   []byte    `json:"payload" gorm:"type:bytea;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (SnapshotRecord) TableName() string { return "snapshots" }

// historyLimit caps archived rows per key; the oldest rows are pruned on
// save once the cap is exceeded.
const historyLimit = 50

// PostgresStore persists snapshot blobs in a relational table
type PostgresStore struct {
	db  *gorm.DB
	key string
}

func NewPostgresStore(db *gorm.DB, key string) (*PostgresStore, error) {
	if err := db.AutoMigrate(&SnapshotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshots table: %w", err)
	}
	return &PostgresStore{db: db, key: key}, nil
}

func (s *PostgresStore) Save(ctx context.Context, data []byte) error {
	record := SnapshotRecord{Key: s.key, Payload: data}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to write snapshot row: %w", err)
	}
	return s.prune(ctx)
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var record SnapshotRecord
	err := s.db.WithContext(ctx).
		Where("key = ?", s.key).
		Order("id DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot row: %w", err)
	}
	return record.Payload, nil
}

// History returns archived snapshot rows, newest first, payloads included
func (s *PostgresStore) History(ctx context.Context, limit int) ([]SnapshotRecord, error) {
	var records []SnapshotRecord
	err := s.db.WithContext(ctx).
		Where("key = ?", s.key).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (s *PostgresStore) prune(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec(`
		DELETE FROM snapshots
		WHERE key = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE key = ? ORDER BY id DESC LIMIT ?
		)
	`, s.key, s.key, historyLimit).Error
}

func (s *PostgresStore) Driver() string { return "postgres" }
