package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// snapshot is a single key/value row in the local database file.
type snapshot struct {
	Key       string `gorm:"primaryKey;type:varchar(100)"`
	Value     []byte
	UpdatedAt time.Time
}

// SQLite is a Store persisted to a local database file, the durable default
// for a single machine.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database file at path and
// ensures the snapshot table exists.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store at %s: %w", path, err)
	}

	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite store: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Get reads the snapshot stored under key.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var row snapshot
	err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %q: %w", key, err)
	}
	return row.Value, nil
}

// Set upserts the snapshot under key.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	row := snapshot{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database file.
func (s *SQLite) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
