// Package database provides the durable key-value store that holds the
// serialized inventory, health profile and daily log collections.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/gorm"
)

// Collection keys, one per persisted collection.
const (
	KeyInventory     = "fridjy_inventory"
	KeyHealthProfile = "fridjy_health_profile"
	KeyHealthLogs    = "fridjy_health_logs"
)

// ErrNotFound is returned by Load when a key has never been saved.
var ErrNotFound = errors.New("collection not found")

// Store persists one raw serialized value per key.
type Store interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, raw string) error
}

type collectionRecord struct {
	Name      string `gorm:"primary_key"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (collectionRecord) TableName() string { return "collections" }

// SQLStore keeps collections in a SQL table through gorm.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps an opened database, see Open.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context, key string) (string, error) {
	var rec collectionRecord
	err := s.db.Where(collectionRecord{Name: key}).First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("database: load %s: %w", key, err)
	}
	return rec.Value, nil
}

func (s *SQLStore) Save(ctx context.Context, key, raw string) error {
	var rec collectionRecord
	err := s.db.Where(collectionRecord{Name: key}).
		Assign(collectionRecord{Value: raw}).
		FirstOrCreate(&rec).Error
	if err != nil {
		return fmt.Errorf("database: save %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// MemoryStore is a process-local Store, used by the "memory" driver and
// in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Save(ctx context.Context, key, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = raw
	return nil
}
