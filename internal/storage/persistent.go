package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/quotebook/internal/entities"
)

// SettingsBackend is the subset of the database used by PersistentStore.
type SettingsBackend interface {
	GetSetting(ctx context.Context, key string) (*entities.Setting, error)
	SetSetting(ctx context.Context, key, value string) error
}

// PersistentStore keeps blobs in the settings table.
type PersistentStore struct {
	db SettingsBackend
}

func NewPersistentStore(db SettingsBackend) *PersistentStore {
	return &PersistentStore{db: db}
}

func (s *PersistentStore) Get(ctx context.Context, key string) ([]byte, error) {
	setting, err := s.db.GetSetting(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return []byte(setting.Value), nil
}

func (s *PersistentStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.db.SetSetting(ctx, key, string(value)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

var _ Store = (*PersistentStore)(nil)
