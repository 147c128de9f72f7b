// Package settingsstore reads and writes the typed values kept in the
// settings table next to the quote list, such as the last sync outcome.
package settingsstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/quotebook/internal/database"
)

type SettingsStore struct {
	db *database.Database
}

func New(db *database.Database) *SettingsStore {
	return &SettingsStore{db: db}
}

// getValue returns the stored value, or "" when the key is absent.
func (s *SettingsStore) getValue(ctx context.Context, key string) (string, error) {
	setting, err := s.db.GetSetting(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}
