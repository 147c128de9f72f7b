package database

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/quotebook/internal/database/settings"
	"github.com/mrlokans/quotebook/internal/entities"
)

type Database struct {
	DB       *gorm.DB
	settings *settings.Repository
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath+"?_journal=WAL&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Setting{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Infof("Database initialized successfully at %s", dbPath)

	return &Database{
		DB:       db,
		settings: settings.NewRepository(db),
	}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the underlying connection is usable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) GetSetting(ctx context.Context, key string) (*entities.Setting, error) {
	return d.settings.GetSetting(ctx, key)
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	return d.settings.SetSetting(ctx, key, value)
}

func (d *Database) DeleteSetting(ctx context.Context, key string) error {
	return d.settings.DeleteSetting(ctx, key)
}
