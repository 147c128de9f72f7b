package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Audit
		Log
		Sync
		Publish
		Notifications
		Session
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Audit struct {
		Dir string // Uploaded import files are archived here
	}
	Log struct {
		Level string // debug, info, warn, error
	}
	Sync struct {
		Enabled  bool
		Schedule string // Cron spec or descriptor: "@every 20s"
		URL      string
		Timeout  time.Duration
	}
	Publish struct {
		Enabled bool
		URL     string
	}
	Notifications struct {
		TTL time.Duration
	}
	Session struct {
		Secret        string
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("log_level", "info")

	// Sync defaults
	v.SetDefault("sync_enabled", true)
	v.SetDefault("sync_schedule", DefaultSyncSchedule)
	v.SetDefault("sync_url", DefaultSyncURL)
	v.SetDefault("sync_timeout", "30s")

	// Publishing new quotes to the remote collection
	v.SetDefault("publish_enabled", true)
	v.SetDefault("publish_url", DefaultPublishURL)

	v.SetDefault("notification_ttl", "5s")

	// Session defaults
	v.SetDefault("session_secret", "") // Auto-generated if empty
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Log: Log{
			Level: v.GetString("LOG_LEVEL"),
		},
		Sync: Sync{
			Enabled:  v.GetBool("SYNC_ENABLED"),
			Schedule: v.GetString("SYNC_SCHEDULE"),
			URL:      v.GetString("SYNC_URL"),
			Timeout:  v.GetDuration("SYNC_TIMEOUT"),
		},
		Publish: Publish{
			Enabled: v.GetBool("PUBLISH_ENABLED"),
			URL:     v.GetString("PUBLISH_URL"),
		},
		Notifications: Notifications{
			TTL: v.GetDuration("NOTIFICATION_TTL"),
		},
		Session: Session{
			Secret:        v.GetString("SESSION_SECRET"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
