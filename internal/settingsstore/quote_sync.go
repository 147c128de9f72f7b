package settingsstore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/quotebook/internal/entities"
)

const (
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// QuoteSyncStatus represents the outcome of the last poll
type QuoteSyncStatus struct {
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	Status     string     `json:"status,omitempty"`   // "success", "failed", ""
	Message    string     `json:"message,omitempty"`  // Notification text or error
	Inserted   int        `json:"inserted,omitempty"` // Quotes added by the last poll
}

// GetQuoteSyncStatus returns the last sync status. Missing keys leave the
// corresponding fields empty.
func (s *SettingsStore) GetQuoteSyncStatus(ctx context.Context) (QuoteSyncStatus, error) {
	status := QuoteSyncStatus{}

	lastAt, err := s.getValue(ctx, entities.SettingKeyQuoteSyncLastAt)
	if err != nil {
		return status, err
	}
	if ts, err := time.Parse(time.RFC3339, lastAt); err == nil {
		status.LastSyncAt = &ts
	}

	if status.Status, err = s.getValue(ctx, entities.SettingKeyQuoteSyncLastStatus); err != nil {
		return status, err
	}
	if status.Message, err = s.getValue(ctx, entities.SettingKeyQuoteSyncLastMessage); err != nil {
		return status, err
	}

	inserted, err := s.getValue(ctx, entities.SettingKeyQuoteSyncInserted)
	if err != nil {
		return status, err
	}
	if count, err := strconv.Atoi(inserted); err == nil {
		status.Inserted = count
	}

	return status, nil
}

// SetQuoteSyncStatus records the outcome of a poll at the given time
func (s *SettingsStore) SetQuoteSyncStatus(ctx context.Context, at time.Time, status, message string, inserted int) error {
	if err := s.db.SetSetting(ctx, entities.SettingKeyQuoteSyncLastAt, at.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	if err := s.db.SetSetting(ctx, entities.SettingKeyQuoteSyncLastStatus, status); err != nil {
		return err
	}
	if err := s.db.SetSetting(ctx, entities.SettingKeyQuoteSyncLastMessage, message); err != nil {
		return err
	}
	return s.db.SetSetting(ctx, entities.SettingKeyQuoteSyncInserted, strconv.Itoa(inserted))
}

// ScheduleParser accepts five-field cron specs and descriptors such as
// "@every 20s" or "@hourly".
var ScheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateCronSchedule validates a cron schedule string
func ValidateCronSchedule(schedule string) error {
	_, err := ScheduleParser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "@every 20s":
		return "Every 20 seconds"
	case "@every 1m", "* * * * *":
		return "Every minute"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "0 * * * *", "@hourly":
		return "Every hour at :00"
	case "0 0 * * *", "@daily", "@midnight":
		return "Daily at midnight"
	}
	if strings.HasPrefix(schedule, "@every ") {
		return "Every " + strings.TrimPrefix(schedule, "@every ")
	}
	return "Custom schedule: " + schedule
}

// GetNextRunTime calculates when the next sync will run based on the schedule
func GetNextRunTime(schedule string) (*time.Time, error) {
	sched, err := ScheduleParser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
