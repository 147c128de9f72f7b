package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/exporters"
	"github.com/mrlokans/quotebook/internal/importers"
	"github.com/mrlokans/quotebook/internal/quotebook"
	"github.com/mrlokans/quotebook/internal/scheduler"
	"github.com/mrlokans/quotebook/internal/session"
	"github.com/mrlokans/quotebook/internal/settingsstore"
)

// QuoteImporter loads an uploaded quote file.
type QuoteImporter interface {
	Import(ctx context.Context, contents []byte) (importers.Result, error)
}

// QuoteExporter renders the quote list for download.
type QuoteExporter interface {
	Export(format exporters.Format) (exporters.Document, error)
}

// Notifier records and lists the page banners.
type Notifier interface {
	Notify(level entities.NotificationLevel, message string) entities.Notification
	Active() []entities.Notification
}

// SyncRunner runs and reports on remote polls.
type SyncRunner interface {
	SyncOnce(ctx context.Context) (scheduler.SyncResult, error)
	RunNow() error
	IsRunning() bool
	IsSyncing() bool
	GetNextRunTime() *time.Time
}

// SyncStatusReader returns the persisted outcome of the last poll.
type SyncStatusReader interface {
	GetQuoteSyncStatus(ctx context.Context) (settingsstore.QuoteSyncStatus, error)
}

// QuoteEnqueuer schedules a new quote for publishing.
type QuoteEnqueuer interface {
	Enqueue(q entities.Quote) (string, error)
}

// TaskStatusReader reports on queued tasks.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// HealthChecker verifies storage connectivity.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Book     *quotebook.Book
	Importer QuoteImporter
	Exporter QuoteExporter
	Notifier Notifier

	// Remote sync (optional)
	Syncer       SyncRunner
	SyncStatus   SyncStatusReader
	SyncSchedule string

	// Publishing through the task queue (optional)
	Publisher  QuoteEnqueuer
	TaskStatus TaskStatusReader

	// Health checks
	Database HealthChecker

	// Sessions and CSRF (optional)
	SessionManager *session.Manager
	CSRFSecret     []byte
	SecureCookies  bool

	// Application info
	Version string
}
