package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/quotebook/internal/audit"
	"github.com/mrlokans/quotebook/internal/database"
	"github.com/mrlokans/quotebook/internal/exporters"
	"github.com/mrlokans/quotebook/internal/http"
	"github.com/mrlokans/quotebook/internal/importers"
	"github.com/mrlokans/quotebook/internal/notify"
	"github.com/mrlokans/quotebook/internal/quotebook"
	"github.com/mrlokans/quotebook/internal/remote"
	"github.com/mrlokans/quotebook/internal/scheduler"
	"github.com/mrlokans/quotebook/internal/settingsstore"
	"github.com/mrlokans/quotebook/internal/storage"
	"github.com/mrlokans/quotebook/internal/tasks"
)

// =============================================================================
// Storage Adapter
// =============================================================================

var _ storage.SettingsBackend = (*database.Database)(nil)
var _ storage.Store = (*storage.PersistentStore)(nil)
var _ storage.Store = (*storage.SessionStore)(nil)
var _ storage.Store = (*storage.MemoryStore)(nil)

// =============================================================================
// Import / Export
// =============================================================================

var _ importers.Sink = (*quotebook.Store)(nil)
var _ importers.Archiver = (*audit.Auditor)(nil)
var _ exporters.QuoteSource = (*quotebook.Store)(nil)

// =============================================================================
// Sync Engine
// =============================================================================

var _ scheduler.Fetcher = (*remote.Client)(nil)
var _ scheduler.Merger = (*quotebook.Store)(nil)
var _ scheduler.Notifier = (*notify.Notifier)(nil)
var _ scheduler.StatusRecorder = (*settingsstore.SettingsStore)(nil)

// =============================================================================
// Publishing
// =============================================================================

var _ tasks.Publisher = (*remote.Client)(nil)
var _ tasks.Notifier = (*notify.Notifier)(nil)

// =============================================================================
// HTTP surface
// =============================================================================

var _ http.QuoteImporter = (*importers.Pipeline)(nil)
var _ http.QuoteExporter = (*exporters.Exporter)(nil)
var _ http.Notifier = (*notify.Notifier)(nil)
var _ http.SyncRunner = (*scheduler.QuoteSyncScheduler)(nil)
var _ http.SyncStatusReader = (*settingsstore.SettingsStore)(nil)
var _ http.QuoteEnqueuer = (*tasks.QuotePublisher)(nil)
var _ http.TaskStatusReader = (*tasks.Client)(nil)
var _ http.HealthChecker = (*database.Database)(nil)
