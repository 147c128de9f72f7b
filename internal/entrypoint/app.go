package entrypoint

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mrlokans/quotebook/internal/audit"
	"github.com/mrlokans/quotebook/internal/config"
	"github.com/mrlokans/quotebook/internal/database"
	"github.com/mrlokans/quotebook/internal/exporters"
	"github.com/mrlokans/quotebook/internal/importers"
	"github.com/mrlokans/quotebook/internal/notify"
	"github.com/mrlokans/quotebook/internal/quotebook"
	"github.com/mrlokans/quotebook/internal/remote"
	"github.com/mrlokans/quotebook/internal/scheduler"
	"github.com/mrlokans/quotebook/internal/session"
	"github.com/mrlokans/quotebook/internal/settingsstore"
	"github.com/mrlokans/quotebook/internal/storage"
)

// App holds the core components shared by the server and the CLI commands.
type App struct {
	Config   *config.Config
	DB       *database.Database
	Book     *quotebook.Book
	Notifier *notify.Notifier
	Remote   *remote.Client
	Settings *settingsstore.SettingsStore
	Importer *importers.Pipeline
	Exporter *exporters.Exporter
	Syncer   *scheduler.QuoteSyncScheduler

	// Sessions is nil for CLI use, where one process is one session.
	Sessions *session.Manager
}

// NewApp opens the database and builds the quote book on top of it. With
// browserSessions the last-shown quote is tracked per browser session;
// otherwise it lives in memory for the life of the process.
func NewApp(ctx context.Context, cfg *config.Config, browserSessions bool) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: db}

	var sessionStore storage.Store = storage.NewMemoryStore()
	if browserSessions {
		sqlDB, err := db.DB.DB()
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to get SQL DB for sessions: %w", err)
		}
		app.Sessions, err = session.NewManager(sqlDB, cfg.Session)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize session manager: %w", err)
		}
		sessionStore = storage.NewSessionStore(app.Sessions.SessionManager)
	}

	app.Book = quotebook.New(storage.NewPersistentStore(db), sessionStore)
	if err := app.Book.Load(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}
	log.Infof("Loaded %d quotes", app.Book.Store.Len())

	app.Notifier = notify.NewNotifier(cfg.Notifications.TTL, nil)
	app.Remote = remote.NewClient(cfg.Sync.URL, cfg.Publish.URL, remote.WithTimeout(cfg.Sync.Timeout))
	app.Settings = settingsstore.New(db)
	app.Importer = importers.NewPipeline(app.Book.Store, audit.NewAuditor(cfg.Audit.Dir))
	app.Exporter = exporters.NewExporter(app.Book.Store)
	app.Syncer = scheduler.NewQuoteSyncScheduler(cfg.Sync, app.Remote, app.Book.Store, app.Notifier, app.Settings)

	return app, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}
