package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/config"
	http_controllers "github.com/mrlokans/quotebook/internal/http"
	"github.com/mrlokans/quotebook/internal/logging"
	"github.com/mrlokans/quotebook/internal/session"
	"github.com/mrlokans/quotebook/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Infof("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}

// Run starts the web server with the sync scheduler and publish queue.
func Run(cfg *config.Config, version string) error {
	logging.Setup(cfg.Log.Level, nil)
	log.Infof("Starting Quotebook v%s", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := NewApp(ctx, cfg, true)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Errorf("Error closing database: %v", err)
		}
	}()

	if err := app.Syncer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start quote sync: %w", err)
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Errorf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewPublishQuoteQueue(app.Remote, app.Notifier))
		go taskClient.Start(ctx)
	}

	csrfSecret, generated, err := session.SecretBytes(cfg.Session.Secret)
	if err != nil {
		return fmt.Errorf("failed to generate CSRF secret: %w", err)
	}
	if generated {
		log.Infof("Generated session secret (set SESSION_SECRET to persist)")
	}

	routerCfg := http_controllers.RouterConfig{
		Book:           app.Book,
		Importer:       app.Importer,
		Exporter:       app.Exporter,
		Notifier:       app.Notifier,
		Syncer:         app.Syncer,
		SyncStatus:     app.Settings,
		SyncSchedule:   cfg.Sync.Schedule,
		Database:       app.DB,
		SessionManager: app.Sessions,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Session.SecureCookies,
		Version:        version,
	}
	if taskClient != nil {
		routerCfg.TaskStatus = taskClient
		if cfg.Publish.Enabled {
			routerCfg.Publisher = tasks.NewQuotePublisher(taskClient)
		} else {
			log.Infof("Publishing disabled: new quotes stay local")
		}
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		app.Syncer.Stop()
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		cancel()
	}

	return Serve(router, cfg, onShutdown)
}
