package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadAndSave())
	}

	router.SetHTMLTemplate(templates)

	health := NewHealthController(cfg.Database, cfg.Version)
	quotes := NewQuotesController(cfg.Book, cfg.Notifier, cfg.Publisher)
	transfer := NewTransferController(cfg.Importer, cfg.Exporter, cfg.Notifier)
	syncController := NewSyncController(cfg.Syncer, cfg.SyncStatus, cfg.Notifier, cfg.SyncSchedule)
	notifications := NewNotificationsController(cfg.Notifier)
	ui := NewUIController(cfg.Book, cfg.Notifier, syncController, cfg.Version)

	router.GET("/health", health.Status)

	// Page and form endpoints
	router.GET("/", ui.Index)
	router.POST("/quotes", quotes.AddForm)
	router.POST("/filter", quotes.FilterForm)
	router.POST("/random", quotes.RandomForm)
	router.POST("/import", transfer.ImportForm)
	router.POST("/sync", syncController.SyncForm)

	api := router.Group("/api")
	{
		api.GET("/quotes", quotes.List)
		api.POST("/quotes", quotes.Create)
		api.GET("/quotes/random", quotes.Random)

		api.GET("/categories", quotes.Categories)
		api.PUT("/categories/selected", quotes.SelectCategory)

		api.GET("/export", transfer.Export)
		api.POST("/import", transfer.ImportAPI)

		api.POST("/sync", syncController.SyncAPI)
		api.GET("/sync/status", syncController.Status)

		api.GET("/notifications", notifications.List)

		if cfg.TaskStatus != nil {
			tasksController := NewTasksController(cfg.TaskStatus)
			api.GET("/tasks/:id", tasksController.GetTaskStatus)
		}
	}

	return router
}
