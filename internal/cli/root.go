// Package cli implements the quotebook command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrlokans/quotebook/internal/config"
	"github.com/mrlokans/quotebook/internal/entrypoint"
	"github.com/mrlokans/quotebook/internal/logging"
)

// NewRootCommand builds the quotebook command tree. Running it without a
// subcommand starts the web server.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	serve := NewServeCommand(cfg, version)

	root := &cobra.Command{
		Use:   "quotebook",
		Short: "Quote book with categories, import/export and server sync",
		Long: `Quotebook keeps a list of quotes grouped by category.

Run without arguments to start the web interface. The other commands work on
the same database directly.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cfg.Log.Level, cmd.ErrOrStderr())
		},
		RunE: serve.RunE,
	}

	root.PersistentFlags().StringVar(&cfg.Database.Path, "db", cfg.Database.Path, "Path to the database file")
	root.PersistentFlags().StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")

	root.AddCommand(
		serve,
		NewAddCommand(cfg).Command(),
		NewRandomCommand(cfg).Command(),
		NewCategoriesCommand(cfg).Command(),
		NewExportCommand(cfg).Command(),
		NewImportCommand(cfg).Command(),
		NewSyncCommand(cfg).Command(),
	)
	return root
}

// NewServeCommand starts the HTTP server.
func NewServeCommand(cfg *config.Config, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default if no command given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(cfg, version)
		},
	}
}

// withApp opens the quote book for one command and closes it afterwards.
func withApp(ctx context.Context, cfg *config.Config, fn func(app *entrypoint.App) error) error {
	app, err := entrypoint.NewApp(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	return fn(app)
}
