package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/quotebook/internal/config"
	"github.com/mrlokans/quotebook/internal/entrypoint"
	"github.com/mrlokans/quotebook/internal/exporters"
)

type ExportCommand struct {
	Format string
	Output string

	cfg *config.Config
}

func NewExportCommand(cfg *config.Config) *ExportCommand {
	return &ExportCommand{cfg: cfg}
}

func (c *ExportCommand) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all quotes as JSON or markdown",
		Example: `  quotebook export --output quotes.json
  quotebook export --format md`,
		Args: cobra.NoArgs,
		RunE: c.Run,
	}
	cmd.Flags().StringVar(&c.Format, "format", string(exporters.FormatJSON), "Export format: json or md")
	cmd.Flags().StringVarP(&c.Output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func (c *ExportCommand) Run(cmd *cobra.Command, args []string) error {
	format, err := exporters.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	return withApp(cmd.Context(), c.cfg, func(app *entrypoint.App) error {
		doc, err := app.Exporter.Export(format)
		if err != nil {
			return err
		}

		if c.Output == "" {
			_, err := cmd.OutOrStdout().Write(doc.Data)
			return err
		}
		if err := os.WriteFile(c.Output, doc.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d quotes to %s\n", doc.Quotes, c.Output)
		return nil
	})
}

type ImportCommand struct {
	File string

	cfg *config.Config
}

func NewImportCommand(cfg *config.Config) *ImportCommand {
	return &ImportCommand{cfg: cfg}
}

func (c *ImportCommand) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import",
		Short:   "Import quotes from a JSON file",
		Example: `  quotebook import --file quotes.json`,
		Args:    cobra.NoArgs,
		RunE:    c.Run,
	}
	cmd.Flags().StringVarP(&c.File, "file", "f", "", "JSON file with an array of {text, category} objects (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *ImportCommand) Run(cmd *cobra.Command, args []string) error {
	contents, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	ctx := cmd.Context()
	return withApp(ctx, c.cfg, func(app *entrypoint.App) error {
		result, err := app.Importer.Import(ctx, contents)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Quotes imported successfully! (%d added, %d skipped, %d malformed)\n",
			result.Added, result.Skipped, result.Malformed)
		return nil
	})
}
