package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/quotebook/internal/config"
	"github.com/mrlokans/quotebook/internal/entrypoint"
)

type SyncCommand struct {
	cfg *config.Config
}

func NewSyncCommand(cfg *config.Config) *SyncCommand {
	return &SyncCommand{cfg: cfg}
}

func (c *SyncCommand) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the latest quote from the server once",
		Args:  cobra.NoArgs,
		RunE:  c.Run,
	}
}

func (c *SyncCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, c.cfg, func(app *entrypoint.App) error {
		result, err := app.Syncer.SyncOnce(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", result.Message, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	})
}
