package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/quotebook/internal/config"
	"github.com/mrlokans/quotebook/internal/entrypoint"
	"github.com/mrlokans/quotebook/internal/quotebook"
)

type AddCommand struct {
	Text     string
	Category string
	Publish  bool

	cfg *config.Config
}

func NewAddCommand(cfg *config.Config) *AddCommand {
	return &AddCommand{cfg: cfg}
}

func (c *AddCommand) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a quote",
		Example: `  quotebook add --text "Stay hungry." --category Motivation
  quotebook add --text "Stay hungry." --category Motivation --publish`,
		Args: cobra.NoArgs,
		RunE: c.Run,
	}
	cmd.Flags().StringVar(&c.Text, "text", "", "Quote text (required)")
	cmd.Flags().StringVar(&c.Category, "category", "", "Quote category (required)")
	cmd.Flags().BoolVar(&c.Publish, "publish", false, "Also post the quote to the remote collection")
	return cmd
}

func (c *AddCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, c.cfg, func(app *entrypoint.App) error {
		quote, err := app.Book.Store.Add(ctx, c.Text, c.Category)
		if err != nil {
			if errors.Is(err, quotebook.ErrValidation) {
				return fmt.Errorf("Please enter both quote and category: %w", err) //nolint:staticcheck // user-facing message
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Quote added successfully!")

		if c.Publish {
			post, err := app.Remote.PublishQuote(ctx, quote)
			if err != nil {
				return fmt.Errorf("Failed to post quote to server: %w", err) //nolint:staticcheck // user-facing message
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Quote posted to server (id %d).\n", post.ID)
		}
		return nil
	})
}

type RandomCommand struct {
	Category string

	cfg *config.Config
}

func NewRandomCommand(cfg *config.Config) *RandomCommand {
	return &RandomCommand{cfg: cfg}
}

func (c *RandomCommand) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a random quote",
		Long: `Show a random quote. Without --category the category selected in the web
interface is used.`,
		Args: cobra.NoArgs,
		RunE: c.Run,
	}
	cmd.Flags().StringVar(&c.Category, "category", "", "Only pick from this category (\"all\" for every quote)")
	return cmd
}

func (c *RandomCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, c.cfg, func(app *entrypoint.App) error {
		category := c.Category
		if category == "" {
			active, err := app.Book.Categories.ActiveCategory(ctx)
			if err != nil {
				return err
			}
			category = active
		}

		sel, err := app.Book.Selector.Pick(ctx, category)
		switch {
		case errors.Is(err, quotebook.ErrNoQuotesAvailable):
			fmt.Fprintln(cmd.OutOrStdout(), quotebook.NoQuotesMessage)
			return nil
		case err != nil:
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sel.Render())
		return nil
	})
}

type CategoriesCommand struct {
	Select string

	cfg *config.Config
}

func NewCategoriesCommand(cfg *config.Config) *CategoriesCommand {
	return &CategoriesCommand{cfg: cfg}
}

func (c *CategoriesCommand) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories; the selected one is marked with *",
		Args:  cobra.NoArgs,
		RunE:  c.Run,
	}
	cmd.Flags().StringVar(&c.Select, "select", "", "Change the selected category")
	return cmd
}

func (c *CategoriesCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, c.cfg, func(app *entrypoint.App) error {
		if c.Select != "" {
			if !app.Book.Categories.Has(c.Select) {
				return fmt.Errorf("unknown category: %s", c.Select)
			}
			if err := app.Book.Categories.SelectCategory(ctx, c.Select); err != nil {
				return err
			}
		}

		active, err := app.Book.Categories.ActiveCategory(ctx)
		if err != nil {
			return err
		}
		for _, category := range app.Book.Categories.Categories() {
			marker := " "
			if category == active {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, category)
		}
		return nil
	})
}
