package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topicnet/pkg/pipeline"
)

// exploreCommand creates the explore command, an interactive terminal view.
func (c *CLI) exploreCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "explore [source]",
		Short: "Explore a network interactively in the terminal",
		Long: `Explore a network interactively in the terminal.

The node list shows every entity with its topic and degree; nodes hidden by
the current selection are dimmed.

Keys:
  ↑/↓    move the cursor
  enter  click the node (show it and its neighbors), or the legend row
  d      double-click the node (show its whole topic)
  esc    click the background (show everything)
  tab    switch between the node list and the legend
  q      quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			c.config.apply(&opts, cmd.Flags())
			return c.runExplore(cmd.Context(), opts, noCache)
		},
	}

	loadFlags(cmd, &opts, &noCache)
	layoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Log lines would tear the alternate screen.
	quiet := log.New(io.Discard)
	runner.Logger, runner.Loader.Logger, opts.Logger = quiet, quiet, quiet

	model := NewExploreModel(ctx, opts.Source, func(ctx context.Context) (*pipeline.View, error) {
		return runner.View(ctx, opts)
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ExploreModel); ok && m.Net == nil && m.Err != nil {
		return m.Err
	}
	return nil
}
