package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		selection  selectionFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout to SVG, PNG or PDF",
		Long: `Render a computed layout to SVG, PNG or PDF.

The visualize command takes a layout.json file (produced by 'layout') and
draws it. Positions are fixed by the layout, so this step only decides what is
visible: --click, --double-click and --topic apply one selection first.

Use 'render' as a shortcut to go directly from a CSV to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			ev, err := selection.event()
			if err != nil {
				return err
			}
			opts.Event = ev
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	renderFlags(cmd, &opts, &formatsStr)
	selection.register(cmd)

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	if opts.Event != nil {
		view, err := pipeline.ViewFromLayout(l)
		if err != nil {
			return fmt.Errorf("restore layout %s: %w", input, err)
		}
		if err := view.Dispatch(ctx, *opts.Event); err != nil {
			return err
		}
		l = view.Layout()
		c.Logger.Debug("applied selection", "event", opts.Event.String(), "state", view.Controller.State())
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
		stats: networkStats{
			Nodes:  len(l.Nodes),
			Edges:  len(l.Edges),
			Topics: len(l.Topics),
			Hidden: l.HiddenCount(),
		},
	})
}
