package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/pipeline"
)

// buildCommand creates the build command, which turns a CSV into a graph file.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "build [source]",
		Short: "Build a network from a CSV of institution/topic links",
		Long: `Build a network from a CSV of institution/topic links.

The source is a local path or an http(s) URL. Each row links a "from" entity
to a "to" entity; malformed rows are skipped and counted. The result is a
graph.json file that 'layout' positions and 'visualize' draws.

Remote sources and built networks are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			c.config.apply(&opts, cmd.Flags())
			return c.runBuild(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <source>.graph.json)")
	loadFlags(cmd, &opts, &noCache)

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Reading "+opts.Source+"...")
	spinner.Start()

	loaded, cacheHit, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	ds := runner.PrepareDataset(loaded.Dataset, opts)
	prog.done("built network", "nodes", ds.Graph.NodeCount(), "edges", ds.Graph.EdgeCount())

	outputPath := output
	if outputPath == "" {
		outputPath = sourceBase(opts.Source) + graphSuffix
	}
	if err := graph.WriteGraphFile(ds, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Network built")
	printFile(outputPath)
	printStats(networkStats{
		Rows:    loaded.Rows,
		Skipped: loaded.Skipped,
		Nodes:   ds.Graph.NodeCount(),
		Edges:   ds.Graph.EdgeCount(),
		Topics:  ds.Topics.Len(),
	}, cacheHit)
	if loaded.Skipped > 0 {
		printWarning("%d malformed rows skipped (run with -v for details)", loaded.Skipped)
	}
	printNewline()
	printNextStep("Layout", appName+" layout "+outputPath)

	return nil
}
