package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topicnet/pkg/pipeline"
)

// renderCommand creates the render command, which runs the whole pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		selection  selectionFlags
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Build, lay out and draw a network in one step",
		Long: `Build, lay out and draw a network in one step.

Equivalent to 'build', 'layout' and 'visualize' in sequence. Every stage is
cached, so re-rendering the same source with another selection only redraws.

Selections:
  --click ID         show ID and its neighbors
  --double-click ID  show every node sharing ID's topic
  --topic TOPIC      show every node of TOPIC`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			ev, err := selection.event()
			if err != nil {
				return err
			}
			opts.Event = ev
			c.config.apply(&opts, cmd.Flags())
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	loadFlags(cmd, &opts, &noCache)
	layoutFlags(cmd, &opts)
	renderFlags(cmd, &opts, &formatsStr)
	selection.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	ctx = withLogger(ctx, c.Logger)

	c.Logger.Debug("render settings", "layout", opts.Describe())
	spinner := newSpinnerWithContext(ctx, "Rendering "+opts.Source+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	loggerFromContext(ctx).Debug("render finished",
		"run", result.RunID,
		"load", result.Stats.LoadTime,
		"layout", result.Stats.LayoutTime,
		"render", result.Stats.RenderTime)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Source,
		output:    output,
		cacheHit:  result.CacheInfo.LoadHit && result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		stats:     statsFromPipeline(result.Stats),
		state:     result.State.String(),
	})
}

// =============================================================================
// Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	stats     networkStats
	state     string
}

// artifactPath returns where format is written. A single format with an
// explicit output goes exactly there; otherwise the format is appended to
// the base path, and JSON uses the layout file suffix.
func artifactPath(format string, formats []string, input, output string) string {
	if output != "" && len(formats) == 1 {
		return output
	}
	base := basePath(output, input)
	if format == pipeline.FormatJSON {
		return base + layoutSuffix
	}
	return base + "." + format
}

func writeArtifacts(p artifactWriteParams) error {
	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(format, p.formats, p.input, p.output)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}

	if p.state != "" && p.stats.Hidden > 0 {
		printSuccess("Rendered (%s)", p.state)
	} else {
		printSuccess("Rendered")
	}
	for _, path := range written {
		printFile(path)
	}
	printStats(p.stats, p.cacheHit)
	return nil
}
