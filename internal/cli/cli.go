package cli

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topicnet/pkg/buildinfo"
	"github.com/matzehuels/topicnet/pkg/cache"
	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/filter"
	"github.com/matzehuels/topicnet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "topicnet"

	graphSuffix  = ".graph.json"
	layoutSuffix = ".layout.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Topicnet explores institution/topic networks",
		Long: `Topicnet turns a CSV of institution/topic links into an interactive
network. Nodes are colored by topic and sized by degree; selections isolate a
node's neighborhood or a whole topic.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configFile)
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/topicnet/config.toml)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.legendCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, c.config.Cache.Keyer(), c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.config.Cache
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		if cfg.Dir == "" {
			dir, err := cacheDir()
			if err != nil {
				c.Logger.Debug("no cache directory, caching disabled", "err", err)
				return cache.NewNullCache(), nil
			}
			cfg.Dir = dir
		}
	}
	ch, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open %s cache", cfg.Backend)
	}
	return ch, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/topicnet/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// sourceBase derives a base output path from a source location. URLs use
// the last path element in the working directory.
func sourceBase(source string) string {
	if errors.IsURL(source) {
		name := "network"
		if u, err := url.Parse(source); err == nil {
			if b := path.Base(u.Path); b != "/" && b != "." && b != "" {
				name = b
			}
		}
		return strings.TrimSuffix(name, path.Ext(name))
	}
	return trimSuffixes(source, graphSuffix, layoutSuffix)
}

// trimSuffixes strips the first matching suffix, or the plain extension
// when none match.
func trimSuffixes(p string, suffixes ...string) string {
	for _, s := range suffixes {
		if strings.HasSuffix(p, s) {
			return strings.TrimSuffix(p, s)
		}
	}
	return strings.TrimSuffix(p, filepath.Ext(p))
}

// basePath derives the base output path from the output and input paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return sourceBase(input)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// selectionFlags holds the mutually exclusive event flags shared by render
// and visualize.
type selectionFlags struct {
	click       string
	doubleClick string
	topic       string
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.click, "click", "", "isolate a node and its neighbors")
	cmd.Flags().StringVar(&s.doubleClick, "double-click", "", "isolate the topic of a node")
	cmd.Flags().StringVar(&s.topic, "topic", "", "isolate a topic, as a legend row click would")
	cmd.MarkFlagsMutuallyExclusive("click", "double-click", "topic")
}

// event returns the selected event, or nil when no flag was given.
func (s selectionFlags) event() (*filter.Event, error) {
	var events []filter.Event
	if s.click != "" {
		events = append(events, filter.Click(s.click))
	}
	if s.doubleClick != "" {
		events = append(events, filter.DoubleClick(s.doubleClick))
	}
	if s.topic != "" {
		events = append(events, filter.Legend(s.topic))
	}
	switch len(events) {
	case 0:
		return nil, nil
	case 1:
		return &events[0], nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "only one of --click, --double-click and --topic may be given")
	}
}

// loadFlags registers the flags that control how a source is read.
func loadFlags(cmd *cobra.Command, opts *pipeline.Options, noCache *bool) {
	cmd.Flags().StringVarP(&opts.Delimiter, "delimiter", "d", "", "field delimiter (default: \",\")")
	cmd.Flags().BoolVar(&opts.LargestComponent, "largest-component", false, "keep only the largest connected component")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "refetch remote sources instead of using the cache")
	cmd.Flags().BoolVar(noCache, "no-cache", false, "disable caching")
}

// layoutFlags registers the frame, iteration and size flags.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", opts.Iterations, "force-directed iterations")
	cmd.Flags().Float64Var(&opts.MinSize, "min-size", opts.MinSize, "radius of the least connected node")
	cmd.Flags().Float64Var(&opts.MaxSize, "max-size", opts.MaxSize, "radius of the most connected node")
}

// renderFlags registers the format and decoration flags.
func renderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.Legend, "legend", false, "draw the topic legend")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw node labels")
}
