// Package pipeline provides the core load → layout → render pipeline for
// topicnet.
//
// The same stages back the CLI, the terminal explorer and the HTTP server,
// so every entry point builds, annotates and lays out a dataset the same
// way and shares the same cache entries.
//
// # Architecture
//
// The pipeline consists of three stages plus an optional selection:
//
//  1. Load: read the dataset, normalize rows, build the bipartite graph
//  2. Layout: derive colors and sizes, then compute positions
//  3. Select: apply one filter event (optional)
//  4. Render: generate output in various formats (SVG, PNG, PDF, JSON)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "links.csv",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Interactive callers keep the loaded network around as a [View] and
// dispatch events against it:
//
//	view, err := runner.View(ctx, opts)
//	err = view.Dispatch(ctx, filter.Click("i1"))
//	l := view.Layout() // hidden flags reflect the selection
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/topicnet/pkg/attr"
	"github.com/matzehuels/topicnet/pkg/cache"
	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/filter"
	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/ingest"
	"github.com/matzehuels/topicnet/pkg/layout"
	"github.com/matzehuels/topicnet/pkg/render"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI and Server
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = layout.DefaultWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = layout.DefaultHeight

	// DefaultIterations is the default number of force-directed iterations.
	DefaultIterations = layout.DefaultIterations
)

// Format constants for output formats.
const (
	FormatSVG  = render.FormatSVG
	FormatPNG  = render.FormatPNG
	FormatPDF  = render.FormatPDF
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source           string         `json:"source"`
	Delimiter        string         `json:"delimiter,omitempty"`
	Columns          ingest.Columns `json:"columns,omitempty"`
	LargestComponent bool           `json:"largest_component,omitempty"`
	Refresh          bool           `json:"refresh,omitempty"`

	// Layout options
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	MinSize    float64 `json:"min_size,omitempty"`
	MaxSize    float64 `json:"max_size,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Legend  bool     `json:"legend,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Event is applied to the laid out network before rendering.
	Event *filter.Event `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Dataset is the built network, annotated and filtered.
	Dataset topicgraph.Dataset

	// DatasetHash is the content hash of the serialized graph.
	DatasetHash string

	// Layout is the positioned network, with hidden flags from Event.
	Layout graph.Layout

	// State is the filter state after Event, Unfiltered when none was given.
	State filter.State

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows         int
	Skipped      int
	NodeCount    int
	EdgeCount    int
	TopicCount   int
	VisibleCount int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the built dataset came from cache
	LayoutHit bool // Whether positions came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks and defaults the fields needed to load a dataset.
func (o *Options) ValidateForLoad() error {
	if err := errors.ValidateSource(o.Source); err != nil {
		return err
	}
	if o.Delimiter == "" {
		o.Delimiter = ingest.DefaultDelimiter
	}
	if err := errors.ValidateDelimiter(o.Delimiter); err != nil {
		return err
	}
	o.Columns = o.Columns.WithDefaults()
	if err := o.Columns.Validate(); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.MinSize == 0 {
		o.MinSize = attr.DefaultMinSize
	}
	if o.MaxSize == 0 {
		o.MaxSize = attr.DefaultMaxSize
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "frame must be positive, got %gx%g", o.Width, o.Height)
	}
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must not be negative, got %d", o.Iterations)
	}
	if !o.SizeRange().Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid size range %g..%g", o.MinSize, o.MaxSize)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// SizeRange returns the configured node size bounds.
func (o *Options) SizeRange() attr.SizeRange {
	return attr.SizeRange{Min: o.MinSize, Max: o.MaxSize}
}

// LayoutConfig returns the frame and iteration settings for pkg/layout.
func (o *Options) LayoutConfig() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Iterations = o.Width, o.Height, o.Iterations
	return cfg
}

// DecodeOptions returns the options for [ingest.Decode].
func (o *Options) DecodeOptions() ingest.Options {
	return ingest.Options{Delimiter: o.Delimiter, Columns: o.Columns, Logger: o.Logger}
}

// DatasetKeyOpts returns cache key options for the load stage.
func (o *Options) DatasetKeyOpts() cache.DatasetKeyOpts {
	return cache.DatasetKeyOpts{Delimiter: o.Delimiter, Columns: o.Columns.Names()}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:      o.Width,
		Height:     o.Height,
		Iterations: o.Iterations,
		MinSize:    o.MinSize,
		MaxSize:    o.MaxSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Legend: o.Legend, Labels: o.Labels}
	if o.Event != nil {
		k.Selection = o.Event.String()
	}
	return k
}

// Describe returns a short human-readable summary of the frame settings.
func (o *Options) Describe() string {
	return fmt.Sprintf("%gx%g, %d iterations, sizes %g..%g", o.Width, o.Height, o.Iterations, o.MinSize, o.MaxSize)
}
