// Package cache stores intermediate pipeline results keyed by content hashes.
//
// Three kinds of entries are cached:
//
//   - fetched datasets (raw bytes of a remote CSV, keyed by URL)
//   - parsed graphs (graph JSON, keyed by the dataset hash and decode options)
//   - layouts and rendered artifacts (keyed by the hash of their input)
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] and
// [MongoCache] for shared deployments, and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (nil, false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs per entry kind.
const (
	TTLHTTP     = 24 * time.Hour
	TTLDataset  = 7 * 24 * time.Hour
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeHTTP     = "http"
	KeyTypeDataset  = "dataset"
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// DatasetKeyOpts holds the decode options that change the parsed graph.
type DatasetKeyOpts struct {
	Delimiter string
	Columns   []string
}

// LayoutKeyOpts holds the layout options that change positions or sizes.
type LayoutKeyOpts struct {
	Width      float64
	Height     float64
	Iterations int
	MinSize    float64
	MaxSize    float64
}

// ArtifactKeyOpts holds the render options that change an artifact.
// Selection is the canonical form of the filter event applied before
// rendering, empty when unfiltered.
type ArtifactKeyOpts struct {
	Format    string
	Legend    bool
	Labels    bool
	Selection string
}

// Keyer builds cache keys. Implementations must be deterministic.
type Keyer interface {
	HTTPKey(namespace, key string) string
	DatasetKey(contentHash string, opts DatasetKeyOpts) string
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every key component with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey is not hashed so entries stay readable in Redis and Mongo.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return KeyTypeHTTP + ":" + namespace + ":" + key
}

func (DefaultKeyer) DatasetKey(contentHash string, opts DatasetKeyOpts) string {
	return hashKey(KeyTypeDataset, contentHash, opts.Delimiter, opts.Columns)
}

func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, graphHash, opts.Width, opts.Height, opts.Iterations, opts.MinSize, opts.MaxSize)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, layoutHash, opts.Format, opts.Legend, opts.Labels, opts.Selection)
}

var _ Keyer = DefaultKeyer{}
