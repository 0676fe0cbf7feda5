package ingest

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/topicnet/pkg/cache"
	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/httputil"
	"github.com/matzehuels/topicnet/pkg/observability"
)

// Source is a fully loaded dataset.
type Source struct {
	Location string
	Data     []byte
	Remote   bool
	// Cached is true when a remote body came from the cache.
	Cached bool
}

// Hash returns the content hash of the dataset.
func (s *Source) Hash() string { return cache.Hash(s.Data) }

// Loader reads datasets from local paths or http(s) URLs. Remote bodies are
// cached under [cache.Keyer.HTTPKey] for [cache.TTLHTTP].
type Loader struct {
	Fetcher *httputil.Fetcher
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	// Refresh bypasses cached remote bodies.
	Refresh bool
}

// NewLoader returns a loader. Nil arguments fall back to a null cache, the
// default keyer and a discarding logger.
func NewLoader(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Loader {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		Fetcher: httputil.NewFetcher(),
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
	}
}

// Open loads location completely. Any failure to obtain the bytes is a
// RESOURCE_UNAVAILABLE error; a malformed location is INVALID_SOURCE.
func (l *Loader) Open(ctx context.Context, location string) (*Source, error) {
	if err := errors.ValidateSource(location); err != nil {
		return nil, err
	}
	if !errors.IsURL(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeResourceUnavailable, err, "read %s", location)
		}
		return &Source{Location: location, Data: data}, nil
	}

	key := l.Keyer.HTTPKey("dataset", location)
	if !l.Refresh {
		if data, hit, err := l.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeHTTP)
			l.Logger.Debug("using cached dataset", "url", location, "bytes", len(data))
			return &Source{Location: location, Data: data, Remote: true, Cached: true}, nil
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeHTTP)
	}

	l.Logger.Debug("fetching dataset", "url", location)
	data, err := l.Fetcher.Get(ctx, location)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceUnavailable, err, "fetch %s", location)
	}
	if err := l.Cache.Set(ctx, key, data, cache.TTLHTTP); err != nil {
		l.Logger.Warn("could not cache dataset", "url", location, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cache.KeyTypeHTTP, len(data))
	}
	return &Source{Location: location, Data: data, Remote: true}, nil
}
