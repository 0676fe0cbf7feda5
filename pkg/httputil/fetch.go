package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/topicnet/pkg/buildinfo"
	"github.com/matzehuels/topicnet/pkg/observability"
)

// DefaultMaxBytes caps a downloaded dataset at 256 MiB.
const DefaultMaxBytes = 256 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// DefaultMaxRetryAfter caps how long a Retry-After header can stall a fetch.
const DefaultMaxRetryAfter = 30 * time.Second

// Fetcher downloads whole response bodies with retry.
type Fetcher struct {
	Client   *http.Client
	Attempts int
	Delay    time.Duration
	MaxBytes int64
	// MaxRetryAfter bounds the wait a 429 or 503 response can request.
	MaxRetryAfter time.Duration
}

// NewFetcher returns a fetcher with a 60s client timeout, 3 attempts and a
// one second initial backoff.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:        &http.Client{Timeout: 60 * time.Second},
		Attempts:      3,
		Delay:         time.Second,
		MaxBytes:      DefaultMaxBytes,
		MaxRetryAfter: DefaultMaxRetryAfter,
	}
}

// Get downloads rawURL and returns the body.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	var body []byte
	err = Retry(ctx, f.Attempts, f.Delay, func() error {
		b, err := f.once(ctx, u)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	return body, err
}

func (f *Fetcher) once(ctx context.Context, u *url.URL) ([]byte, error) {
	hooks := observability.HTTP()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		serr := &StatusError{URL: u.String(), StatusCode: resp.StatusCode}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, RetryAfter(serr, f.retryAfter(resp.Header))
		}
		return nil, serr
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, Retryable(fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", u.Host, limit)
	}
	return body, nil
}

// retryAfter reads a Retry-After header in either delta-seconds or HTTP-date
// form. Missing, malformed and past values yield 0.
func (f *Fetcher) retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if t, err := http.ParseTime(v); err == nil {
		d = time.Until(t)
	}
	if d <= 0 {
		return 0
	}
	limit := f.MaxRetryAfter
	if limit <= 0 {
		limit = DefaultMaxRetryAfter
	}
	return min(d, limit)
}
