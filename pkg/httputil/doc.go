// Package httputil fetches remote datasets with retry.
//
// [Fetcher] downloads a URL once, retrying transient failures with
// exponential backoff:
//
//   - network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// A Retry-After header on 429 and 503 responses replaces the backoff delay,
// bounded by [Fetcher.MaxRetryAfter]. Other 4xx responses fail immediately
// with a [StatusError].
//
//	f := httputil.NewFetcher()
//	body, err := f.Get(ctx, "https://example.org/relations.csv")
//
// [Retry] is exported for callers that need the same backoff around their
// own operations.
package httputil
