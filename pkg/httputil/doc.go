// Package httputil provides HTTP helpers for remote content sources.
//
// # Overview
//
//   - [Fetcher]: GET with retry, status classification, and an on-disk copy
//     of the last good response
//   - [Retry]: automatic retry with exponential backoff
//   - [Cache]: file-based store of fetched bodies with a TTL
//
// # Stale copies
//
// A [Fetcher] with a [Cache] writes every successful body to disk. While the
// entry is fresh it is served without a request. When the origin fails after
// all retries, an expired entry is returned instead of the error and the
// response is marked stale:
//
//	f := httputil.NewFetcher(nil, cache)
//	resp, err := f.Get(ctx, "https://example.com/content.json")
//	if err == nil && resp.Stale {
//	    log.Warn("serving cached copy", "age", time.Since(resp.FetchedAt))
//	}
//
// # Retry
//
// Network errors, 5xx responses and 429 are retried; other 4xx responses fail
// immediately. The default is 3 attempts starting at one second, doubling.
//
// The cache lives in ~/.cache/graphlearn/http unless a directory is given and
// is removed by `graphlearn cache clear`.
package httputil
