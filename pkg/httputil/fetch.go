package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/graphlearn/pkg/buildinfo"
	"github.com/matzehuels/graphlearn/pkg/observability"
)

// MaxBodySize bounds a fetched body.
const MaxBodySize = 16 << 20

// Response is the result of [Fetcher.Get].
type Response struct {
	Body        []byte
	ContentType string
	FetchedAt   time.Time
	// Cached is true when the body came from the cache without a request.
	Cached bool
	// Stale is true when the origin failed and an expired copy was served.
	Stale bool
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Fetcher performs GET requests with retry and an optional [Cache].
type Fetcher struct {
	Client   *http.Client
	Cache    *Cache
	Attempts int
	Delay    time.Duration
}

// NewFetcher returns a Fetcher with the default retry policy. A nil client
// means a client with a 30 second timeout. cache may be nil.
func NewFetcher(client *http.Client, cache *Cache) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{Client: client, Cache: cache, Attempts: 3, Delay: time.Second}
}

// Get downloads url.
func (f *Fetcher) Get(ctx context.Context, url string) (*Response, error) {
	var stale *Entry
	if f.Cache != nil {
		e, err := f.Cache.Load(url)
		switch {
		case err == nil && e != nil:
			return &Response{Body: e.Body, ContentType: e.ContentType, FetchedAt: e.FetchedAt, Cached: true}, nil
		case errors.Is(err, ErrExpired):
			stale = e
		}
	}

	var resp *Response
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		r, err := f.do(ctx, url)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		if stale != nil {
			return &Response{Body: stale.Body, ContentType: stale.ContentType, FetchedAt: stale.FetchedAt, Cached: true, Stale: true}, nil
		}
		return nil, err
	}

	if f.Cache != nil {
		_ = f.Cache.Store(url, &Entry{URL: url, ContentType: resp.ContentType, Body: resp.Body, FetchedAt: resp.FetchedAt})
	}
	return resp, nil
}

func (f *Fetcher) do(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("Accept", "application/json, application/yaml, application/toml, text/plain;q=0.5")

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	res, err := f.Client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &RetryableError{Err: err}
	}
	defer res.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, res.StatusCode, time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		err := &StatusError{URL: url, Status: res.StatusCode}
		if RetryableStatus(res.StatusCode) {
			return nil, &RetryableError{Err: err}
		}
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, MaxBodySize+1))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", url, MaxBodySize)
	}
	return &Response{Body: body, ContentType: res.Header.Get("Content-Type"), FetchedAt: time.Now()}, nil
}
