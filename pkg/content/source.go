package content

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/httputil"
)

// Source loads a document from somewhere.
type Source interface {
	Load(ctx context.Context) (*Document, error)
	String() string
}

// FileSource reads a document from the local filesystem.
type FileSource struct {
	Path string
}

// Load implements [Source].
func (s FileSource) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(s.Path)
}

func (s FileSource) String() string { return s.Path }

// URLSource downloads a document over HTTP(S).
type URLSource struct {
	URL     string
	Fetcher *httputil.Fetcher
	// Format overrides detection from Content-Type and URL extension.
	Format Format
}

// Load implements [Source].
func (s URLSource) Load(ctx context.Context) (*Document, error) {
	f := s.Fetcher
	if f == nil {
		f = httputil.NewFetcher(nil, nil)
	}
	return Fetch(ctx, f, s.URL, s.Format)
}

func (s URLSource) String() string { return s.URL }

// Fetch downloads and decodes the document at rawURL. When format is empty
// it is taken from the response Content-Type, then the URL path extension.
func Fetch(ctx context.Context, f *httputil.Fetcher, rawURL string, format Format) (*Document, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	resp, err := f.Get(ctx, rawURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", rawURL)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)
	}
	if format == "" {
		format = formatForResponse(rawURL, resp.ContentType)
	}
	doc, err := DecodeBytes(resp.Body, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}
	return doc, nil
}

func formatForResponse(rawURL, contentType string) Format {
	if f, ok := FormatFromContentType(contentType); ok {
		return f
	}
	if u, err := url.Parse(rawURL); err == nil {
		return FormatFromPath(path.Base(u.Path))
	}
	return FormatJSON
}

// =============================================================================
// Scheme registry
// =============================================================================

// OpenFunc builds a [Source] from a location string.
type OpenFunc func(location string) (Source, error)

var (
	schemesMu sync.RWMutex
	schemes   = map[string]OpenFunc{}
)

// RegisterScheme makes a source type available to [OpenSource] for
// locations starting with scheme + "://". Backends register themselves
// from an init function; RegisterScheme panics on duplicates.
func RegisterScheme(scheme string, open OpenFunc) {
	schemesMu.Lock()
	defer schemesMu.Unlock()
	if _, dup := schemes[scheme]; dup {
		panic("content: RegisterScheme called twice for " + scheme)
	}
	schemes[scheme] = open
}

// OpenSource returns the [Source] for location. http and https URLs become
// a [URLSource] using fetcher (nil means the default), registered schemes
// such as mongodb are dispatched to their backend, and anything else is a
// file path.
func OpenSource(location string, fetcher *httputil.Fetcher) (Source, error) {
	scheme, _, ok := strings.Cut(location, "://")
	if !ok {
		return FileSource{Path: location}, nil
	}
	switch scheme = strings.ToLower(scheme); scheme {
	case "http", "https":
		return URLSource{URL: location, Fetcher: fetcher}, nil
	case "file":
		return FileSource{Path: strings.TrimPrefix(location, "file://")}, nil
	}

	schemesMu.RLock()
	open, found := schemes[scheme]
	schemesMu.RUnlock()
	if !found {
		return nil, errors.New(errors.ErrCodeUnsupported, "no source registered for scheme %q", scheme)
	}
	return open(location)
}
