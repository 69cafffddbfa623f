package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphlearn/pkg/cache"
	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/httputil"
	"github.com/matzehuels/graphlearn/pkg/observability"
	"github.com/matzehuels/graphlearn/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, the fetcher and the logger;
// it doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Fetcher *httputil.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Fetcher: httputil.NewFetcher(nil, nil),
		Logger:  logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.CacheInfo.LoadHit = loadHit

	logger.Info("loaded document",
		"source", opts.Source,
		"nodes", len(doc.Nodes),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	sc, docHash, layoutHit, err := r.computeLayout(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = sc
	result.DocHash = docHash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(sc.Nodes)
	result.Stats.EdgeCount = len(sc.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"nodes", len(sc.Nodes),
		"edges", len(sc.Edges),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads the document named by opts.Source. Remote
// documents are cached for [cache.TTLDocument]; Refresh bypasses the cache.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (doc *content.Document, hit bool, err error) {
	if opts.Source == "" {
		return nil, false, errors.New(errors.ErrCodeInvalidConfig, "source is required")
	}
	src, err := content.OpenSource(opts.Source, r.Fetcher)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.String())
	start := time.Now()
	defer func() {
		n := 0
		if doc != nil {
			n = len(doc.Nodes)
		}
		hooks.OnLoadComplete(ctx, src.String(), n, time.Since(start), err)
	}()

	if isLocal(src) {
		doc, err = src.Load(ctx)
		return doc, false, err
	}

	key := r.Keyer.DocumentKey(opts.Source)
	if !opts.Refresh {
		if data, ok := r.get(ctx, "document", key); ok {
			if cached, err := content.DecodeBytes(data, content.FormatJSON); err == nil {
				return cached, true, nil
			}
		}
	}

	doc, err = src.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	var buf bytes.Buffer
	if err := content.Encode(&buf, doc, content.FormatJSON); err == nil {
		r.set(ctx, "document", key, buf.Bytes(), cache.TTLDocument)
	}
	return doc, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*content.Document, error) {
	doc, _, err := r.LoadWithCacheInfo(ctx, opts)
	return doc, err
}

// ComputeLayoutWithCacheInfo validates doc and computes its scene, keyed by
// the document hash and the layout configuration.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, doc *content.Document, opts Options) (scene.Scene, bool, error) {
	sc, _, hit, err := r.computeLayout(ctx, doc, opts)
	return sc, hit, err
}

// computeLayout also returns the document hash the layout is keyed by.
func (r *Runner) computeLayout(ctx context.Context, doc *content.Document, opts Options) (sc scene.Scene, docHash string, hit bool, err error) {
	if err := opts.ValidateForLayout(); err != nil {
		return scene.Scene{}, "", false, err
	}
	if doc == nil {
		return scene.Scene{}, "", false, errors.New(errors.ErrCodeInvalidDocument, "document is nil")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(doc.Nodes))
	start := time.Now()
	defer func() {
		hooks.OnLayoutComplete(ctx, len(doc.Nodes), time.Since(start), err)
	}()

	docHash, err = cache.HashJSON(doc)
	if err != nil {
		return scene.Scene{}, "", false, fmt.Errorf("hash document: %w", err)
	}
	key := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	if data, ok := r.get(ctx, "layout", key); ok {
		if cached, err := scene.Unmarshal(data); err == nil {
			return cached, docHash, true, nil
		}
		// If deserialization fails, fall through to recompute
	}

	sc, err = GenerateLayout(doc, opts)
	if err != nil {
		return scene.Scene{}, "", false, err
	}
	if data, err := scene.Marshal(sc); err == nil {
		r.set(ctx, "layout", key, data, cache.TTLLayout)
	}
	return sc, docHash, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, doc *content.Document, opts Options) (scene.Scene, error) {
	sc, _, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	return sc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *content.Document, sc scene.Scene, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.VizType, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(start), err)
	}()

	// Node-link output depends on the document rather than the scene.
	var hashInput any = sc
	if opts.IsNodelink() {
		hashInput = doc
	}
	baseHash, err := cache.HashJSON(hashInput)
	if err != nil {
		return nil, false, fmt.Errorf("hash layout for cache key: %w", err)
	}

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := r.get(ctx, "artifact", r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format)))
		if !ok {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := RenderFromScene(ctx, doc, sc, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.set(ctx, "artifact", r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *content.Document, sc scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, sc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads key and reports the hit or miss. Backend errors count as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// logger returns the per-call logger if set, otherwise the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// isLocal reports whether src reads the local filesystem. Local documents
// are never cached: the file itself is the cache.
func isLocal(src content.Source) bool {
	_, ok := src.(content.FileSource)
	return ok
}
