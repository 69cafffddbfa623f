// Package pipeline provides the load → layout → render pipeline for graphlearn.
//
// The CLI and the HTTP server both run content through this package, so a
// document renders the same way from either entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a document from a file, URL or registered source backend
//  2. Layout: validate the tree and compute the canvas scene
//  3. Render: produce SVG, PDF, PNG or JSON output
//
// Each stage can be run independently or as part of the complete pipeline,
// and each stage is cached by a [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "examples/nextjs.json",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	doc, err := runner.Load(ctx, opts)
//	sc, err := runner.ComputeLayout(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, doc, sc, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphlearn/pkg/cache"
	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/layout"
	"github.com/matzehuels/graphlearn/pkg/render"
	"github.com/matzehuels/graphlearn/pkg/render/canvas"
	"github.com/matzehuels/graphlearn/pkg/scene"
)

// Visualization types.
const (
	// VizCanvas draws every node at its layout position and size.
	VizCanvas = "canvas"
	// VizNodelink draws a compact Graphviz diagram of the tree structure.
	VizNodelink = "nodelink"
)

// Defaults shared by the CLI and the server.
const (
	DefaultVizType = VizCanvas
	DefaultTheme   = "light"
	DefaultScale   = 2.0
)

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizCanvas:   true,
	VizNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source  string `json:"source,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Layout options. A nil Layout means [layout.DefaultConfig].
	Layout *layout.Config `json:"layout,omitempty"`

	// Render options
	VizType  string   `json:"viz_type,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Theme    string   `json:"theme,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	NoEdges  bool     `json:"no_edges,omitempty"`
	NoTitle  bool     `json:"no_title,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Document *content.Document

	// DocHash is the content hash of the document.
	DocHash string

	Scene scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid viz type %q (must be one of: canvas, nodelink)", vizType)
	}
	return nil
}

// ValidateTheme checks that a canvas theme exists.
func ValidateTheme(name string) error {
	if _, ok := canvas.ThemeByName(name); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown theme %q (must be one of: light, dark)", name)
	}
	return nil
}

// LayoutConfig returns the layout configuration, falling back to defaults.
func (o *Options) LayoutConfig() layout.Config {
	if o.Layout == nil {
		return layout.DefaultConfig()
	}
	return *o.Layout
}

// ValidateForLayout checks the layout configuration.
func (o *Options) ValidateForLayout() error {
	cfg := o.LayoutConfig()
	return cfg.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{string(render.FormatSVG)}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateTheme(o.Theme)
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizNodelink
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Config: o.LayoutConfig()}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType:  o.VizType,
		Format:   format,
		Theme:    o.Theme,
		Scale:    o.Scale,
		NoEdges:  o.NoEdges,
		NoTitle:  o.NoTitle,
		Detailed: o.Detailed,
	}
}
