// Package cli implements the graphlearn command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlearn/internal/config"
	"github.com/matzehuels/graphlearn/pkg/buildinfo"
	"github.com/matzehuels/graphlearn/pkg/cache"
	_ "github.com/matzehuels/graphlearn/pkg/content/mongo"
	"github.com/matzehuels/graphlearn/pkg/httputil"
	"github.com/matzehuels/graphlearn/pkg/layout"
	"github.com/matzehuels/graphlearn/pkg/observability"
	"github.com/matzehuels/graphlearn/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "graphlearn"

	// httpCacheTTL is how long fetched documents count as fresh.
	httpCacheTTL = 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Config: config.Default()}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Graphlearn lays out learning content as a tree on a canvas",
		Long: `Graphlearn reads a content document (videos, web pages and text notes
linked into a tree), computes a top-down tree layout and renders it as an
infinite-canvas scene, an SVG, PDF or PNG, or serves it over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/graphlearn/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and, in verbose mode, routes pipeline,
// cache and HTTP events to the logger.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		c.Logger.Debug("Loaded config", "path", cfg.Path)
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)

	if !noCache {
		if dir, err := c.cacheDir(); err == nil {
			if hc, err := httputil.NewCache(filepath.Join(dir, "http"), httpCacheTTL); err == nil {
				runner.Fetcher = httputil.NewFetcher(nil, hc)
			} else {
				c.Logger.Warn("HTTP cache disabled", "err", err)
			}
		}
	}
	return runner, nil
}

// newCache opens the backend selected by the config.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc := c.Config.Cache
	switch cc.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cc.RedisURL, cc.Prefix)
	case config.CacheSQLite:
		dir, err := c.cacheDir()
		if err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
		return cache.NewSQLiteCache(filepath.Join(dir, "cache.db"))
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("Caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(filepath.Join(dir, "pipeline"))
	}
}

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the layout overrides shared by layout, render, inspect
// and serve. Only flags set on the command line override the config.
type layoutFlags struct {
	spacing     float64
	padding     float64
	levelHeight float64
	rowMode     string
	align       string
	noWideBonus bool
	noPinRoot   bool
	reserveOwn  bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	d := layout.DefaultConfig()
	fs := cmd.Flags()
	fs.Float64Var(&f.spacing, "spacing", d.HorizontalSpacing, "horizontal spacing between siblings")
	fs.Float64Var(&f.padding, "padding", d.VerticalPadding, "vertical padding between rows")
	fs.Float64Var(&f.levelHeight, "level-height", 0, "row height in fixed row mode (0: tallest node)")
	fs.StringVar(&f.rowMode, "row-mode", string(d.RowMode), "row placement: parent, fixed")
	fs.StringVar(&f.align, "align", string(d.ParentAlign), "parent centring: extent, centers")
	fs.BoolVar(&f.noWideBonus, "no-wide-bonus", false, "do not widen subtrees with wide children")
	fs.BoolVar(&f.noPinRoot, "no-pin-root", false, "let the root move when it is centred over its children")
	fs.BoolVar(&f.reserveOwn, "reserve-own-width", false, "never make a subtree narrower than its own root (keeps siblings apart)")
	registerLayoutCompletions(cmd)
}

// apply returns base with every flag the user set applied.
func (f *layoutFlags) apply(cmd *cobra.Command, base layout.Config) layout.Config {
	fs := cmd.Flags()
	if fs.Changed("spacing") {
		base.HorizontalSpacing = f.spacing
	}
	if fs.Changed("padding") {
		base.VerticalPadding = f.padding
	}
	if fs.Changed("level-height") {
		base.LevelHeight = f.levelHeight
	}
	if fs.Changed("row-mode") {
		base.RowMode = layout.RowMode(f.rowMode)
	}
	if fs.Changed("align") {
		base.ParentAlign = layout.ParentAlign(f.align)
	}
	if f.noWideBonus {
		base.WideBonus = false
	}
	if f.noPinRoot {
		base.PinRoot = false
	}
	if fs.Changed("reserve-own-width") {
		base.ReserveOwnWidth = f.reserveOwn
	}
	return base
}

// baseOptions returns pipeline options seeded from the config.
func (c *CLI) baseOptions(cmd *cobra.Command, source string, lf *layoutFlags) pipeline.Options {
	cfg := lf.apply(cmd, c.Config.Layout)
	return pipeline.Options{
		Source: source,
		Layout: &cfg,
		Theme:  c.Config.Render.Theme,
		Scale:  c.Config.Render.Scale,
		Logger: c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// outputBase derives the output path stem from the -o flag or the source.
// Remote sources fall back to "graphlearn".
func outputBase(output, source string) string {
	if output != "" {
		ext := filepath.Ext(output)
		switch strings.TrimPrefix(ext, ".") {
		case "svg", "pdf", "png", "json":
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if strings.Contains(source, "://") {
		return appName
	}
	return strings.TrimSuffix(source, filepath.Ext(source))
}
