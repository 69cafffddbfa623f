// Package config loads graphlearn's settings file.
//
// Settings come from three layers, later layers winning: built-in defaults,
// a TOML file, and GRAPHLEARN_* environment variables. Command-line flags are
// applied on top by the CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/layout"
)

const appName = "graphlearn"

// Environment variables read by [Load].
const (
	EnvAddr       = "GRAPHLEARN_ADDR"
	EnvCORSOrigin = "GRAPHLEARN_CORS_ORIGIN"
	EnvRedisURL   = "GRAPHLEARN_REDIS_URL"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheFile   = "file"
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
)

// Config is the merged configuration.
type Config struct {
	Layout layout.Config
	Server Server
	Cache  Cache
	Render Render

	// Path is the file the configuration was read from, or "" when no
	// file was found.
	Path string
}

// Server configures `graphlearn serve`.
type Server struct {
	Addr       string `toml:"addr"`
	CORSOrigin string `toml:"cors_origin"`
	// Watch reloads the served document when its file changes.
	Watch bool `toml:"watch"`
}

// Cache selects and configures the pipeline cache.
type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// Render holds output defaults.
type Render struct {
	Theme string  `toml:"theme"`
	Scale float64 `toml:"scale"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: layout.DefaultConfig(),
		Server: Server{Addr: ":8080", CORSOrigin: "*", Watch: true},
		Cache:  Cache{Backend: CacheFile, Prefix: appName + ":"},
		Render: Render{Theme: "light", Scale: 2},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/graphlearn/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns $XDG_CACHE_HOME/graphlearn, falling back to ~/.cache.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the configuration from path, or from [DefaultPath] when path
// is empty, and applies environment overrides. A missing default file is
// not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		err := cfg.readFile(path)
		switch {
		case err == nil:
			cfg.Path = path
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		default:
			return nil, err
		}
	}

	cfg.applyEnv(lookup)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheNone, CacheFile, CacheSQLite:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis needs redis_url or %s", EnvRedisURL)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want none, file, sqlite or redis)", c.Cache.Backend)
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render scale must be positive, got %v", c.Render.Scale)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvCORSOrigin); ok && v != "" {
		c.Server.CORSOrigin = v
	}
	if v, ok := lookup(EnvRedisURL); ok && v != "" {
		c.Cache.RedisURL = v
		c.Cache.Backend = CacheRedis
	}
}

// =============================================================================
// File format
// =============================================================================

// file mirrors the TOML layout. Pointer fields distinguish "unset" from a
// zero value so that only keys present in the file override defaults.
type file struct {
	Layout struct {
		StartX            *float64 `toml:"start_x"`
		StartY            *float64 `toml:"start_y"`
		HorizontalSpacing *float64 `toml:"horizontal_spacing"`
		VerticalPadding   *float64 `toml:"vertical_padding"`
		WideBonus         *bool    `toml:"wide_bonus"`
		WideCategories    []string `toml:"wide_categories"`
		ReserveOwnWidth   *bool    `toml:"reserve_own_width"`
		RowMode           *string  `toml:"row_mode"`
		LevelHeight       *float64 `toml:"level_height"`
		ParentAlign       *string  `toml:"parent_align"`
		PinRoot           *bool    `toml:"pin_root"`
		Margins           *margins `toml:"margins"`
	} `toml:"layout"`
	Sizes  map[string]layout.Dimensions `toml:"sizes"`
	Server *Server                      `toml:"server"`
	Cache  *Cache                       `toml:"cache"`
	Render *Render                      `toml:"render"`
}

type margins struct {
	Left   float64 `toml:"left"`
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
}

func (c *Config) readFile(path string) error {
	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	l := &c.Layout
	setF(&l.Start.X, f.Layout.StartX)
	setF(&l.Start.Y, f.Layout.StartY)
	setF(&l.HorizontalSpacing, f.Layout.HorizontalSpacing)
	setF(&l.VerticalPadding, f.Layout.VerticalPadding)
	setF(&l.LevelHeight, f.Layout.LevelHeight)
	if v := f.Layout.WideBonus; v != nil {
		l.WideBonus = *v
	}
	if md.IsDefined("layout", "wide_categories") {
		l.WideCategories = make([]content.Category, len(f.Layout.WideCategories))
		for i, s := range f.Layout.WideCategories {
			l.WideCategories[i] = content.Category(s)
		}
	}
	if v := f.Layout.ReserveOwnWidth; v != nil {
		l.ReserveOwnWidth = *v
	}
	if v := f.Layout.RowMode; v != nil {
		l.RowMode = layout.RowMode(*v)
	}
	if v := f.Layout.ParentAlign; v != nil {
		l.ParentAlign = layout.ParentAlign(*v)
	}
	if v := f.Layout.PinRoot; v != nil {
		l.PinRoot = *v
	}
	if m := f.Layout.Margins; m != nil {
		l.Margins = layout.Margins(*m)
	}

	for name, d := range f.Sizes {
		if name == "default" {
			l.Sizes.Default = d
			continue
		}
		l.Sizes = l.Sizes.With(content.Category(name), d)
	}

	if s := f.Server; s != nil {
		if md.IsDefined("server", "addr") {
			c.Server.Addr = s.Addr
		}
		if md.IsDefined("server", "cors_origin") {
			c.Server.CORSOrigin = s.CORSOrigin
		}
		if md.IsDefined("server", "watch") {
			c.Server.Watch = s.Watch
		}
	}
	if s := f.Cache; s != nil {
		if md.IsDefined("cache", "backend") {
			c.Cache.Backend = s.Backend
		}
		if md.IsDefined("cache", "dir") {
			c.Cache.Dir = s.Dir
		}
		if md.IsDefined("cache", "redis_url") {
			c.Cache.RedisURL = s.RedisURL
		}
		if md.IsDefined("cache", "prefix") {
			c.Cache.Prefix = s.Prefix
		}
	}
	if s := f.Render; s != nil {
		if md.IsDefined("render", "theme") {
			c.Render.Theme = s.Theme
		}
		if md.IsDefined("render", "scale") {
			c.Render.Scale = s.Scale
		}
	}
	return nil
}

func setF(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
