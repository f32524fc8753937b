// Package config loads the uxl configuration file.
//
// # Location
//
// [Load] reads, in order of preference, the path passed on the command line,
// the file named by $UXL_CONFIG, or $XDG_CONFIG_HOME/uxl/config.toml
// (~/.config/uxl/config.toml). A missing default file yields [Default];
// a missing explicit file is an error.
//
// # Format
//
//	mode = "permissive"
//
//	[layout]
//	scrollbar = 12
//	char_width = 7
//	line_height = 16
//
//	[map]
//	column_gap = 80
//	row_gap = 40
//	scale = 0.25
//
//	[icons]
//	names = ["search", "home"]
//
//	[images]
//	remote = true
//
//	[cache]
//	backend = "redis"
//	ttl = "12h"
//	redis_addr = "localhost:6379"
//	prefix = "team-a:"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/uxl/pkg/cache"
	uxlerrors "github.com/matzehuels/uxl/pkg/errors"
	"github.com/matzehuels/uxl/pkg/httputil"
	"github.com/matzehuels/uxl/pkg/layout"
	"github.com/matzehuels/uxl/pkg/navmap"
	"github.com/matzehuels/uxl/pkg/parser"
	"github.com/matzehuels/uxl/pkg/pipeline"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "UXL_CONFIG"

// Config is the parsed configuration file.
type Config struct {
	Mode   string       `toml:"mode"`
	Layout LayoutConfig `toml:"layout"`
	Map    MapConfig    `toml:"map"`
	Icons  IconsConfig  `toml:"icons"`
	Images ImagesConfig `toml:"images"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// LayoutConfig holds text metrics and the scrollbar thickness.
type LayoutConfig struct {
	Scrollbar  float64 `toml:"scrollbar"`
	CharWidth  float64 `toml:"char_width"`
	LineHeight float64 `toml:"line_height"`
}

// MapConfig holds navigation map spacing.
type MapConfig struct {
	ColumnGap float64 `toml:"column_gap"`
	RowGap    float64 `toml:"row_gap"`
	Scale     float64 `toml:"scale"`
}

// IconsConfig restricts icon names. An empty list accepts any name.
type IconsConfig struct {
	Names []string `toml:"names"`
}

// ImagesConfig controls image probing. Remote enables fetching http(s)
// images to read their size; probed sizes are cached under the cache
// directory.
type ImagesConfig struct {
	Remote bool `toml:"remote"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	TTL           string `toml:"ttl"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`

	// Prefix scopes every cache key, so several deployments can share one
	// Redis or MongoDB backend.
	Prefix string `toml:"prefix"`
}

// ServerConfig configures the preview service.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode: parser.Strict.String(),
		Layout: LayoutConfig{
			CharWidth:  layout.DefaultCharWidth,
			LineHeight: layout.DefaultLineHeight,
		},
		Map: MapConfig{
			ColumnGap: navmap.DefaultColumnGap,
			RowGap:    navmap.DefaultRowGap,
			Scale:     navmap.DefaultScale,
		},
		Cache: CacheConfig{
			Backend:       cache.BackendFile,
			TTL:           cache.DefaultTTL.String(),
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "uxl",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the per-user config file path.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "uxl", "config.toml")
}

// Load reads the configuration from path, $UXL_CONFIG or the default path.
// Values missing from the file keep their defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvPath); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath()
		}
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, uxlerrors.Wrap(uxlerrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Decode parses TOML text on top of cfg and validates the result. Unknown
// keys are rejected.
func Decode(text string, cfg *Config) error {
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return uxlerrors.Wrap(uxlerrors.ErrCodeInvalidConfig, err, "invalid config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return uxlerrors.New(uxlerrors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	if _, err := parser.ParseMode(c.Mode); err != nil {
		return uxlerrors.Wrap(uxlerrors.ErrCodeInvalidConfig, err, "mode")
	}
	if c.Layout.Scrollbar < 0 || c.Layout.CharWidth <= 0 || c.Layout.LineHeight <= 0 {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidConfig, "layout: char_width and line_height must be positive, scrollbar not negative")
	}
	if c.Map.ColumnGap < 0 || c.Map.RowGap < 0 || c.Map.Scale <= 0 {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidConfig, "map: gaps must not be negative and scale must be positive")
	}
	if !slices.Contains(cache.Backends, c.Cache.Backend) {
		return uxlerrors.New(uxlerrors.ErrCodeInvalidConfig, "cache: unknown backend %q (want one of %s)",
			c.Cache.Backend, strings.Join(cache.Backends, ", "))
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// TTL returns the parsed cache ttl.
func (c *Config) TTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.DefaultTTL, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, uxlerrors.New(uxlerrors.ErrCodeInvalidConfig, "cache: invalid ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// CacheDir returns the file cache directory, defaulting to the user cache
// directory.
func (c *Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "uxl-cache")
	}
	return filepath.Join(dir, "uxl")
}

// CacheOptions returns the backend settings for [cache.Open].
func (c *Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend:   c.Cache.Backend,
		Dir:       c.CacheDir(),
		RedisAddr: c.Cache.RedisAddr,
		MongoURI:  c.Cache.MongoURI,
		MongoDB:   c.Cache.MongoDatabase,
	}
}

// Keyer returns the cache keyer, scoped by the configured prefix. It returns
// nil (the default keyer) when no prefix is set.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}

// PipelineOptions returns pipeline options carrying the configured parse
// mode, icon set, text metrics, map spacing and cache ttl. Source and render
// settings are left to the caller.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	ttl, err := c.TTL()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Mode:       c.Mode,
		Icons:      c.Icons.Names,
		Scrollbar:  c.Layout.Scrollbar,
		CharWidth:  c.Layout.CharWidth,
		LineHeight: c.Layout.LineHeight,
		ColumnGap:  c.Map.ColumnGap,
		RowGap:     c.Map.RowGap,
		MapScale:   c.Map.Scale,
		TTL:        ttl,
	}
	if c.Images.Remote {
		sizes, err := httputil.NewCache(filepath.Join(c.CacheDir(), "images"), ttl)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("image cache: %w", err)
		}
		opts.Remote = httputil.NewImageProber(sizes)
	}
	return opts, nil
}
