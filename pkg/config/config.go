// Package config loads wordcloud settings from a TOML or YAML file and the
// environment.
//
// Precedence, lowest first: [Defaults], the config file, WORDCLOUD_*
// environment variables. Command-line flags are applied by the CLI on top
// of the result.
//
// A file only needs the keys it changes:
//
//	[layout]
//	width = 1200
//	spiral = "rectangular"
//
//	[store]
//	driver = "sqlite"
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/store"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// LayoutConfig mirrors the layout half of [pipeline.Options].
type LayoutConfig struct {
	Width         int     `toml:"width" yaml:"width"`
	Height        int     `toml:"height" yaml:"height"`
	FontFamily    string  `toml:"font_family" yaml:"font_family"`
	FontWeight    string  `toml:"font_weight" yaml:"font_weight"`
	MinSize       float64 `toml:"min_size" yaml:"min_size"`
	MaxSize       float64 `toml:"max_size" yaml:"max_size"`
	RotationRange float64 `toml:"rotation_range" yaml:"rotation_range"` // radians
	Spiral        string  `toml:"spiral" yaml:"spiral"`
	Order         string  `toml:"order" yaml:"order"`
	Seed          uint64  `toml:"seed" yaml:"seed"`
	Measurer      string  `toml:"measurer" yaml:"measurer"`
	CellSize      int     `toml:"cell_size" yaml:"cell_size"`
	MaxAttempts   int     `toml:"max_attempts" yaml:"max_attempts"`
	SpiralStep    float64 `toml:"spiral_step" yaml:"spiral_step"`
	RectStep      float64 `toml:"rect_step" yaml:"rect_step"`
}

// RenderConfig mirrors the render half of [pipeline.Options].
type RenderConfig struct {
	Formats    []string `toml:"formats" yaml:"formats"`
	Background string   `toml:"background" yaml:"background"`
	Palette    []string `toml:"palette" yaml:"palette"`
	Scale      float64  `toml:"scale" yaml:"scale"`
	EmbedFont  bool     `toml:"embed_font" yaml:"embed_font"`
}

// CacheConfig selects the pipeline cache.
type CacheConfig struct {
	Backend string            `toml:"backend" yaml:"backend"` // file, redis or none
	Dir     string            `toml:"dir" yaml:"dir"`         // file backend; empty uses the user cache dir
	Redis   cache.RedisConfig `toml:"redis" yaml:"redis"`
	// Prefix namespaces every key, for instances sharing one Redis.
	Prefix string `toml:"prefix" yaml:"prefix"`
}

// ServerConfig configures `wordcloud serve`.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // text or json
	File   string `toml:"file" yaml:"file"`     // rotated log file; empty disables
}

// Config is the complete user configuration.
type Config struct {
	Layout  LayoutConfig  `toml:"layout" yaml:"layout"`
	Render  RenderConfig  `toml:"render" yaml:"render"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	Store   store.Config  `toml:"store" yaml:"store"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// Defaults returns the built-in configuration. Layout and render values
// come from the pipeline so the CLI, the API and a bare Options agree.
func Defaults() Config {
	return Config{
		Layout: LayoutConfig{
			Width:      pipeline.DefaultWidth,
			Height:     pipeline.DefaultHeight,
			FontFamily: pipeline.DefaultFontFamily,
			FontWeight: pipeline.DefaultFontWeight,
			MinSize:    pipeline.DefaultMinSize,
			MaxSize:    pipeline.DefaultMaxSize,
			Spiral:     pipeline.DefaultSpiral,
			Order:      pipeline.DefaultOrder,
			Seed:       pipeline.DefaultSeed,
			Measurer:   pipeline.DefaultMeasurer,
		},
		Render: RenderConfig{
			Formats: []string{"svg"},
			Scale:   pipeline.DefaultScale,
		},
		Cache:   CacheConfig{Backend: CacheFile},
		Store:   store.Config{Driver: store.DriverSQLite},
		Server:  ServerConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// DefaultPath returns the per-user config file path. The file need not exist.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "wordcloud", "config.toml"), nil
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file. The format follows the extension: .toml,
// .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
			}
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnvOverrides(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault loads the file at [DefaultPath] when it exists, otherwise
// defaults plus environment.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return Load(path)
		}
	}
	return Load("")
}

func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
	return nil
}

// ToPipelineOptions converts the layout and render sections.
func (c Config) ToPipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:         c.Layout.Width,
		Height:        c.Layout.Height,
		FontFamily:    c.Layout.FontFamily,
		FontWeight:    c.Layout.FontWeight,
		MinSize:       c.Layout.MinSize,
		MaxSize:       c.Layout.MaxSize,
		RotationRange: c.Layout.RotationRange,
		Spiral:        c.Layout.Spiral,
		Order:         c.Layout.Order,
		Seed:          c.Layout.Seed,
		Measurer:      c.Layout.Measurer,
		CellSize:      c.Layout.CellSize,
		MaxAttempts:   c.Layout.MaxAttempts,
		SpiralStep:    c.Layout.SpiralStep,
		RectStep:      c.Layout.RectStep,
		Formats:       append([]string(nil), c.Render.Formats...),
		Background:    c.Render.Background,
		Palette:       append([]string(nil), c.Render.Palette...),
		Scale:         c.Render.Scale,
		EmbedFont:     c.Render.EmbedFont,
	}
}
