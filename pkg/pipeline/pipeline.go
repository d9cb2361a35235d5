// Package pipeline provides the layout → render pipeline for wordcloud.
//
// This package implements the complete flow that the CLI and the HTTP API
// share. By centralizing this logic, both entry points validate options the
// same way, hit the same cache keys and store the same history records.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: place labels on the canvas with the engine from pkg/core/cloud
//  2. Save: record the layout in the history store, when one is configured
//  3. Render: generate output in various formats (SVG, PNG, PDF, JSON)
//
// Layout and render results are cached by content hash, so repeating a
// request with identical labels and options is a cache hit.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	opts := pipeline.Options{Width: 800, Height: 600, Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, labels, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	layout, stats, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, labels, opts)
//	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600

	// DefaultMinSize is the font size of the lightest label.
	DefaultMinSize = 10.0

	// DefaultMaxSize is the font size of the heaviest label.
	DefaultMaxSize = 60.0

	// DefaultFontFamily is the built-in Go font, so measurement and raster
	// output agree without system fonts.
	DefaultFontFamily = fonts.FamilyGo

	// DefaultFontWeight is the default CSS font weight.
	DefaultFontWeight = "normal"

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = cloud.DefaultSeed

	// DefaultSpiral is the default spiral.
	DefaultSpiral = "archimedean"

	// DefaultOrder is the default placement order.
	DefaultOrder = cloud.OrderNameInput

	// DefaultMeasurer is the default text measurer.
	DefaultMeasurer = fonts.MeasurerEstimate

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0
)

// ValidSpirals is the set of supported spiral names.
var ValidSpirals = map[string]bool{
	"archimedean": true,
	"rectangular": true,
}

// ValidOrders is the set of supported placement orders.
var ValidOrders = map[string]bool{
	cloud.OrderNameInput:  true,
	cloud.OrderNameWeight: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width         int     `json:"width,omitempty"`
	Height        int     `json:"height,omitempty"`
	FontFamily    string  `json:"font_family,omitempty"`
	FontWeight    string  `json:"font_weight,omitempty"`
	MinSize       float64 `json:"min_size,omitempty"`
	MaxSize       float64 `json:"max_size,omitempty"`
	RotationRange float64 `json:"rotation_range,omitempty"` // radians
	Spiral        string  `json:"spiral,omitempty"`
	Order         string  `json:"order,omitempty"`
	Seed          uint64  `json:"seed,omitempty"`
	Measurer      string  `json:"measurer,omitempty"`
	Refresh       bool    `json:"refresh,omitempty"` // Skip the layout cache

	// Tuning (zero keeps the engine default)
	CellSize    int     `json:"cell_size,omitempty"`
	MaxAttempts int     `json:"max_attempts,omitempty"`
	SpiralStep  float64 `json:"spiral_step,omitempty"`
	RectStep    float64 `json:"rect_step,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Background string   `json:"background,omitempty"`
	Palette    []string `json:"palette,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	EmbedFont  bool     `json:"embed_font,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger       `json:"-"`
	Fonts    *fonts.Library    `json:"-"`
	Progress func(cloud.Stats) `json:"-"` // Per-label placement progress; not called on cache hits

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID is the history record ID, empty when no store is configured.
	ID string

	// Layout is the placed word cloud.
	Layout render.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains placement and timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Placement  cloud.Stats
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
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

// ValidateSpiral checks that a spiral name is valid.
func ValidateSpiral(spiral string) error {
	if !ValidSpirals[spiral] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid spiral: %q (must be one of: archimedean, rectangular)", spiral)
	}
	return nil
}

// ValidateOrder checks that a placement order is valid.
func ValidateOrder(order string) error {
	if !ValidOrders[order] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid order: %q (must be one of: input, weight)", order)
	}
	return nil
}

// ValidateMeasurer checks that a measurer name is valid.
func ValidateMeasurer(kind string) error {
	for _, k := range fonts.MeasurerKinds {
		if k == kind {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid measurer: %q (must be one of: %s)", kind, strings.Join(fonts.MeasurerKinds, ", "))
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates every stage.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.FontWeight == "" {
		o.FontWeight = DefaultFontWeight
	}
	if o.MinSize == 0 {
		o.MinSize = DefaultMinSize
	}
	if o.MaxSize == 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.Spiral == "" {
		o.Spiral = DefaultSpiral
	}
	o.Spiral = strings.ToLower(o.Spiral)
	if o.Order == "" {
		o.Order = DefaultOrder
	}
	o.Order = strings.ToLower(o.Order)
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Measurer == "" {
		o.Measurer = DefaultMeasurer
	}
	o.Measurer = strings.ToLower(o.Measurer)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Fonts == nil {
		o.Fonts = fonts.Default()
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateSizeRange(o.MinSize, o.MaxSize); err != nil {
		return err
	}
	if err := errors.ValidateRotationRange(o.RotationRange); err != nil {
		return err
	}
	if o.CellSize < 0 || o.MaxAttempts < 0 || o.SpiralStep < 0 || o.RectStep < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tuning values must not be negative")
	}
	if err := ValidateSpiral(o.Spiral); err != nil {
		return err
	}
	if err := ValidateOrder(o.Order); err != nil {
		return err
	}
	return ValidateMeasurer(o.Measurer)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(render.FormatSVG)}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if o.Background == "" {
		o.Background = render.DefaultBackground
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Fonts == nil {
		o.Fonts = fonts.Default()
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %v", o.Scale)
	}
	if bg := o.Background; bg != "none" && bg != "transparent" {
		if _, ok := render.ParseColor(bg); !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid background color %q", bg)
		}
	}
	for _, c := range o.Palette {
		if _, ok := render.ParseColor(c); !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid palette color %q", c)
		}
	}
	return nil
}

// EngineConfig returns the engine configuration for these options.
func (o *Options) EngineConfig() cloud.Config {
	return cloud.Config{
		Width:         o.Width,
		Height:        o.Height,
		FontFamily:    o.FontFamily,
		FontWeight:    o.FontWeight,
		MinSize:       o.MinSize,
		MaxSize:       o.MaxSize,
		RotationRange: o.RotationRange,
		Spiral:        cloud.ParseSpiral(o.Spiral),
	}
}

// Style returns the render style for these options.
func (o *Options) Style() render.Style {
	return render.Style{Background: o.Background, Palette: o.Palette}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:         o.Width,
		Height:        o.Height,
		FontFamily:    o.FontFamily,
		FontWeight:    o.FontWeight,
		MinSize:       o.MinSize,
		MaxSize:       o.MaxSize,
		RotationRange: o.RotationRange,
		Spiral:        o.Spiral,
		Order:         o.Order,
		Seed:          o.Seed,
		CellSize:      o.CellSize,
		MaxAttempts:   o.MaxAttempts,
		SpiralStep:    o.SpiralStep,
		RectStep:      o.RectStep,
		Measurer:      o.Measurer,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
		Palette:    o.Palette,
		Scale:      o.Scale,
		EmbedFont:  o.EmbedFont,
	}
}

// describe is used in log lines.
func (o *Options) describe() string {
	return fmt.Sprintf("%dx%d %s/%s", o.Width, o.Height, o.Spiral, o.Order)
}

// Clone returns a copy that owns its slices and has not been validated,
// so it can be overlaid with request values and validated again.
func (o Options) Clone() Options {
	c := o
	c.Formats = append([]string(nil), o.Formats...)
	c.Palette = append([]string(nil), o.Palette...)
	c.validated = false
	return c
}
