package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/store"
)

// Runner encapsulates pipeline execution with caching and history.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, store and logger - it
// doesn't keep pipeline results. Multiple goroutines can safely use the
// same Runner with different options, since every layout runs on its own
// engine.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store // nil disables history
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache, keyer and store.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// A nil store disables history.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
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
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

// cachedLayout is the cache payload for a layout stage.
type cachedLayout struct {
	Layout render.Layout `json:"layout"`
	Stats  cloud.Stats   `json:"stats"`
}

// Execute runs the complete layout → save → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, labels []cloud.Label, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	layout, stats, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, labels, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.Placement = stats
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"placed", stats.Placed,
		"omitted", stats.Omitted,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Save
	id, err := r.Save(ctx, labels, layout, stats, opts)
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	result.ID = id

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo generates a layout with caching and returns cache hit info.
// opts.Refresh skips the cache lookup but still stores the fresh result.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, labels []cloud.Label, opts Options) (render.Layout, cloud.Stats, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return render.Layout{}, cloud.Stats{}, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	// Compute cache key
	labelsHash, err := cache.HashJSON(labels)
	if err != nil {
		return render.Layout{}, cloud.Stats{}, false, fmt.Errorf("hash labels: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(labelsHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cachedLayout
			if err := json.Unmarshal(data, &cached); err == nil {
				cacheHooks.OnCacheHit(ctx, "layout")
				return cached.Layout, cached.Stats, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		cacheHooks.OnCacheMiss(ctx, "layout")
	}

	// Generate layout
	hooks.OnLayoutStart(ctx, len(labels))
	start := time.Now()
	layout, stats, err := GenerateLayout(labels, opts)
	hooks.OnLayoutComplete(ctx, stats.Placed, stats.Omitted, time.Since(start), err)
	if err != nil {
		return render.Layout{}, cloud.Stats{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(cachedLayout{Layout: layout, Stats: stats}); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL); err != nil {
			r.Logger.Warn("cache layout", "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		}
	}

	return layout, stats, false, nil // Cache miss
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, labels []cloud.Label, opts Options) (render.Layout, cloud.Stats, error) {
	layout, stats, _, err := r.GenerateLayoutWithCacheInfo(ctx, labels, opts)
	return layout, stats, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit flag is true only when every requested format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout render.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	// Compute cache key from layout data
	layoutHash, err := cache.HashJSON(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			cacheHooks.OnCacheMiss(ctx, "artifact")
			break
		}
		artifacts[format] = data
	}

	if len(artifacts) == len(opts.Formats) {
		cacheHooks.OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFromLayout(layout, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout render.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Save records a layout in the history store and returns its ID.
// Without a store it returns an empty ID and no error.
func (r *Runner) Save(ctx context.Context, labels []cloud.Label, layout render.Layout, stats cloud.Stats, opts Options) (string, error) {
	if r.Store == nil {
		return "", nil
	}
	if err := opts.ValidateForLayout(); err != nil {
		return "", err
	}
	rec := &store.Record{
		Config:   opts.EngineConfig(),
		Seed:     opts.Seed,
		Order:    opts.Order,
		Measurer: opts.Measurer,
		Labels:   labels,
		Words:    layout.Words,
		Stats:    stats,
	}
	err := r.Store.Save(ctx, rec)
	observability.Pipeline().OnSave(ctx, rec.ID, err)
	if err != nil {
		return "", err
	}
	r.Logger.Debug("saved layout", "id", rec.ID, "layout", opts.describe())
	return rec.ID, nil
}

// Close releases resources held by the runner (cache and store).
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
