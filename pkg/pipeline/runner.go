package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/timegridlabs/timegrid/pkg/cache"
	"github.com/timegridlabs/timegrid/pkg/observability"
	"github.com/timegridlabs/timegrid/pkg/schedule"
	"github.com/timegridlabs/timegrid/pkg/timetable"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	entries, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Entries = entries
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.EntryCount = len(entries)
	result.CacheInfo.LoadHit = loadHit

	// Content hash for cache keys and API responses
	if data, err := json.Marshal(entries); err == nil {
		result.ScheduleHash = cache.Hash(data)
	}

	r.Logger.Info("loaded schedule",
		"source", opts.Schedule,
		"entries", len(entries),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, entries, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.DayCount = len(l.Windows)
	result.Stats.CardCount = l.CardCount()
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"days", len(l.Windows),
		"cards", l.CardCount(),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
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

// LoadWithCacheInfo loads schedule entries with caching and returns cache hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]schedule.Entry, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// The mod time goes into the key so edits invalidate the cached parse.
	var modTime time.Time
	if info, err := os.Stat(opts.Schedule); err == nil {
		modTime = info.ModTime()
	}
	cacheKey := r.Keyer.ScheduleKey(opts.Schedule, cache.ScheduleKeyOpts{
		Format:  scheduleFormat(opts.Schedule),
		ModTime: modTime,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var entries []schedule.Entry
			if err := json.Unmarshal(data, &entries); err == nil {
				observability.Cache().OnCacheHit(ctx, "schedule")
				return entries, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "schedule")
	}

	// Load
	observability.Pipeline().OnLoadStart(ctx, opts.Schedule)
	start := time.Now()
	entries, err := LoadEntries(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, opts.Schedule, len(entries), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(entries); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSchedule)
		observability.Cache().OnCacheSet(ctx, "schedule", len(data))
	}

	return entries, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]schedule.Entry, error) {
	entries, _, err := r.LoadWithCacheInfo(ctx, opts)
	return entries, err
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, entries []schedule.Entry, opts Options) (timetable.Layout[schedule.Entry], bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return timetable.Layout[schedule.Entry]{}, false, err
	}
	r.applyLogger(&opts)

	vr, err := opts.Range()
	if err != nil {
		return timetable.Layout[schedule.Entry]{}, false, err
	}

	// Key on the exact input tuple: entries content, the resolved visible
	// range, and every geometry-affecting option.
	entryData, _ := json.Marshal(entries)
	scheduleHash := cache.Hash(entryData)
	cacheKey := r.Keyer.LayoutKey(scheduleHash, opts.LayoutKeyOpts(vr))

	// Custom resolvers are not part of the key, so skip the cache for them.
	if opts.Resolver == nil {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached timetable.Layout[schedule.Entry]
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Compute layout
	observability.Pipeline().OnLayoutStart(ctx, vr.Days(), len(entries))
	start := time.Now()
	l, err := GenerateLayout(entries, opts)
	observability.Pipeline().OnLayoutComplete(ctx, l.CardCount(), time.Since(start), err)
	if err != nil {
		return timetable.Layout[schedule.Entry]{}, false, err
	}

	// Cache the result
	if opts.Resolver == nil {
		if data, err := json.Marshal(l); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil // Cache miss
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, entries []schedule.Entry, opts Options) (timetable.Layout[schedule.Entry], error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, entries, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l timetable.Layout[schedule.Entry], opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := json.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFromLayout(l, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l timetable.Layout[schedule.Entry], opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
