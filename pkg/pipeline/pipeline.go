// Package pipeline provides the core layout pipeline for Timegrid.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI, API, and viewer components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read schedule entries from TOML/YAML files or ICS feeds
//  2. Layout: Compute pixel geometry for every entry in the visible range
//  3. Render: Generate output in various formats (JSON, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Schedule: "week.toml",
//	    From:     "2026-03-02",
//	    Till:     "2026-03-06",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	entries, err := runner.Load(ctx, opts)
//
//	// Layout with existing entries
//	layout, err := runner.GenerateLayout(ctx, entries, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/timegridlabs/timegrid/pkg/cache"
	"github.com/timegridlabs/timegrid/pkg/errors"
	"github.com/timegridlabs/timegrid/pkg/schedule"
	"github.com/timegridlabs/timegrid/pkg/timetable"
	"github.com/timegridlabs/timegrid/pkg/timetable/overlap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Viewer
// =============================================================================

const (
	// DefaultFromHour is the first visible hour of each day column.
	DefaultFromHour = 0

	// DefaultToHour is the exclusive last visible hour of each day column.
	DefaultToHour = 24

	// DefaultHourHeight is the default pixel height of one hour.
	DefaultHourHeight = 60.0

	// DefaultMinMinutes is the minimum rendered duration in minutes. Very
	// short entries are drawn at least this tall so they stay clickable.
	DefaultMinMinutes = 25.0

	// DefaultCardWidth is the fixed card width in pixels.
	DefaultCardWidth = 220.0

	// DefaultCardGap is the horizontal gap between cards in pixels.
	DefaultCardGap = 10.0

	// DefaultLinesTopOffset is the vertical grid origin in pixels.
	DefaultLinesTopOffset = 20.0

	// DefaultLinesLeftInset is the horizontal grid origin in pixels.
	DefaultLinesLeftInset = 48.0

	// DefaultTimeWidth is the width of the hour-axis gutter in pixels.
	DefaultTimeWidth = 48.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
}

// dateLayouts are the accepted forms for the From/Till options.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	time.RFC3339,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Schedule string `json:"schedule,omitempty"` // path to a .toml/.yaml/.yml/.ics file
	Refresh  bool   `json:"refresh,omitempty"`  // bypass the schedule cache

	// Visible range. Empty values default to "today". A From without a
	// Till means a single-day view.
	From string `json:"from,omitempty"`
	Till string `json:"till,omitempty"`

	// Layout options
	FromHour       int     `json:"from_hour,omitempty"`
	ToHour         int     `json:"to_hour,omitempty"`
	HourHeight     float64 `json:"hour_height,omitempty"`
	MinMinutes     float64 `json:"min_minutes,omitempty"`
	CardWidth      float64 `json:"card_width,omitempty"`
	CardGap        float64 `json:"card_gap,omitempty"`
	LinesTopOffset float64 `json:"lines_top_offset,omitempty"`
	LinesLeftInset float64 `json:"lines_left_inset,omitempty"`

	// Render and viewer options
	Formats     []string `json:"formats,omitempty"`
	TimeWidth   float64  `json:"time_width,omitempty"`
	HideNowLine bool     `json:"hide_now_line,omitempty"`

	// Viewer-only options, carried here so the view command and the API
	// share one options shape.
	StickyHours    bool `json:"sticky_hours,omitempty"`
	EnableSnapping bool `json:"enable_snapping,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger                      `json:"-"`
	Resolver overlap.Resolver[schedule.Entry] `json:"-"`
	Now      time.Time                        `json:"-"` // test seam; zero means time.Now

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Entries are the loaded schedule entries.
	Entries []schedule.Entry

	// ScheduleHash is the content hash of the loaded entries.
	ScheduleHash string

	// Layout contains the computed day columns and card geometry.
	Layout timetable.Layout[schedule.Entry]

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntryCount int
	DayCount   int
	CardCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether loaded entries came from cache
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateHours checks the visible hour bracket. The layout engine does
// not validate this itself, so every entry point goes through here.
func ValidateHours(fromHour, toHour int) error {
	if fromHour < 0 || toHour > 24 || fromHour >= toHour {
		return errors.New(errors.ErrCodeInvalidHours,
			"invalid hour bracket %d..%d (need 0 <= from < to <= 24)", fromHour, toHour)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
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

// ValidateForLoad checks required fields for schedule loading.
func (o *Options) ValidateForLoad() error {
	if o.Schedule == "" {
		return errors.New(errors.ErrCodeInvalidInput, "schedule is required")
	}
	if _, err := o.Range(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.ToHour == 0 {
		o.ToHour = DefaultToHour
	}
	if o.HourHeight == 0 {
		o.HourHeight = DefaultHourHeight
	}
	if o.MinMinutes == 0 {
		o.MinMinutes = DefaultMinMinutes
	}
	if o.CardWidth == 0 {
		o.CardWidth = DefaultCardWidth
	}
	if o.CardGap == 0 {
		o.CardGap = DefaultCardGap
	}
	if o.LinesTopOffset == 0 {
		o.LinesTopOffset = DefaultLinesTopOffset
	}
	if o.LinesLeftInset == 0 {
		o.LinesLeftInset = DefaultLinesLeftInset
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateHours(o.FromHour, o.ToHour)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.TimeWidth == 0 {
		o.TimeWidth = DefaultTimeWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateHours(o.FromHour, o.ToHour); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// Range resolves the From/Till options into a normalized visible range. A
// missing Till mirrors From (single-day view); both missing means today.
func (o *Options) Range() (timetable.VisibleRange, error) {
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}

	from, err := parseDate(o.From)
	if err != nil {
		return timetable.VisibleRange{}, err
	}
	till, err := parseDate(o.Till)
	if err != nil {
		return timetable.VisibleRange{}, err
	}
	if till.IsZero() {
		till = from
	}
	if !from.IsZero() && till.Before(from) {
		return timetable.VisibleRange{}, errors.New(errors.ErrCodeInvalidRange,
			"till %s is before from %s", o.Till, o.From)
	}
	return timetable.NormalizeRange(from, till, now), nil
}

// EngineConfig builds the layout engine configuration from the options.
func (o *Options) EngineConfig() timetable.Config {
	return timetable.Config{
		FromHour:       o.FromHour,
		ToHour:         o.ToHour,
		HourHeight:     o.HourHeight,
		MinMinutes:     o.MinMinutes,
		CardWidth:      o.CardWidth,
		CardGap:        o.CardGap,
		LinesTopOffset: o.LinesTopOffset,
		LinesLeftInset: o.LinesLeftInset,
	}
}

// LayoutKeyOpts returns cache key options for layout computation. The key
// carries the resolved range, not the raw From/Till strings: when both are
// empty the range defaults to "today", and keying on the empty strings
// would serve yesterday's layout as a hit after midnight.
func (o *Options) LayoutKeyOpts(vr timetable.VisibleRange) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		From:           vr.From.Format(time.RFC3339Nano),
		Till:           vr.Till.Format(time.RFC3339Nano),
		FromHour:       o.FromHour,
		ToHour:         o.ToHour,
		HourHeight:     o.HourHeight,
		MinMinutes:     o.MinMinutes,
		CardWidth:      o.CardWidth,
		CardGap:        o.CardGap,
		LinesTopOffset: o.LinesTopOffset,
		LinesLeftInset: o.LinesLeftInset,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}

// parseDate parses a From/Till value. An empty string maps to the zero
// time, which the range normalizer resolves to "now".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidRange,
		"unparsable date %q (want YYYY-MM-DD or RFC 3339)", s)
}
