// Package cache provides pluggable byte caches and deterministic cache
// keys for the layout pipeline.
//
// Three backends are available:
//   - FileCache: on-disk cache for CLI usage
//   - RedisCache: shared cache for the HTTP server
//   - NullCache: no-op cache for tests or --no-cache runs
//
// Keys are built by a Keyer so every pipeline stage (schedule load, layout
// compute, rendered artifact) caches under a stable, collision-resistant
// name derived from its inputs.
package cache

import (
	"context"
	"time"
)

// TTLs for the pipeline stages. Schedules expire quickly so edited files
// are picked up; layouts and artifacts are pure functions of their keys
// and can live longer.
const (
	TTLSchedule = 15 * time.Minute
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface used by the pipeline.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ScheduleKeyOpts identifies a loaded schedule file.
type ScheduleKeyOpts struct {
	Format  string    // toml, yaml, ics
	ModTime time.Time // file modification time, zero for remote feeds
}

// LayoutKeyOpts identifies a computed layout. Every field that changes
// card geometry must appear here, otherwise stale layouts survive option
// changes. From and Till hold the resolved range endpoints, so defaulted
// ranges ("today") key differently on different days.
type LayoutKeyOpts struct {
	From           string
	Till           string
	FromHour       int
	ToHour         int
	HourHeight     float64
	MinMinutes     float64
	CardWidth      float64
	CardGap        float64
	LinesTopOffset float64
	LinesLeftInset float64
}

// ArtifactKeyOpts identifies a rendered artifact.
type ArtifactKeyOpts struct {
	Format string // json, svg
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// ScheduleKey generates a key for a parsed schedule.
	ScheduleKey(path string, opts ScheduleKeyOpts) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(scheduleHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes stage inputs into namespaced SHA-256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ScheduleKey generates a key for a parsed schedule.
func (k *DefaultKeyer) ScheduleKey(path string, opts ScheduleKeyOpts) string {
	return hashKey("schedule", path, opts.Format, opts.ModTime.UnixNano())
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(scheduleHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", scheduleHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts.Format)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
