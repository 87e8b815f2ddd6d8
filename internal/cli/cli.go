package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/timegridlabs/timegrid/pkg/cache"
	"github.com/timegridlabs/timegrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "timegrid"
)

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the file cache, or by the
// null cache when caching is disabled or the cache directory is unavailable.
func newRunner(noCache bool, logger *log.Logger) (*pipeline.Runner, error) {
	c, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/timegrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// =============================================================================
// Shared Flags
// =============================================================================

// gridFlags holds the flags shared by every command that runs the layout
// pipeline: the visible date range and the geometry knobs.
type gridFlags struct {
	from       string
	till       string
	fromHour   int
	toHour     int
	hourHeight float64
	minMinutes float64
	cardWidth  float64
	cardGap    float64
}

// register binds the shared flags to cmd.
func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first visible date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&f.till, "till", "", "last visible date (YYYY-MM-DD, default = from)")
	cmd.Flags().IntVar(&f.fromHour, "from-hour", pipeline.DefaultFromHour, "first visible hour of each day")
	cmd.Flags().IntVar(&f.toHour, "to-hour", pipeline.DefaultToHour, "exclusive last visible hour of each day")
	cmd.Flags().Float64Var(&f.hourHeight, "hour-height", pipeline.DefaultHourHeight, "pixel height of one hour")
	cmd.Flags().Float64Var(&f.minMinutes, "min-minutes", pipeline.DefaultMinMinutes, "minimum rendered duration in minutes")
	cmd.Flags().Float64Var(&f.cardWidth, "card-width", pipeline.DefaultCardWidth, "card width in pixels")
	cmd.Flags().Float64Var(&f.cardGap, "card-gap", pipeline.DefaultCardGap, "horizontal gap between cards in pixels")
}

// apply copies the shared flags into pipeline options.
func (f *gridFlags) apply(opts *pipeline.Options) {
	opts.From = f.from
	opts.Till = f.till
	opts.FromHour = f.fromHour
	opts.ToHour = f.toHour
	opts.HourHeight = f.hourHeight
	opts.MinMinutes = f.minMinutes
	opts.CardWidth = f.cardWidth
	opts.CardGap = f.cardGap
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and schedule file paths.
// If output is empty, it strips the extension from the schedule path.
// If output has a format extension (.svg, .json), it strips that extension.
// This is used when generating multiple files (e.g., week.svg, week.json).
func basePath(output, schedule string) string {
	if output == "" {
		return strings.TrimSuffix(schedule, filepath.Ext(schedule))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
