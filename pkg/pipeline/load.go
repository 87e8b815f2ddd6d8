package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/timegridlabs/timegrid/pkg/schedule"
)

// LoadEntries reads the schedule named in the options. TOML and YAML files
// load directly; ICS feeds are expanded over the visible range so
// recurring events become concrete entries.
func LoadEntries(ctx context.Context, opts Options) ([]schedule.Entry, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	if scheduleFormat(opts.Schedule) == "ics" {
		r, err := opts.Range()
		if err != nil {
			return nil, err
		}
		return schedule.LoadICS(opts.Schedule, schedule.ICSOptions{
			RangeStart: r.From,
			RangeEnd:   r.Till,
		})
	}
	return schedule.Load(opts.Schedule)
}

// scheduleFormat maps a schedule path to its format name for cache keys.
func scheduleFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "yml" {
		return "yaml"
	}
	return ext
}
