// Package schedule provides the concrete item type laid out by the
// timetable engine, plus loaders for schedule files (TOML, YAML) and ICS
// calendar feeds.
//
// The engine itself is generic; Entry is the shape this tool ships.
// Accessors for the engine are exported as StartOf/EndOf so every caller
// wires the same pair.
package schedule

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/timegridlabs/timegrid/pkg/errors"
)

// Entry is one time-ranged schedule item.
type Entry struct {
	Title    string    `json:"title" toml:"title" yaml:"title"`
	Location string    `json:"location,omitempty" toml:"location,omitempty" yaml:"location,omitempty"`
	Start    time.Time `json:"start" toml:"start" yaml:"start"`
	End      time.Time `json:"end" toml:"end" yaml:"end"`
}

// StartOf and EndOf are the engine accessors for Entry.
func StartOf(e Entry) time.Time { return e.Start }
func EndOf(e Entry) time.Time   { return e.End }

// Duration returns the entry's true duration.
func (e Entry) Duration() time.Duration { return e.End.Sub(e.Start) }

// Validate reports entries the layout engine cannot position meaningfully.
// The engine itself never checks this; loaders do it so bad files fail at
// the boundary instead of producing undefined geometry.
func (e Entry) Validate() error {
	if e.Start.IsZero() || e.End.IsZero() {
		return errors.New(errors.ErrCodeInvalidSchedule, "entry %q is missing a start or end instant", e.Title)
	}
	if e.End.Before(e.Start) {
		return errors.New(errors.ErrCodeInvalidSchedule, "entry %q ends before it starts", e.Title)
	}
	return nil
}

// Load reads a schedule file, picking the format from the file extension:
// .toml, .yaml or .yml. Entries are returned sorted by start instant.
func Load(path string) ([]Entry, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return LoadTOML(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported schedule format %q (must be .toml, .yaml, or .yml)", ext)
	}
}

// SortByStart orders entries by start instant, then end, then title. Ties
// are broken deterministically so layout output stays stable across runs.
func SortByStart(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.End.Equal(b.End) {
			return a.End.Before(b.End)
		}
		return a.Title < b.Title
	})
}

// validateAll checks every entry and wraps the first failure with its
// position in the file.
func validateAll(entries []Entry) error {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return nil
}
