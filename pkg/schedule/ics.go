package schedule

import (
	"bytes"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/timegridlabs/timegrid/pkg/errors"
)

// maxOccurrencesPerEvent caps RRULE expansion so a malformed or unbounded
// rule cannot blow up memory.
const maxOccurrencesPerEvent = 1000

// ICSOptions controls how an ICS feed is turned into schedule entries.
type ICSOptions struct {
	// RangeStart and RangeEnd bound recurrence expansion. Both must be set
	// when the feed contains RRULEs; non-recurring events outside the range
	// are dropped too.
	RangeStart time.Time
	RangeEnd   time.Time

	// Location is the timezone entries are converted into. Defaults to
	// time.Local.
	Location *time.Location
}

// LoadICS reads an ICS calendar file and expands it into entries within
// the option range.
func LoadICS(path string, opts ICSOptions) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "calendar file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to read calendar file %s", path)
	}
	return ParseICS(data, opts)
}

// ParseICS decodes ICS bytes and expands recurring events.
func ParseICS(data []byte, opts ICSOptions) ([]Entry, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty ICS payload")
	}
	if opts.RangeEnd.Before(opts.RangeStart) {
		return nil, errors.New(errors.ErrCodeInvalidRange, "ICS range end is before range start")
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse ICS calendar")
	}

	entries := make([]Entry, 0)
	for _, ve := range cal.Events() {
		expanded, eerr := expandEvent(ve, opts)
		if eerr != nil {
			return nil, eerr
		}
		entries = append(entries, expanded...)
	}

	SortByStart(entries)
	return entries, nil
}

// expandEvent converts a single VEVENT into zero or more entries. Events
// with an RRULE are expanded with occurrences clipped to the option range
// and EXDATE instants excluded; plain events pass through when they
// intersect it.
func expandEvent(ve *ical.VEvent, opts ICSOptions) ([]Entry, error) {
	start, err := ve.GetStartAt()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "VEVENT has no usable DTSTART")
	}
	end, err := ve.GetEndAt()
	if err != nil {
		// DTEND is optional; a missing end means a zero-length event.
		end = start
	}

	title := ""
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		title = p.Value
	}
	location := ""
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		location = p.Value
	}

	rruleProp := ve.GetProperty(ical.ComponentPropertyRrule)
	if rruleProp == nil || rruleProp.Value == "" {
		if !OverlapsRange(start, end, opts.RangeStart, opts.RangeEnd) {
			return nil, nil
		}
		return []Entry{{
			Title:    title,
			Location: location,
			Start:    start.In(opts.Location),
			End:      end.In(opts.Location),
		}}, nil
	}

	rule, err := rrule.StrToRRule(rruleProp.Value)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse RRULE %q", rruleProp.Value)
	}
	rule.DTStart(start)

	// Cancelled occurrences are removed through a rule set so that EXDATE
	// instants never surface from Between.
	var set rrule.Set
	set.RRule(rule)
	for _, ex := range exceptionDates(ve, start.Location()) {
		set.ExDate(ex.In(start.Location()))
	}

	rangeStart := opts.RangeStart.In(start.Location())
	rangeEnd := opts.RangeEnd.In(start.Location())
	occurrences := set.Between(rangeStart, rangeEnd, true)
	if len(occurrences) > maxOccurrencesPerEvent {
		occurrences = occurrences[:maxOccurrencesPerEvent]
	}

	duration := end.Sub(start)
	entries := make([]Entry, 0, len(occurrences))
	for _, occ := range occurrences {
		entries = append(entries, Entry{
			Title:    title,
			Location: location,
			Start:    occ.In(opts.Location),
			End:      occ.Add(duration).In(opts.Location),
		})
	}
	return entries, nil
}

// exceptionDates collects every EXDATE instant declared on a VEVENT. The
// property may repeat and each value may hold a comma-separated list.
// Unparseable values are skipped rather than failing the whole event.
func exceptionDates(ve *ical.VEvent, loc *time.Location) []time.Time {
	var out []time.Time
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseExDate(part, loc); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// parseExDate parses the basic EXDATE forms: UTC date-time, floating
// date-time, and bare date. Floating forms resolve in loc.
func parseExDate(v string, loc *time.Location) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, loc)
	}
	return time.ParseInLocation("20060102", v, loc)
}

// OverlapsRange reports whether [aStart, aEnd] intersects [bStart, bEnd],
// boundaries included.
func OverlapsRange(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}
