package timetable

import (
	"math"
	"time"
)

// NormalizeInstant returns date with its clock fields replaced by the given
// hour, minute, second and millisecond. A zero date resolves to now, so
// absent inputs always default to the current day rather than erroring.
func NormalizeInstant(date time.Time, hour, min, sec, ms int, now time.Time) time.Time {
	if date.IsZero() {
		date = now
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, sec, ms*int(time.Millisecond), date.Location())
}

// WholeDayDiff returns the whole calendar-day count between a and b,
// ignoring the time of day on either side. The result is negative when b
// precedes a. Daylight-saving transitions do not skew the count.
func WholeDayDiff(a, b time.Time) int {
	a0 := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	b0 := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(math.Round(b0.Sub(a0).Hours() / 24))
}

// MinutesBetween returns the duration from a to b in minutes. The result
// may be fractional and is negative when b precedes a.
func MinutesBetween(a, b time.Time) float64 {
	return b.Sub(a).Minutes()
}

// OverlapsInclusive reports whether [itemStart, itemEnd] intersects
// [windowStart, windowEnd]. Both ends are inclusive: intervals that merely
// touch a boundary count as overlapping.
func OverlapsInclusive(windowStart, windowEnd, itemStart, itemEnd time.Time) bool {
	return !itemEnd.Before(windowStart) && !itemStart.After(windowEnd)
}
