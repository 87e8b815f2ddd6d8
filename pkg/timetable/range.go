package timetable

import "time"

// VisibleRange is the concrete [From, Till] instant pair the engine lays
// out. From never exceeds Till when produced by NormalizeRange.
type VisibleRange struct {
	From time.Time
	Till time.Time
}

// NormalizeRange resolves optional range endpoints into a concrete
// VisibleRange. Each zero endpoint defaults to now, so an absent range
// resolves to today: From becomes the start of its day (00:00:00.000) and
// Till the end of its day (23:59:59.999). There is no error path.
func NormalizeRange(from, till time.Time, now time.Time) VisibleRange {
	return VisibleRange{
		From: NormalizeInstant(from, 0, 0, 0, 0, now),
		Till: NormalizeInstant(till, 23, 59, 59, 999, now),
	}
}

// NormalizeDate builds the VisibleRange for a single calendar day: both
// endpoints derive from date. A zero date resolves to today.
func NormalizeDate(date time.Time, now time.Time) VisibleRange {
	return NormalizeRange(date, date, now)
}

// Days returns the number of day windows this range spans.
func (r VisibleRange) Days() int {
	return WholeDayDiff(r.From, r.Till) + 1
}
