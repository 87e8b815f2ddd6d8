package timetable

import "time"

// DayWindow is the clipped, per-calendar-day visible interval used to
// bound and clamp item rendering. Start and End sit inside the configured
// visible-hour bracket: Start at fromHour:00:00.000 and End at
// (toHour-1):59:59.999 on the window's date.
type DayWindow struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

// BuildWindows expands a visible range into one DayWindow per calendar day
// from r.From to r.Till inclusive. Windows are strictly ordered by date,
// non-overlapping, and the sequence length always equals r.Days().
//
// The hour bracket is not validated here; callers must supply
// 0 <= fromHour < toHour <= 24.
func BuildWindows(r VisibleRange, fromHour, toHour int) []DayWindow {
	days := r.Days()
	if days <= 0 {
		return nil
	}

	windows := make([]DayWindow, 0, days)
	base := time.Date(r.From.Year(), r.From.Month(), r.From.Day(), 0, 0, 0, 0, r.From.Location())
	for i := 0; i < days; i++ {
		date := base.AddDate(0, 0, i)
		windows = append(windows, DayWindow{
			Date:  date,
			Start: NormalizeInstant(date, fromHour, 0, 0, 0, date),
			End:   NormalizeInstant(date, toHour-1, 59, 59, 999, date),
		})
	}
	return windows
}

// AssignItems returns the subset of items whose [start, end] interval
// overlaps the window under the inclusive overlap test. Input order is
// preserved. A nil item slice yields an empty result for every window;
// that is a defensive fallback, not an error.
func AssignItems[T any](items []T, w DayWindow, start, end Accessor[T]) []T {
	var out []T
	for _, item := range items {
		if OverlapsInclusive(w.Start, w.End, start(item), end(item)) {
			out = append(out, item)
		}
	}
	return out
}
