package timetable

import (
	"testing"
	"time"
)

func TestNormalizeRange(t *testing.T) {
	now := date(2026, time.March, 14, 15, 30)

	tests := []struct {
		name       string
		from, till time.Time
		wantFrom   time.Time
		wantTill   time.Time
	}{
		{
			name:     "explicit pair",
			from:     date(2026, time.March, 10, 11, 0),
			till:     date(2026, time.March, 12, 16, 0),
			wantFrom: date(2026, time.March, 10, 0, 0),
			wantTill: time.Date(2026, time.March, 12, 23, 59, 59, 999*int(time.Millisecond), time.UTC),
		},
		{
			name:     "absent range resolves to today",
			wantFrom: date(2026, time.March, 14, 0, 0),
			wantTill: time.Date(2026, time.March, 14, 23, 59, 59, 999*int(time.Millisecond), time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRange(tt.from, tt.till, now)
			if !got.From.Equal(tt.wantFrom) {
				t.Errorf("From = %v, want %v", got.From, tt.wantFrom)
			}
			if !got.Till.Equal(tt.wantTill) {
				t.Errorf("Till = %v, want %v", got.Till, tt.wantTill)
			}
		})
	}
}

func TestNormalizeDateSingleDay(t *testing.T) {
	now := date(2026, time.March, 14, 15, 30)
	r := NormalizeDate(date(2026, time.April, 2, 13, 0), now)

	if got := r.Days(); got != 1 {
		t.Fatalf("Days() = %d, want 1", got)
	}
	if !r.From.Equal(date(2026, time.April, 2, 0, 0)) {
		t.Errorf("From = %v, want start of day", r.From)
	}
	if r.Till.Hour() != 23 || r.Till.Minute() != 59 || r.Till.Second() != 59 {
		t.Errorf("Till = %v, want end of day", r.Till)
	}
}

func TestBuildWindowsCount(t *testing.T) {
	now := date(2026, time.March, 14, 15, 30)

	tests := []struct {
		name       string
		from, till time.Time
		want       int
	}{
		{
			name: "single day",
			from: date(2026, time.March, 10, 9, 0),
			till: date(2026, time.March, 10, 17, 0),
			want: 1,
		},
		{
			name: "five days",
			from: date(2026, time.March, 10, 9, 0),
			till: date(2026, time.March, 14, 17, 0),
			want: 5,
		},
		{
			name: "month boundary",
			from: date(2026, time.January, 30, 0, 0),
			till: date(2026, time.February, 2, 0, 0),
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NormalizeRange(tt.from, tt.till, now)
			windows := BuildWindows(r, 0, 24)
			if len(windows) != tt.want {
				t.Fatalf("len(windows) = %d, want %d", len(windows), tt.want)
			}
			if len(windows) != r.Days() {
				t.Errorf("window count %d disagrees with Days() %d", len(windows), r.Days())
			}
			for i := 1; i < len(windows); i++ {
				if !windows[i].Date.After(windows[i-1].Date) {
					t.Errorf("windows not strictly ordered at %d", i)
				}
			}
		})
	}
}

func TestBuildWindowsHourBracket(t *testing.T) {
	now := date(2026, time.March, 14, 15, 30)
	r := NormalizeDate(date(2026, time.March, 10, 0, 0), now)

	windows := BuildWindows(r, 8, 18)
	if len(windows) != 1 {
		t.Fatalf("len(windows) = %d, want 1", len(windows))
	}

	w := windows[0]
	if !w.Start.Equal(date(2026, time.March, 10, 8, 0)) {
		t.Errorf("Start = %v, want 08:00", w.Start)
	}
	want := time.Date(2026, time.March, 10, 17, 59, 59, 999*int(time.Millisecond), time.UTC)
	if !w.End.Equal(want) {
		t.Errorf("End = %v, want %v", w.End, want)
	}
}

type span struct {
	name string
	s, e time.Time
}

func spanStart(v span) time.Time { return v.s }
func spanEnd(v span) time.Time   { return v.e }

func TestAssignItems(t *testing.T) {
	w := DayWindow{
		Date:  date(2026, time.March, 10, 0, 0),
		Start: date(2026, time.March, 10, 8, 0),
		End:   time.Date(2026, time.March, 10, 17, 59, 59, 999*int(time.Millisecond), time.UTC),
	}

	items := []span{
		{name: "inside", s: date(2026, time.March, 10, 9, 0), e: date(2026, time.March, 10, 10, 0)},
		{name: "before bracket", s: date(2026, time.March, 10, 5, 0), e: date(2026, time.March, 10, 6, 0)},
		{name: "touching start", s: date(2026, time.March, 10, 6, 0), e: w.Start},
		{name: "spanning", s: date(2026, time.March, 9, 12, 0), e: date(2026, time.March, 11, 12, 0)},
		{name: "next day", s: date(2026, time.March, 11, 9, 0), e: date(2026, time.March, 11, 10, 0)},
	}

	got := AssignItems(items, w, spanStart, spanEnd)
	want := []string{"inside", "touching start", "spanning"}
	if len(got) != len(want) {
		t.Fatalf("assigned %d items, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].name != name {
			t.Errorf("got[%d] = %q, want %q (input order must be preserved)", i, got[i].name, name)
		}
	}
}

func TestAssignItemsNilList(t *testing.T) {
	w := DayWindow{
		Start: date(2026, time.March, 10, 0, 0),
		End:   date(2026, time.March, 10, 23, 59),
	}
	if got := AssignItems(nil, w, spanStart, spanEnd); len(got) != 0 {
		t.Errorf("AssignItems(nil) = %d items, want 0", len(got))
	}
}
