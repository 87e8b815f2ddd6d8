package cli

import (
	"testing"

	"github.com/timegridlabs/timegrid/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "json", []string{"json"}},
		{"multiple formats", "svg,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		schedule string
		want     string
	}{
		{"empty output strips schedule ext", "", "week.toml", "week"},
		{"output with svg ext", "out.svg", "week.toml", "out"},
		{"output with json ext", "out.json", "week.toml", "out"},
		{"output without format ext", "out", "week.toml", "out"},
		{"output with unrelated ext", "out.bak", "week.toml", "out.bak"},
		{"schedule in directory", "", "plans/week.yaml", "plans/week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.schedule)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.schedule, got, tt.want)
			}
		})
	}
}

func TestContainsFormat(t *testing.T) {
	if !containsFormat([]string{"json", "svg"}, pipeline.FormatSVG) {
		t.Error("containsFormat should find svg")
	}
	if containsFormat([]string{"json"}, pipeline.FormatSVG) {
		t.Error("containsFormat should not find svg")
	}
}

func TestGridFlagsApply(t *testing.T) {
	f := gridFlags{
		from:       "2026-03-02",
		till:       "2026-03-06",
		fromHour:   8,
		toHour:     18,
		hourHeight: 40,
		minMinutes: 15,
		cardWidth:  200,
		cardGap:    8,
	}

	var opts pipeline.Options
	f.apply(&opts)

	if opts.From != "2026-03-02" || opts.Till != "2026-03-06" {
		t.Errorf("apply() range = %q..%q, want 2026-03-02..2026-03-06", opts.From, opts.Till)
	}
	if opts.FromHour != 8 || opts.ToHour != 18 {
		t.Errorf("apply() hours = %d..%d, want 8..18", opts.FromHour, opts.ToHour)
	}
	if opts.HourHeight != 40 || opts.CardWidth != 200 {
		t.Errorf("apply() geometry = %v/%v, want 40/200", opts.HourHeight, opts.CardWidth)
	}
}
