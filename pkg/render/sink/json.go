package sink

import (
	"encoding/json"
	"time"

	"github.com/timegridlabs/timegrid/pkg/schedule"
	"github.com/timegridlabs/timegrid/pkg/timetable"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithCompact emits the JSON without indentation, for piping into other
// tools or over the API.
func WithCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	TotalWidth float64   `json:"total_width"`
	Days       []jsonDay `json:"days"`
}

type jsonDay struct {
	Date  string     `json:"date"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Cards []jsonCard `json:"cards"`
}

type jsonCard struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DaysTotal   int       `json:"days_total"`
	Cluster     int       `json:"cluster"`
	Slot        int       `json:"slot"`
	ClusterSize int       `json:"cluster_size"`

	Top      float64 `json:"top"`
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	ZIndex   int     `json:"z_index"`
	Position string  `json:"position"`
}

// RenderJSON exports the layout as a JSON document: one object per day
// window, each holding its positioned cards, plus the total canvas width.
// This is the primary interchange format, used verbatim by the HTTP API.
//
// RenderJSON returns an error only if JSON marshaling fails (should not
// happen with well-formed layouts). It does not modify l and is safe to
// call concurrently.
func RenderJSON(l timetable.Layout[schedule.Entry], opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		TotalWidth: l.TotalWidth,
		Days:       make([]jsonDay, 0, len(l.Columns)),
	}

	for _, col := range l.Columns {
		day := jsonDay{
			Date:  col.Window.Date.Format("2006-01-02"),
			Start: col.Window.Start,
			End:   col.Window.End,
			Cards: make([]jsonCard, 0, len(col.Cards)),
		}
		for _, c := range col.Cards {
			day.Cards = append(day.Cards, jsonCard{
				Key:         c.Key,
				Title:       c.Event.Item.Title,
				Location:    c.Event.Item.Location,
				Start:       c.Event.Start,
				End:         c.Event.End,
				DaysTotal:   c.DaysTotal,
				Cluster:     c.Event.Cluster,
				Slot:        c.Event.Slot,
				ClusterSize: c.Event.ClusterSize,
				Top:         c.Geometry.Top,
				Left:        c.Geometry.Left,
				Width:       c.Geometry.Width,
				Height:      c.Geometry.Height,
				ZIndex:      c.Geometry.ZIndex,
				Position:    c.Geometry.Position,
			})
		}
		out.Days = append(out.Days, day)
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
