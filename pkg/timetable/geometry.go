package timetable

import (
	"time"

	"github.com/timegridlabs/timegrid/pkg/timetable/overlap"
)

// CardZIndex layers cards above the background hour grid.
const CardZIndex = 2

// PositionAbsolute is the positioning mode recorded on every card; cards
// are always placed at absolute pixel coordinates inside their column.
const PositionAbsolute = "absolute"

// Geometry is the absolute pixel placement of one card.
type Geometry struct {
	Top      float64 `json:"top"`
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	ZIndex   int     `json:"z_index"`
	Position string  `json:"position"`
}

// Card is the engine's sole output unit: one item's rendered geometry
// within one day window. An item spanning N windows yields N cards, each
// independently clamped to its window. DaysTotal is computed from the
// item's un-clamped interval so render callbacks can draw continuation
// markers.
type Card[T any] struct {
	Key       string
	Event     overlap.Prepared[T]
	DaysTotal int
	Geometry  Geometry
}

// MinuteHeight returns the pixel height of one minute for this config.
func (c Config) MinuteHeight() float64 {
	return c.HourHeight / 60
}

// positionCard converts one prepared event into absolute pixel geometry
// inside its day window.
//
// The rendered interval is the event's true interval clamped to the
// window, with two adjustments: the end is floored to the minimum duration
// (MinEnd) before clamping, and the window end gains one millisecond so an
// event running to 23:59:59.999 fills the final minute exactly.
func positionCard[T any](ev overlap.Prepared[T], w DayWindow, index int, cfg Config) Card[T] {
	renderStart := ev.Start
	if renderStart.Before(w.Start) {
		renderStart = w.Start
	}
	renderEnd := ev.MinEnd
	if limit := w.End.Add(time.Millisecond); renderEnd.After(limit) {
		renderEnd = limit
	}

	// Clamping can pull renderStart below the visible bracket when the
	// window starts mid-day; the hour offset must never go negative.
	hoursOffset := renderStart.Hour() - cfg.FromHour
	if hoursOffset < 0 {
		hoursOffset = 0
	}
	minutesOffset := renderStart.Minute()

	minuteHeight := cfg.MinuteHeight()
	return Card[T]{
		Key:       ev.Key,
		Event:     ev,
		DaysTotal: WholeDayDiff(ev.Start, ev.End) + 1,
		Geometry: Geometry{
			Top:      float64(hoursOffset*60+minutesOffset)*minuteHeight + cfg.LinesTopOffset,
			Left:     cfg.LinesLeftInset + (cfg.CardWidth+cfg.CardGap)*float64(index),
			Width:    cfg.CardWidth,
			Height:   MinutesBetween(renderStart, renderEnd) * minuteHeight,
			ZIndex:   CardZIndex,
			Position: PositionAbsolute,
		},
	}
}

// CanvasWidth derives the total scrollable width needed to fit all
// positioned cards. totalItems is the size of the entire input item list,
// not the maximum concurrent count in any single day.
func CanvasWidth(cfg Config, totalItems int) float64 {
	return cfg.LinesLeftInset + (cfg.CardWidth+cfg.CardGap)*float64(totalItems)
}
