package timetable

import (
	"time"

	"github.com/timegridlabs/timegrid/pkg/timetable/overlap"
)

// Accessor extracts a start or end instant from a caller-supplied item.
// Items are opaque to the engine beyond these two fields.
type Accessor[T any] func(T) time.Time

// Config holds the geometry-affecting knobs of the engine. The hour
// bracket is never validated; callers must keep 0 <= FromHour < ToHour <= 24.
type Config struct {
	// FromHour and ToHour bound the visible hour bracket of every day
	// window.
	FromHour int
	ToHour   int

	// HourHeight is the pixel height of one hour on the vertical axis.
	HourHeight float64

	// MinMinutes is the minimum rendered duration; shorter items are
	// extended so their cards stay tappable.
	MinMinutes float64

	// LinesTopOffset and LinesLeftInset locate the grid origin.
	LinesTopOffset float64
	LinesLeftInset float64

	// CardWidth is the fixed width of every card; CardGap the horizontal
	// spacing between sequentially placed cards.
	CardWidth float64
	CardGap   float64
}

// Column is the rendered region for one day window: the window plus its
// positioned cards, in per-event index order.
type Column[T any] struct {
	Window DayWindow
	Cards  []Card[T]
}

// Layout is the result of one computation pass. It is fully derived; no
// part of it is mutated after Compute returns.
type Layout[T any] struct {
	Windows    []DayWindow
	Columns    []Column[T]
	TotalWidth float64
}

// Engine computes timetable layouts for items of type T.
type Engine[T any] struct {
	cfg      Config
	start    Accessor[T]
	end      Accessor[T]
	resolver overlap.Resolver[T]
}

// Option configures an Engine.
type Option[T any] func(*Engine[T])

// WithResolver replaces the default sequential overlap resolver.
func WithResolver[T any](r overlap.Resolver[T]) Option[T] {
	return func(e *Engine[T]) { e.resolver = r }
}

// New creates an engine with the given config and item accessors.
func New[T any](cfg Config, start, end Accessor[T], opts ...Option[T]) *Engine[T] {
	e := &Engine[T]{
		cfg:      cfg,
		start:    start,
		end:      end,
		resolver: overlap.NewSequential[T](),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine[T]) Config() Config { return e.cfg }

// Compute runs one full layout pass: windows are built for the range, each
// window receives its overlapping items, the overlap resolver annotates
// them, and every prepared event is positioned inside its window. The call
// is synchronous and side-effect free; identical inputs produce identical
// layouts.
func (e *Engine[T]) Compute(items []T, r VisibleRange) Layout[T] {
	windows := BuildWindows(r, e.cfg.FromHour, e.cfg.ToHour)

	columns := make([]Column[T], len(windows))
	for i, w := range windows {
		dayItems := AssignItems(items, w, e.start, e.end)
		events := e.resolver.Resolve(w.Date, dayItems, e.cfg.MinMinutes, e.start, e.end)

		cards := make([]Card[T], len(events))
		for j, ev := range events {
			cards[j] = positionCard(ev, w, j, e.cfg)
		}
		columns[i] = Column[T]{Window: w, Cards: cards}
	}

	return Layout[T]{
		Windows:    windows,
		Columns:    columns,
		TotalWidth: CanvasWidth(e.cfg, len(items)),
	}
}

// ForEachCard visits every positioned card in render order: day columns
// first, then per-event index within each day. This is the render
// boundary; sinks and viewers consume cards exclusively through it.
func (l Layout[T]) ForEachCard(fn func(Card[T])) {
	for _, col := range l.Columns {
		for _, c := range col.Cards {
			fn(c)
		}
	}
}

// Cards flattens the layout into a single slice in render order.
func (l Layout[T]) Cards() []Card[T] {
	var out []Card[T]
	l.ForEachCard(func(c Card[T]) { out = append(out, c) })
	return out
}

// CardCount returns the total number of positioned cards.
func (l Layout[T]) CardCount() int {
	n := 0
	for _, col := range l.Columns {
		n += len(col.Cards)
	}
	return n
}
