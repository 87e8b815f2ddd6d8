package sink

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/timegridlabs/timegrid/pkg/schedule"
	"github.com/timegridlabs/timegrid/pkg/timetable"
)

// headerHeight is the vertical room for the date labels above each column.
const headerHeight = 24.0

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	timeWidth   float64
	hideNowLine bool
	now         time.Time
}

// WithTimeWidth sets the width of the hour-axis gutter on the left edge.
func WithTimeWidth(w float64) SVGOption { return func(r *svgRenderer) { r.timeWidth = w } }

// WithHiddenNowLine suppresses the current-time indicator.
func WithHiddenNowLine() SVGOption { return func(r *svgRenderer) { r.hideNowLine = true } }

// WithNow overrides the instant used for the now-line. Without it the wall
// clock is used.
func WithNow(t time.Time) SVGOption { return func(r *svgRenderer) { r.now = t } }

var svgEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// RenderSVG draws the timetable as a standalone SVG: an hour gutter, one
// column per day window with its hour grid, and the positioned cards. Card
// coordinates come straight from the layout geometry; each column is
// translated into place after the gutter.
func RenderSVG(l timetable.Layout[schedule.Entry], cfg timetable.Config, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{timeWidth: cfg.LinesLeftInset}
	for _, opt := range opts {
		opt(&r)
	}
	if r.now.IsZero() {
		r.now = time.Now()
	}

	gridHeight := float64(cfg.ToHour-cfg.FromHour)*cfg.HourHeight + cfg.LinesTopOffset
	totalHeight := headerHeight + gridHeight + cfg.LinesTopOffset

	colWidths := make([]float64, len(l.Columns))
	totalWidth := r.timeWidth
	for i, col := range l.Columns {
		colWidths[i] = columnWidth(col, cfg)
		totalWidth += colWidths[i]
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="sans-serif">`+"\n",
		totalWidth, totalHeight, totalWidth, totalHeight)

	renderHourGutter(&buf, cfg)

	x := r.timeWidth
	for i, col := range l.Columns {
		renderColumn(&buf, &r, col, cfg, x, colWidths[i])
		x += colWidths[i]
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// columnWidth sizes one day column: the grid inset plus one card slot per
// positioned card, with room for at least one slot on empty days.
func columnWidth(col timetable.Column[schedule.Entry], cfg timetable.Config) float64 {
	slots := len(col.Cards)
	if slots == 0 {
		slots = 1
	}
	return cfg.LinesLeftInset + float64(slots)*(cfg.CardWidth+cfg.CardGap)
}

func renderHourGutter(buf *bytes.Buffer, cfg timetable.Config) {
	fmt.Fprintf(buf, `<g transform="translate(0,%.1f)" font-size="11" fill="#667">`+"\n", headerHeight)
	for h := cfg.FromHour; h < cfg.ToHour; h++ {
		y := cfg.LinesTopOffset + float64(h-cfg.FromHour)*cfg.HourHeight
		fmt.Fprintf(buf, `<text x="4" y="%.1f">%02d:00</text>`+"\n", y+4, h)
	}
	buf.WriteString("</g>\n")
}

func renderColumn(buf *bytes.Buffer, r *svgRenderer, col timetable.Column[schedule.Entry], cfg timetable.Config, x, width float64) {
	fmt.Fprintf(buf, `<g transform="translate(%.1f,0)">`+"\n", x)

	// Date header
	fmt.Fprintf(buf, `<text x="%.1f" y="16" font-size="12" font-weight="bold" fill="#223">%s</text>`+"\n",
		cfg.LinesLeftInset, col.Window.Date.Format("Mon 02 Jan"))

	fmt.Fprintf(buf, `<g transform="translate(0,%.1f)">`+"\n", headerHeight)

	// Hour grid
	for h := cfg.FromHour; h <= cfg.ToHour; h++ {
		y := cfg.LinesTopOffset + float64(h-cfg.FromHour)*cfg.HourHeight
		fmt.Fprintf(buf, `<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#dde" stroke-width="1"/>`+"\n",
			y, width, y)
	}

	// Cards follow the prepared-event order; Left/Top come straight from
	// the engine geometry.
	for _, c := range col.Cards {
		renderCard(buf, c, cfg)
	}

	if !r.hideNowLine {
		renderNowLine(buf, r.now, col.Window, cfg, width)
	}

	buf.WriteString("</g>\n</g>\n")
}

func renderCard(buf *bytes.Buffer, c timetable.Card[schedule.Entry], cfg timetable.Config) {
	g := c.Geometry
	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="#4a7dbd" fill-opacity="0.9" stroke="#2f5a8f"/>`+"\n",
		g.Left, g.Top, g.Width, g.Height)

	title := svgEscaper.Replace(c.Event.Item.Title)
	if c.DaysTotal > 1 {
		title = fmt.Sprintf("%s (spans %d days)", title, c.DaysTotal)
	}
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-size="12" fill="#fff">%s</text>`+"\n",
		g.Left+6, g.Top+15, title)

	if g.Height >= 32 {
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-size="10" fill="#dce6f2">%s - %s</text>`+"\n",
			g.Left+6, g.Top+28,
			c.Event.Start.Format("15:04"), c.Event.End.Format("15:04"))
	}
}

// renderNowLine draws the current-time indicator across a column when the
// wall clock falls inside that column's visible window.
func renderNowLine(buf *bytes.Buffer, now time.Time, w timetable.DayWindow, cfg timetable.Config, width float64) {
	if now.Before(w.Start) || now.After(w.End) {
		return
	}
	y := cfg.LinesTopOffset + timetable.MinutesBetween(w.Start, now)*cfg.MinuteHeight()
	fmt.Fprintf(buf, `<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#d33" stroke-width="1.5"/>`+"\n",
		y, width, y)
}
