package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/timegridlabs/timegrid/pkg/pipeline"
	"github.com/timegridlabs/timegrid/pkg/schedule"
	"github.com/timegridlabs/timegrid/pkg/timetable"
)

// Viewer styles
var (
	viewHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewHourStyle   = lipgloss.NewStyle().Foreground(colorGray)
	viewCardStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	viewSpanStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	viewDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// dayColumnWidth is the character width of one day column in the viewer.
const dayColumnWidth = 28

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	grid           gridFlags
	stickyHours    bool // keep the hour gutter pinned on the left
	enableSnapping bool // page by a full screen of days instead of one
	noCache        bool
	refresh        bool
}

// newViewCmd creates the view command for browsing a schedule in the terminal.
// It runs the layout pipeline and opens an interactive day-column browser.
func newViewCmd() *cobra.Command {
	opts := viewOpts{stickyHours: true}

	cmd := &cobra.Command{
		Use:   "view [schedule]",
		Short: "Browse a schedule interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], &opts)
		},
	}

	opts.grid.register(cmd)
	cmd.Flags().BoolVar(&opts.stickyHours, "sticky-hours", opts.stickyHours, "keep the hour gutter pinned on the left")
	cmd.Flags().BoolVar(&opts.enableSnapping, "snap", false, "page by a full screen of days")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reload the schedule even if cached")

	return cmd
}

// runView computes the layout and hands it to the bubbletea viewer.
func runView(cmd *cobra.Command, schedulePath string, opts *viewOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := newRunner(opts.noCache, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	pOpts := pipeline.Options{
		Schedule:       schedulePath,
		Refresh:        opts.refresh,
		StickyHours:    opts.stickyHours,
		EnableSnapping: opts.enableSnapping,
	}
	opts.grid.apply(&pOpts)
	if err := pOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	entries, err := runner.Load(ctx, pOpts)
	if err != nil {
		return err
	}
	layout, err := runner.GenerateLayout(ctx, entries, pOpts)
	if err != nil {
		return err
	}

	model := newViewModel(layout, pOpts, schedulePath)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// viewModel - Interactive day-column browser
// =============================================================================

// viewModel is the bubbletea model for the timetable viewer. It shows one
// or more day columns side by side and pans horizontally through the
// visible range.
type viewModel struct {
	Layout   timetable.Layout[schedule.Entry]
	FromHour int
	ToHour   int
	Sticky   bool // render the hour gutter column
	Snap     bool // page by visibleDays instead of one day
	Source   string

	Offset int // index of the leftmost visible day
	Width  int
	Height int
}

// newViewModel creates a viewer model for the computed layout.
func newViewModel(l timetable.Layout[schedule.Entry], opts pipeline.Options, source string) viewModel {
	return viewModel{
		Layout:   l,
		FromHour: opts.FromHour,
		ToHour:   opts.ToHour,
		Sticky:   opts.StickyHours,
		Snap:     opts.EnableSnapping,
		Source:   source,
		Width:    80,
		Height:   24,
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

// visibleDays returns how many day columns fit in the current width.
func (m viewModel) visibleDays() int {
	avail := m.Width
	if m.Sticky {
		avail -= 8 // hour gutter
	}
	n := avail / dayColumnWidth
	if n < 1 {
		n = 1
	}
	if n > len(m.Layout.Columns) {
		n = len(m.Layout.Columns)
	}
	return n
}

// step is the pan distance for one left/right keypress.
func (m viewModel) step() int {
	if m.Snap {
		return m.visibleDays()
	}
	return 1
}

// clampOffset keeps the offset inside the day range.
func (m viewModel) clampOffset(offset int) int {
	max := len(m.Layout.Columns) - m.visibleDays()
	if max < 0 {
		max = 0
	}
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.Offset = m.clampOffset(m.Offset - m.step())
		case "right", "l":
			m.Offset = m.clampOffset(m.Offset + m.step())
		case "home", "g":
			m.Offset = 0
		case "end", "G":
			m.Offset = m.clampOffset(len(m.Layout.Columns))
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Offset = m.clampOffset(m.Offset)
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(viewHeaderStyle.Render("Timegrid " + m.Source))
	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render("←/→ pan  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Layout.Columns) == 0 {
		b.WriteString(viewDimStyle.Render("  no days in range"))
		return b.String()
	}

	end := m.Offset + m.visibleDays()
	if end > len(m.Layout.Columns) {
		end = len(m.Layout.Columns)
	}

	panes := make([]string, 0, end-m.Offset+1)
	if m.Sticky {
		panes = append(panes, m.renderGutter())
	}
	for i := m.Offset; i < end; i++ {
		panes = append(panes, m.renderDay(m.Layout.Columns[i]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panes...))

	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render(fmt.Sprintf("  [days %d-%d of %d]", m.Offset+1, end, len(m.Layout.Columns))))
	return b.String()
}

// renderGutter renders the pinned hour column.
func (m viewModel) renderGutter() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", 8))
	b.WriteString("\n")
	for h := m.FromHour; h < m.ToHour; h++ {
		b.WriteString(viewHourStyle.Render(fmt.Sprintf("  %02d:00", h)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderDay renders one day column: the date header plus one row per
// visible hour listing the cards that start in that hour.
func (m viewModel) renderDay(col timetable.Column[schedule.Entry]) string {
	pane := lipgloss.NewStyle().Width(dayColumnWidth)

	byHour := make(map[int][]timetable.Card[schedule.Entry])
	for _, c := range col.Cards {
		h := c.Event.Start.Hour()
		if c.Event.Start.Before(col.Window.Start) {
			h = m.FromHour // carried over from an earlier day
		}
		byHour[h] = append(byHour[h], c)
	}
	for h := range byHour {
		cards := byHour[h]
		sort.Slice(cards, func(i, j int) bool {
			return cards[i].Geometry.Left < cards[j].Geometry.Left
		})
	}

	var b strings.Builder
	b.WriteString(viewHeaderStyle.Render(col.Window.Date.Format("Mon 02 Jan")))
	b.WriteString("\n")
	for h := m.FromHour; h < m.ToHour; h++ {
		b.WriteString(m.renderHourRow(byHour[h]))
		b.WriteString("\n")
	}
	return pane.Render(b.String())
}

// renderHourRow formats the cards starting in one hour as a single line.
func (m viewModel) renderHourRow(cards []timetable.Card[schedule.Entry]) string {
	if len(cards) == 0 {
		return viewDimStyle.Render("·")
	}

	labels := make([]string, len(cards))
	for i, c := range cards {
		label := truncate(c.Event.Item.Title, dayColumnWidth/len(cards)-1)
		if c.DaysTotal > 1 {
			labels[i] = viewSpanStyle.Render(label)
		} else {
			labels[i] = viewCardStyle.Render(label)
		}
	}
	return strings.Join(labels, " ")
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	if n < 1 {
		n = 1
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
