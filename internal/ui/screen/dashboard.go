package screen

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/perf-dashboard/internal/export"
	"github.com/rovshanmuradov/perf-dashboard/internal/records"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/component"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/router"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/style"
)

// rawTailRows is how many trailing rows the raw-data expander shows.
const rawTailRows = 7

// blocksPerSection is the number of metric blocks in one denomination
// section: PnL plus the Fee/Funding/Volume grid.
var blocksPerSection = len(records.AllMetrics)

// DashboardScreen renders the performance records dashboard: one
// denomination section at a time, a full-width PnL block on top and the
// secondary metrics in a three-column grid below it.
type DashboardScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	services *ui.Services

	// UI components
	helpBar *component.HelpBar
	diag    *component.DiagStrip

	// State
	blocks      []records.Block
	section     int // index into records.AllDenominations
	focus       int // index into the visible section's blocks
	expanded    map[int]bool
	refreshing  bool
	lastRefresh time.Time
	statusLine  string
	statusError bool
	retry       *backoff.ExponentialBackOff

	// Styling
	titleStyle      lipgloss.Style
	sectionStyle    lipgloss.Style
	blockTitleStyle lipgloss.Style
	noDataStyle     lipgloss.Style
	statusStyle     lipgloss.Style
	successStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	hintStyle       lipgloss.Style
	panelStyle      lipgloss.Style
	focusPanelStyle lipgloss.Style
}

// NewDashboardScreen creates the dashboard screen
func NewDashboardScreen(services *ui.Services) *DashboardScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	screen := &DashboardScreen{
		keyMap:   keyMap,
		services: services,
		expanded: make(map[int]bool),
		retry:    newRetryBackOff(),

		helpBar: component.NewHelpBar().
			SetKeyBindings(keyMap.ContextualHelp(ui.RouteDashboard)),

		diag: component.NewDiagStrip(services.LogBuf, 3),

		titleStyle:   style.TitleStyle.Align(lipgloss.Center),
		sectionStyle: style.SectionHeaderStyle,

		blockTitleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),

		noDataStyle:  style.InfoStyle.Italic(true),
		statusStyle:  style.StatusStyle,
		successStyle: style.SuccessStyle.Padding(0, 1),
		errorStyle:   style.ErrorStyle.Padding(0, 1),
		hintStyle:    style.HelpStyle,

		panelStyle:      style.PanelStyle,
		focusPanelStyle: style.ActivePanelStyle,
	}

	return screen
}

// newRetryBackOff paces refresh retries while every block keeps failing,
// so an empty data directory doesn't spin the loader.
func newRetryBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = time.Minute
	return b
}

// Init initializes the dashboard screen
func (s *DashboardScreen) Init() tea.Cmd {
	s.refreshing = true
	return s.refreshCmd()
}

// refreshCmd runs a full load pass over all metric/denomination pairs.
func (s *DashboardScreen) refreshCmd() tea.Cmd {
	loader := s.services.Loader
	return func() tea.Msg {
		blocks := loader.LoadAll(context.Background())
		return ui.BlocksLoadedMsg{Blocks: blocks, At: time.Now()}
	}
}

// scheduleCmd arms the next automatic refresh.
func (s *DashboardScreen) scheduleCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return ui.RefreshTickMsg{At: t}
	})
}

// exportCmd exports the focused block in the requested format.
func (s *DashboardScreen) exportCmd(block records.Block, format export.Format) tea.Cmd {
	exporter := s.services.Exporter
	return func() tea.Msg {
		path, err := exporter.Export(block, format)
		return ui.ExportResultMsg{Path: path, Err: err}
	}
}

// Update handles screen updates
func (s *DashboardScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case ui.BlocksLoadedMsg:
		s.blocks = msg.Blocks
		s.lastRefresh = msg.At
		s.refreshing = false

		interval := time.Duration(s.services.Config.RefreshSeconds) * time.Second
		if s.allFailed() {
			interval = s.retry.NextBackOff()
		} else {
			s.retry = newRetryBackOff()
		}
		return s, s.scheduleCmd(interval)

	case ui.RefreshTickMsg:
		if s.refreshing {
			return s, nil
		}
		s.refreshing = true
		return s, s.refreshCmd()

	case ui.ExportResultMsg:
		if msg.Err != nil {
			s.statusLine = fmt.Sprintf("Export failed: %v", msg.Err)
			s.statusError = true
		} else {
			s.statusLine = fmt.Sprintf("Exported to %s", msg.Path)
			s.statusError = false
		}
		return s, nil
	}

	return s, nil
}

func (s *DashboardScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keyMap.Quit):
		return s, tea.Quit

	case key.Matches(msg, s.keyMap.Tab):
		s.section = (s.section + 1) % len(records.AllDenominations)
		s.focus = 0

	case key.Matches(msg, s.keyMap.Up):
		if s.focus > 0 {
			s.focus--
		}

	case key.Matches(msg, s.keyMap.Down):
		if s.focus < blocksPerSection-1 {
			s.focus++
		}

	case key.Matches(msg, s.keyMap.Enter):
		index := s.section*blocksPerSection + s.focus
		s.expanded[index] = !s.expanded[index]

	case key.Matches(msg, s.keyMap.Refresh):
		if !s.refreshing {
			s.refreshing = true
			return s, s.refreshCmd()
		}

	case key.Matches(msg, s.keyMap.Export):
		if block, ok := s.focusedBlock(); ok {
			return s, s.exportCmd(block, export.FormatCSV)
		}
		s.statusLine = "Nothing to export for the focused block"
		s.statusError = true

	case key.Matches(msg, s.keyMap.ExportJSON):
		if block, ok := s.focusedBlock(); ok {
			return s, s.exportCmd(block, export.FormatJSON)
		}
		s.statusLine = "Nothing to export for the focused block"
		s.statusError = true

	case key.Matches(msg, s.keyMap.Logs):
		return s, func() tea.Msg {
			return ui.RouterMsg{To: ui.RouteLogs}
		}
	}

	return s, nil
}

// focusedBlock returns the currently focused block when it has data.
func (s *DashboardScreen) focusedBlock() (records.Block, bool) {
	index := s.section*blocksPerSection + s.focus
	if index >= len(s.blocks) {
		return records.Block{}, false
	}
	block := s.blocks[index]
	return block, block.HasData()
}

// allFailed reports whether the last refresh produced not a single series.
func (s *DashboardScreen) allFailed() bool {
	if len(s.blocks) == 0 {
		return true
	}
	for _, block := range s.blocks {
		if block.HasData() {
			return false
		}
	}
	return true
}

// SetSize sets the screen dimensions
func (s *DashboardScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
	s.diag.SetWidth(width - 2)
}

// View renders the dashboard screen
func (s *DashboardScreen) View() string {
	var b strings.Builder

	title := fmt.Sprintf("📊 Trading Strategy Data Analytics Dashboard [%s]", s.services.Config.Asset)
	b.WriteString(s.titleStyle.Width(s.width).Render(title))
	b.WriteString("\n")

	denom := records.AllDenominations[s.section]
	b.WriteString(s.sectionStyle.Render(denomEmoji(denom) + " " + denom.DisplayName()))
	b.WriteString("\n")

	if len(s.blocks) == 0 {
		b.WriteString(s.noDataStyle.Render("  Loading records..."))
		b.WriteString("\n")
	} else {
		b.WriteString(s.renderSection())
	}

	b.WriteString(s.renderStatusLine())
	b.WriteString(s.diag.View())
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())

	return b.String()
}

// renderSection renders the visible denomination's PnL block and the
// three-column grid of secondary metrics.
func (s *DashboardScreen) renderSection() string {
	start := s.section * blocksPerSection
	if start+blocksPerSection > len(s.blocks) {
		return s.noDataStyle.Render("  Loading records...") + "\n"
	}

	fullWidth := s.width - 4
	gridWidth := (s.width-6)/3 - 2
	if gridWidth < 24 {
		gridWidth = 24
	}

	pnl := s.renderBlock(s.blocks[start], fullWidth, s.focus == 0, 6, start)

	var grid []string
	for i := 1; i < blocksPerSection; i++ {
		index := start + i
		grid = append(grid, s.renderBlock(s.blocks[index], gridWidth, s.focus == i, 4, index))
	}

	return pnl + "\n" + style.AdaptiveJoinHorizontal(s.width, grid...) + "\n"
}

// renderBlock renders one metric block: title, headline metric, chart and
// the optional raw-data tail.
func (s *DashboardScreen) renderBlock(block records.Block, width int, focused bool, chartHeight, index int) string {
	panel := s.panelStyle
	if focused {
		panel = s.focusPanelStyle
	}
	innerWidth := width - 8
	if innerWidth < 16 {
		innerWidth = 16
	}

	title := s.blockTitleStyle.Render(metricEmoji(block.Metric) + " " + block.Title())

	if !block.HasData() {
		body := title + "\n\n" +
			s.noDataStyle.Render(fmt.Sprintf("No data available for %s.", block.Title()))
		return panel.Width(width).Render(body)
	}

	series := block.Series
	unit := block.Denomination.Unit(s.services.Config.Asset)

	card := component.NewMetricCard().
		SetValue(series.Label, series.FormatValue(series.Latest(), unit), series.Change())

	chart := component.NewChart(innerWidth, chartHeight).
		SetData(series.Values)

	var parts []string
	parts = append(parts, title, "", card.View(), "", chart.View())

	if s.expanded[index] {
		parts = append(parts, "", s.renderRawTail(series, innerWidth))
	} else {
		parts = append(parts, "", s.hintStyle.Render("press enter to view recent raw data"))
	}

	return panel.Width(width).Render(strings.Join(parts, "\n"))
}

// renderRawTail renders the last rows of the series as a table.
func (s *DashboardScreen) renderRawTail(series *records.Series, width int) string {
	tail := series.Tail(rawTailRows)

	rows := make([][]string, tail.Len())
	for i := range tail.Values {
		rows[i] = []string{
			tail.Dates[i].Format("2006-01-02"),
			strconv.FormatFloat(tail.Values[i], 'f', -1, 64),
		}
	}

	return component.NewTable().
		AddColumn("Date", 12, lipgloss.Left).
		AddColumn(series.Label, 0, lipgloss.Right).
		SetWidth(width).
		SetRows(rows).
		SetZebra(true).
		View()
}

func (s *DashboardScreen) renderStatusLine() string {
	var parts []string
	if !s.lastRefresh.IsZero() {
		parts = append(parts, fmt.Sprintf("Last refresh: %s", s.lastRefresh.Format("15:04:05")))
	}
	if s.refreshing {
		parts = append(parts, "refreshing...")
	}

	line := s.statusStyle.Render(strings.Join(parts, " • "))
	if s.statusLine != "" {
		statusStyle := s.successStyle
		if s.statusError {
			statusStyle = s.errorStyle
		}
		line += "\n" + statusStyle.Render(s.statusLine)
	}
	return line + "\n"
}

func metricEmoji(m records.Metric) string {
	switch m {
	case records.MetricPnL:
		return "📈"
	case records.MetricFee:
		return "💰"
	case records.MetricFunding:
		return "💸"
	case records.MetricVolume:
		return "📊"
	default:
		return "•"
	}
}

func denomEmoji(d records.Denomination) string {
	if d == records.DenomCoinBased {
		return "🪙"
	}
	return "💵"
}
