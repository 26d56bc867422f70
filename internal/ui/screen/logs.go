package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/perf-dashboard/internal/logger"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/component"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/router"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/style"
)

// logDisplayLimit caps how many entries the logs screen renders at once.
const logDisplayLimit = 500

// LogsScreen shows the captured loader and exporter diagnostics: every
// missing file, skipped column and parse failure from past refreshes.
type LogsScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	services *ui.Services

	// UI components
	helpBar  *component.HelpBar
	viewport viewport.Model

	// State
	levelFilter string // "", "info", "warn", "error"

	// Styling
	titleStyle     lipgloss.Style
	statusStyle    lipgloss.Style
	timestampStyle lipgloss.Style
	infoStyle      lipgloss.Style
	warnStyle      lipgloss.Style
	errorStyle     lipgloss.Style
	containerStyle lipgloss.Style
}

// NewLogsScreen creates a new logs screen
func NewLogsScreen(services *ui.Services) *LogsScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	return &LogsScreen{
		keyMap:   keyMap,
		services: services,
		viewport: viewport.New(80, 20),

		helpBar: component.NewHelpBar().
			SetKeyBindings(keyMap.ContextualHelp(ui.RouteLogs)),

		titleStyle:  style.TitleStyle.Align(lipgloss.Center),
		statusStyle: style.StatusStyle,

		timestampStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		infoStyle: lipgloss.NewStyle().
			Foreground(palette.Text),

		warnStyle:  style.WarningStyle,
		errorStyle: style.ErrorStyle,

		containerStyle: style.ActivePanelStyle.Margin(1, 0),
	}
}

// Init initializes the logs screen
func (s *LogsScreen) Init() tea.Cmd {
	s.refreshContent()
	return nil
}

// Update handles screen updates
func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit

		case key.Matches(msg, s.keyMap.FilterInfo):
			s.levelFilter = "info"
			s.refreshContent()

		case key.Matches(msg, s.keyMap.FilterWarn):
			s.levelFilter = "warn"
			s.refreshContent()

		case key.Matches(msg, s.keyMap.FilterError):
			s.levelFilter = "error"
			s.refreshContent()

		case key.Matches(msg, s.keyMap.FilterAll):
			s.levelFilter = ""
			s.refreshContent()

		default:
			var cmd tea.Cmd
			s.viewport, cmd = s.viewport.Update(msg)
			return s, cmd
		}
	}

	return s, nil
}

// refreshContent re-reads the log buffer into the viewport.
func (s *LogsScreen) refreshContent() {
	entries := s.services.LogBuf.Recent(logDisplayLimit)

	var lines []string
	for _, entry := range entries {
		if !s.matchesFilter(entry) {
			continue
		}
		lines = append(lines, s.formatEntry(entry))
	}

	if len(lines) == 0 {
		lines = []string{s.statusStyle.Render("no log entries")}
	}

	s.viewport.SetContent(strings.Join(lines, "\n"))
	s.viewport.GotoBottom()
}

func (s *LogsScreen) matchesFilter(entry logger.Entry) bool {
	if s.levelFilter == "" {
		return true
	}
	return strings.EqualFold(entry.Level, s.levelFilter)
}

func (s *LogsScreen) formatEntry(entry logger.Entry) string {
	level := strings.ToUpper(entry.Level)

	var levelStyle lipgloss.Style
	switch strings.ToLower(entry.Level) {
	case "error", "fatal":
		levelStyle = s.errorStyle
	case "warn":
		levelStyle = s.warnStyle
	default:
		levelStyle = s.infoStyle
	}

	return fmt.Sprintf("%s %s %s",
		s.timestampStyle.Render(entry.Timestamp.Format("15:04:05")),
		levelStyle.Render(fmt.Sprintf("%-5s", level)),
		entry.Message)
}

// SetSize sets the screen dimensions
func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)

	s.viewport.Width = width - 8
	viewportHeight := height - 10
	if viewportHeight < 4 {
		viewportHeight = 4
	}
	s.viewport.Height = viewportHeight
}

// View renders the logs screen
func (s *LogsScreen) View() string {
	var b strings.Builder

	b.WriteString(s.titleStyle.Width(s.width).Render("📜 Diagnostics Log"))
	b.WriteString("\n")

	filter := s.levelFilter
	if filter == "" {
		filter = "all"
	}
	total, spilled := s.services.LogBuf.Stats()
	b.WriteString(s.statusStyle.Render(
		fmt.Sprintf("filter: %s • entries: %d • spilled: %d", filter, total, spilled)))
	b.WriteString("\n")

	b.WriteString(s.containerStyle.Width(s.width - 4).Render(s.viewport.View()))
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())

	return b.String()
}
