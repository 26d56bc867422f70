package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/perf-dashboard/internal/logger"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/style"
)

// DiagStrip shows the most recent loader diagnostics at the bottom of the
// dashboard: missing files, skipped columns, parse failures. It reads
// straight from the log buffer so it always reflects the last refresh.
type DiagStrip struct {
	buffer *logger.Buffer
	width  int
	lines  int

	containerStyle lipgloss.Style
	titleStyle     lipgloss.Style
	timestampStyle lipgloss.Style
	errorStyle     lipgloss.Style
	warnStyle      lipgloss.Style
	infoStyle      lipgloss.Style
}

// NewDiagStrip creates a strip rendering the last `lines` log entries.
func NewDiagStrip(buffer *logger.Buffer, lines int) *DiagStrip {
	palette := style.DefaultPalette()

	return &DiagStrip{
		buffer: buffer,
		lines:  lines,

		containerStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 1).
			MarginTop(1),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Info).
			Bold(true),

		timestampStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),

		warnStyle: lipgloss.NewStyle().
			Foreground(palette.Warning).
			Bold(true),

		infoStyle: lipgloss.NewStyle().
			Foreground(palette.Info),
	}
}

// SetWidth sets the strip width
func (d *DiagStrip) SetWidth(width int) *DiagStrip {
	d.width = width
	return d
}

// View renders the diagnostics strip
func (d *DiagStrip) View() string {
	entries := d.buffer.Recent(d.lines)

	var b strings.Builder
	b.WriteString(d.titleStyle.Render("Recent Activity"))

	if len(entries) == 0 {
		b.WriteString("\n")
		b.WriteString(d.timestampStyle.Render("no activity yet"))
	}

	for _, entry := range entries {
		b.WriteString("\n")
		b.WriteString(d.timestampStyle.Render(entry.Timestamp.Format("15:04:05")))
		b.WriteString(" ")
		b.WriteString(d.levelStyle(entry.Level).Render(strings.ToUpper(entry.Level)))
		b.WriteString(" ")
		b.WriteString(d.truncate(entry.Message))
	}

	if d.width > 4 {
		return d.containerStyle.Width(d.width - 2).Render(b.String())
	}
	return d.containerStyle.Render(b.String())
}

func (d *DiagStrip) levelStyle(level string) lipgloss.Style {
	switch strings.ToLower(level) {
	case "error", "fatal":
		return d.errorStyle
	case "warn":
		return d.warnStyle
	default:
		return d.infoStyle
	}
}

func (d *DiagStrip) truncate(message string) string {
	limit := d.width - 20 // timestamp, level tag, borders
	runes := []rune(message)
	if limit <= 3 || len(runes) <= limit {
		return message
	}
	return string(runes[:limit-3]) + "..."
}
