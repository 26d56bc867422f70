package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/style"
)

// TableColumn represents a column configuration
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// Table renders tabular data. It is a pure display component: the raw-data
// expanders and log listings feed it rows and render the result.
type Table struct {
	columns []TableColumn
	rows    [][]string
	width   int

	headerStyle lipgloss.Style
	rowStyle    lipgloss.Style
	zebraStyle  lipgloss.Style
	borderStyle lipgloss.Style

	showBorder bool
	zebra      bool
}

// NewTable creates a new table component
func NewTable() *Table {
	palette := style.DefaultPalette()

	return &Table{
		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		zebraStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Background(palette.BackgroundAlt).
			Padding(0, 1),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		showBorder: true,
	}
}

// AddColumn adds a column to the table
func (t *Table) AddColumn(header string, width int, align lipgloss.Position) *Table {
	t.columns = append(t.columns, TableColumn{
		Header: header,
		Width:  width,
		Align:  align,
	})
	return t
}

// SetRows sets all table rows
func (t *Table) SetRows(rows [][]string) *Table {
	t.rows = rows
	return t
}

// SetWidth sets the total table width; columns without an explicit width
// share the remaining space.
func (t *Table) SetWidth(width int) *Table {
	t.width = width
	return t
}

// SetShowBorder enables/disables the table border
func (t *Table) SetShowBorder(show bool) *Table {
	t.showBorder = show
	return t
}

// SetZebra enables/disables alternating row colors
func (t *Table) SetZebra(zebra bool) *Table {
	t.zebra = zebra
	return t
}

// View renders the table
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return ""
	}

	t.calculateColumnWidths()

	var content strings.Builder

	var headerRow strings.Builder
	for i, col := range t.columns {
		headerRow.WriteString(t.renderCell(col.Header, col.Width, col.Align, t.headerStyle))
		if i < len(t.columns)-1 {
			headerRow.WriteString("│")
		}
	}
	content.WriteString(headerRow.String())
	content.WriteString("\n")

	var separator strings.Builder
	for i, col := range t.columns {
		separator.WriteString(strings.Repeat("─", col.Width))
		if i < len(t.columns)-1 {
			separator.WriteString("┼")
		}
	}
	content.WriteString(separator.String())

	for rowIndex, row := range t.rows {
		rowStyle := t.rowStyle
		if t.zebra && rowIndex%2 == 1 {
			rowStyle = t.zebraStyle
		}

		content.WriteString("\n")
		for i, col := range t.columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			content.WriteString(t.renderCell(cell, col.Width, col.Align, rowStyle))
			if i < len(t.columns)-1 {
				content.WriteString("│")
			}
		}
	}

	result := content.String()
	if t.showBorder {
		result = t.borderStyle.Render(result)
	}
	return result
}

// renderCell renders a single table cell, truncating on rune boundaries.
func (t *Table) renderCell(content string, width int, align lipgloss.Position, cellStyle lipgloss.Style) string {
	runes := []rune(content)
	if len(runes) > width {
		if width > 3 {
			content = string(runes[:width-3]) + "..."
		} else {
			content = string(runes[:width])
		}
	}
	return cellStyle.Width(width).Align(align).Render(content)
}

// calculateColumnWidths distributes remaining width to auto-width columns
func (t *Table) calculateColumnWidths() {
	if t.width <= 0 {
		return
	}

	totalExplicitWidth := 0
	autoWidthColumns := 0
	for _, col := range t.columns {
		if col.Width > 0 {
			totalExplicitWidth += col.Width
		} else {
			autoWidthColumns++
		}
	}

	separatorWidth := len(t.columns) - 1
	availableWidth := t.width - totalExplicitWidth - separatorWidth

	if autoWidthColumns > 0 && availableWidth > 0 {
		autoWidth := availableWidth / autoWidthColumns
		for i := range t.columns {
			if t.columns[i].Width <= 0 {
				t.columns[i].Width = autoWidth
			}
		}
	}
}
