package component

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/style"
)

// MetricCard shows a headline value for one data block: the series label,
// the latest value with its unit, and the net change over the series.
type MetricCard struct {
	label  string
	value  string
	change float64

	labelStyle    lipgloss.Style
	valueStyle    lipgloss.Style
	positiveStyle lipgloss.Style
	negativeStyle lipgloss.Style
	neutralStyle  lipgloss.Style
}

// NewMetricCard creates a new metric card component
func NewMetricCard() *MetricCard {
	palette := style.DefaultPalette()

	return &MetricCard{
		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		valueStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		positiveStyle: lipgloss.NewStyle().
			Foreground(palette.Positive).
			Bold(true),

		negativeStyle: lipgloss.NewStyle().
			Foreground(palette.Negative).
			Bold(true),

		neutralStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}
}

// SetValue sets the headline: the series label, the formatted latest value
// and the net change used for the trend indicator.
func (mc *MetricCard) SetValue(label, value string, change float64) *MetricCard {
	mc.label = label
	mc.value = value
	mc.change = change
	return mc
}

// View renders the metric card
func (mc *MetricCard) View() string {
	label := mc.labelStyle.Render(fmt.Sprintf("Latest %s", mc.label))
	value := mc.valueStyle.Render(mc.value)

	var trend string
	switch {
	case mc.change > 0:
		trend = mc.positiveStyle.Render("↗")
	case mc.change < 0:
		trend = mc.negativeStyle.Render("↘")
	default:
		trend = mc.neutralStyle.Render("→")
	}

	return label + "\n" + value + " " + trend
}
