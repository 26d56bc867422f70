package component

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/perf-dashboard/internal/ui/style"
)

// sparkChars are the partial block characters from lowest to highest fill.
var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Chart renders a series as a block-character line chart. One column per
// data point; series longer than the chart width are resampled by bucket
// averaging so the whole series stays visible.
type Chart struct {
	data   []float64
	width  int
	height int
	style  lipgloss.Style
	color  lipgloss.Color
}

// NewChart creates a chart with the given dimensions in terminal cells.
func NewChart(width, height int) *Chart {
	if height < 1 {
		height = 1
	}
	return &Chart{
		width:  width,
		height: height,
		style:  lipgloss.NewStyle(),
		color:  style.DefaultPalette().Primary,
	}
}

// SetData sets the data points for the chart
func (c *Chart) SetData(data []float64) *Chart {
	c.data = make([]float64, len(data))
	copy(c.data, data)
	return c
}

// SetSize sets the chart dimensions
func (c *Chart) SetSize(width, height int) *Chart {
	c.width = width
	if height >= 1 {
		c.height = height
	}
	return c
}

// SetColor sets the color for the chart line
func (c *Chart) SetColor(color lipgloss.Color) *Chart {
	c.color = color
	return c
}

// View renders the chart
func (c *Chart) View() string {
	if c.width <= 0 {
		return ""
	}
	if len(c.data) == 0 {
		return c.style.Foreground(c.color).Render(strings.Repeat("▁", c.width))
	}

	columns := c.resample()
	min, max := minMax(columns)

	// A flat series renders as a mid-height line.
	if min == max {
		lines := make([]string, c.height)
		for i := range lines {
			lines[i] = strings.Repeat(" ", len(columns))
		}
		lines[c.height/2] = strings.Repeat("▄", len(columns))
		return c.style.Foreground(c.color).Render(strings.Join(lines, "\n"))
	}

	// Quantize each column into eighths of a cell over the full height.
	steps := c.height * len(sparkChars)
	levels := make([]int, len(columns))
	for i, v := range columns {
		level := int(math.Round((v - min) / (max - min) * float64(steps)))
		if level < 1 {
			level = 1
		}
		if level > steps {
			level = steps
		}
		levels[i] = level
	}

	var lines []string
	for row := c.height - 1; row >= 0; row-- {
		var b strings.Builder
		for _, level := range levels {
			fill := level - row*len(sparkChars)
			switch {
			case fill <= 0:
				b.WriteRune(' ')
			case fill >= len(sparkChars):
				b.WriteRune('█')
			default:
				b.WriteRune(sparkChars[fill-1])
			}
		}
		lines = append(lines, b.String())
	}

	return c.style.Foreground(c.color).Render(strings.Join(lines, "\n"))
}

// resample reduces the series to at most width columns by averaging
// evenly sized buckets.
func (c *Chart) resample() []float64 {
	if len(c.data) <= c.width {
		return c.data
	}

	columns := make([]float64, c.width)
	for i := 0; i < c.width; i++ {
		lo := i * len(c.data) / c.width
		hi := (i + 1) * len(c.data) / c.width
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range c.data[lo:hi] {
			sum += v
		}
		columns[i] = sum / float64(hi-lo)
	}
	return columns
}

// Trend returns an arrow describing the overall direction of the data.
func (c *Chart) Trend() string {
	if len(c.data) < 2 {
		return "→"
	}

	first := c.data[0]
	last := c.data[len(c.data)-1]
	switch {
	case last > first:
		return "↗"
	case last < first:
		return "↘"
	default:
		return "→"
	}
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
