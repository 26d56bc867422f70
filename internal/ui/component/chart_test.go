package component

import (
	"strings"
	"testing"
)

func TestChartViewEmpty(t *testing.T) {
	view := NewChart(10, 1).View()
	if got := strings.Count(view, "▁"); got != 10 {
		t.Errorf("empty chart has %d baseline cells, want 10", got)
	}
}

func TestChartViewFlatSeries(t *testing.T) {
	view := NewChart(10, 3).SetData([]float64{5, 5, 5, 5}).View()

	lines := strings.Split(view, "\n")
	if len(lines) != 3 {
		t.Fatalf("flat chart has %d rows, want 3", len(lines))
	}
	if got := strings.Count(lines[1], "▄"); got != 4 {
		t.Errorf("mid row has %d line cells, want 4", got)
	}
	if strings.ContainsRune(lines[0], '▄') || strings.ContainsRune(lines[2], '▄') {
		t.Error("flat series leaked outside the mid row")
	}
}

func TestChartViewSingleRow(t *testing.T) {
	view := NewChart(10, 1).SetData([]float64{1, 2, 3, 4}).View()

	if !strings.ContainsRune(view, '█') {
		t.Error("maximum value did not render as a full block")
	}
	if !strings.ContainsRune(view, '▁') && !strings.ContainsRune(view, '▂') {
		t.Error("minimum value did not render near the baseline")
	}
}

func TestChartViewMultiRowColumnHeights(t *testing.T) {
	view := NewChart(10, 2).SetData([]float64{0, 10}).View()

	lines := strings.Split(view, "\n")
	if len(lines) != 2 {
		t.Fatalf("chart has %d rows, want 2", len(lines))
	}
	// Max column fills the top row; min column stays in the bottom row.
	if !strings.ContainsRune(lines[0], '█') {
		t.Errorf("top row %q missing full block for the max column", lines[0])
	}
	if lines[0][0] != ' ' {
		t.Errorf("top row %q should be empty above the min column", lines[0])
	}
}

func TestChartResample(t *testing.T) {
	chart := NewChart(2, 1).SetData([]float64{1, 3, 5, 7})

	columns := chart.resample()
	if len(columns) != 2 {
		t.Fatalf("resample() produced %d columns, want 2", len(columns))
	}
	if columns[0] != 2 || columns[1] != 6 {
		t.Errorf("resample() = %v, want [2 6]", columns)
	}
}

func TestChartResampleNoOpWhenDataFits(t *testing.T) {
	chart := NewChart(10, 1).SetData([]float64{1, 2, 3})

	if got := len(chart.resample()); got != 3 {
		t.Errorf("resample() produced %d columns, want 3", got)
	}
}

func TestChartTrend(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want string
	}{
		{"rising", []float64{1, 5}, "↗"},
		{"falling", []float64{5, 1}, "↘"},
		{"flat", []float64{3, 3}, "→"},
		{"too short", []float64{3}, "→"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewChart(10, 1).SetData(tt.data).Trend(); got != tt.want {
				t.Errorf("Trend() = %q, want %q", got, tt.want)
			}
		})
	}
}
