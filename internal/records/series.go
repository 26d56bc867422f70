package records

import (
	"fmt"
	"strings"
	"time"
)

// Series is a single value column extracted from a records file, keyed by
// date. Rows keep the order they had in the source file; no re-sorting is
// applied, so a non-chronological file renders as-is.
type Series struct {
	Label  string
	Dates  []time.Time
	Values []float64
}

// Len returns the number of rows in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Latest returns the last value in the series, or 0 for an empty series.
func (s *Series) Latest() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1]
}

// Tail returns a copy of the last n rows. The whole series is copied when
// it has fewer than n rows.
func (s *Series) Tail(n int) *Series {
	start := len(s.Values) - n
	if n <= 0 || start < 0 {
		start = 0
	}

	tail := &Series{
		Label:  s.Label,
		Dates:  make([]time.Time, len(s.Dates)-start),
		Values: make([]float64, len(s.Values)-start),
	}
	copy(tail.Dates, s.Dates[start:])
	copy(tail.Values, s.Values[start:])
	return tail
}

// MinMax returns the smallest and largest values in the series.
func (s *Series) MinMax() (min, max float64) {
	if len(s.Values) == 0 {
		return 0, 0
	}

	min, max = s.Values[0], s.Values[0]
	for _, v := range s.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Change returns the difference between the last and first values.
func (s *Series) Change() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return s.Values[len(s.Values)-1] - s.Values[0]
}

// Precision returns the number of decimals used when formatting values:
// cumulative columns round to cents, daily columns keep more detail.
func (s *Series) Precision() int {
	if strings.Contains(s.Label, "Cumulative") {
		return 2
	}
	return 4
}

// FormatValue renders a value at the series' precision with a unit suffix.
func (s *Series) FormatValue(v float64, unit string) string {
	formatted := fmt.Sprintf("%.*f", s.Precision(), v)
	if unit == "" {
		return formatted
	}
	return formatted + " " + unit
}
