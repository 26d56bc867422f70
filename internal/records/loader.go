package records

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sentinel errors for the expected absent-data outcomes. Both are reported
// through the logger and surfaced to the presenter as "no data"; neither
// ever aborts a refresh pass.
var (
	ErrFileMissing   = errors.New("records file not found")
	ErrColumnMissing = errors.New("no expected data column found")
)

// dateColumn is the required date header in every records file.
const dateColumn = "Date"

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// loadConcurrency bounds the number of files parsed at once during a
// full refresh.
const loadConcurrency = 4

// Loader resolves, parses and extracts series from records files in the
// data directory. It holds no state between loads; every call re-reads
// the file.
type Loader struct {
	dir    string
	asset  string
	start  string
	end    string
	logger *zap.Logger
}

// NewLoader creates a loader for records files named after the given asset
// and date range.
func NewLoader(dir, asset, start, end string, logger *zap.Logger) *Loader {
	return &Loader{
		dir:    dir,
		asset:  asset,
		start:  start,
		end:    end,
		logger: logger,
	}
}

// Filename returns the records file name for a metric/denomination pair.
func (l *Loader) Filename(metric Metric, denom Denomination) string {
	return fmt.Sprintf("%s - %s - %s - Records - %s - %s.csv",
		metric, l.asset, denom, l.start, l.end)
}

// Load reads the records file for the pair and extracts its value column
// according to the metric's column policy. A missing file, missing column
// or malformed content is logged and returned as an error wrapping one of
// the sentinel values; callers render those blocks as "no data".
func (l *Loader) Load(metric Metric, denom Denomination) (*Series, error) {
	name := l.Filename(metric, denom)

	file, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Error("Records file missing", zap.String("file", name))
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, name)
		}
		l.logger.Error("Failed to open records file",
			zap.String("file", name),
			zap.Error(err))
		return nil, err
	}
	defer file.Close()

	series, err := l.parse(file, metric)
	if err != nil {
		if errors.Is(err, ErrColumnMissing) {
			l.logger.Warn("No 'Cumulative' or 'Daily' columns found",
				zap.String("file", name))
		} else {
			l.logger.Error("Failed to process records file",
				zap.String("file", name),
				zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	l.logger.Info("Loaded records file",
		zap.String("file", name),
		zap.String("column", series.Label),
		zap.Int("rows", series.Len()))
	return series, nil
}

// parse reads the CSV table, selects the value column and builds the
// series. Rows with an empty or NaN-like value cell are dropped; any
// unparseable date or value fails the whole file.
func (l *Loader) parse(r io.Reader, metric Metric) (*Series, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("file has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	dateIdx := -1
	for i, h := range headers {
		if h == dateColumn {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("no %q column", dateColumn)
	}

	valueIdx, label, ok := metric.SelectColumn(headers)
	if !ok {
		return nil, ErrColumnMissing
	}

	series := &Series{Label: label}
	for n, row := range rows[1:] {
		date, err := parseDate(strings.TrimSpace(row[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}

		raw := strings.TrimSpace(row[valueIdx])
		if isMissing(raw) {
			continue
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid value %q for %s", n+2, raw, label)
		}

		series.Dates = append(series.Dates, date)
		series.Values = append(series.Values, value)
	}

	return series, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// isMissing reports whether a value cell counts as absent. Empty cells and
// the usual NaN placeholders are dropped from the series.
func isMissing(raw string) bool {
	switch strings.ToLower(raw) {
	case "", "nan", "null", "none", "na":
		return true
	}
	return false
}

// Block couples one metric/denomination pair with its load result. Exactly
// one of Series and Err is meaningful; an errored block renders as a
// "no data" placeholder.
type Block struct {
	Metric       Metric
	Denomination Denomination
	Series       *Series
	Err          error
}

// Title returns the block's display title.
func (b Block) Title() string {
	return b.Metric.DisplayName()
}

// HasData reports whether the block produced a non-empty series.
func (b Block) HasData() bool {
	return b.Err == nil && b.Series != nil && b.Series.Len() > 0
}

// LoadAll loads every metric for every denomination, USD section first.
// Blocks are loaded with bounded parallelism; each block's failure stays
// local to that block, so one bad file never hides the other seven.
func (l *Loader) LoadAll(ctx context.Context) []Block {
	blocks := make([]Block, 0, len(AllDenominations)*len(AllMetrics))
	for _, denom := range AllDenominations {
		for _, metric := range AllMetrics {
			blocks = append(blocks, Block{Metric: metric, Denomination: denom})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i := range blocks {
		block := &blocks[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				block.Err = err
				return nil
			}
			block.Series, block.Err = l.Load(block.Metric, block.Denomination)
			return nil
		})
	}
	// Per-block errors are recorded on the blocks themselves.
	_ = g.Wait()

	return blocks
}
