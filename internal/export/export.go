package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rovshanmuradov/perf-dashboard/internal/records"
	"go.uber.org/zap"
)

// Format represents the export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Summary contains the statistics written alongside a JSON export.
type Summary struct {
	Rows      int       `json:"rows"`
	First     float64   `json:"first"`
	Latest    float64   `json:"latest"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	NetChange float64   `json:"net_change"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// SeriesExporter writes loaded series back to disk on operator request.
type SeriesExporter struct {
	outputDir string
	logger    *zap.Logger
}

// NewSeriesExporter creates an exporter writing under outputDir.
func NewSeriesExporter(outputDir string, logger *zap.Logger) *SeriesExporter {
	return &SeriesExporter{
		outputDir: outputDir,
		logger:    logger,
	}
}

// Export writes the block's series in the requested format and returns the
// file path. A block without data cannot be exported.
func (se *SeriesExporter) Export(block records.Block, format Format) (string, error) {
	if !block.HasData() {
		return "", fmt.Errorf("no data to export for %s/%s", block.Metric, block.Denomination)
	}

	if err := os.MkdirAll(se.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(se.outputDir, se.generateFilename(block, format))

	var err error
	switch format {
	case FormatCSV:
		err = se.exportToCSV(block.Series, outputPath)
	case FormatJSON:
		err = se.exportToJSON(block, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return "", err
	}

	se.logger.Info("Series exported",
		zap.String("file", outputPath),
		zap.Int("rows", block.Series.Len()),
		zap.String("format", string(format)))

	return outputPath, nil
}

// generateFilename creates a timestamped filename for the block.
func (se *SeriesExporter) generateFilename(block records.Block, format Format) string {
	timestamp := time.Now().Format("20060102_150405")
	metric := strings.ToLower(string(block.Metric))
	denom := strings.ToLower(string(block.Denomination))
	return fmt.Sprintf("%s_%s_%s.%s", metric, denom, timestamp, format)
}

// exportToCSV writes the series as a two-column table, date then value.
func (se *SeriesExporter) exportToCSV(series *records.Series, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Date", series.Label}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range series.Values {
		row := []string{
			series.Dates[i].Format("2006-01-02"),
			strconv.FormatFloat(series.Values[i], 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

type seriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// exportToJSON writes the series with metadata and summary statistics.
func (se *SeriesExporter) exportToJSON(block records.Block, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	series := block.Series
	points := make([]seriesPoint, series.Len())
	for i := range series.Values {
		points[i] = seriesPoint{Date: series.Dates[i], Value: series.Values[i]}
	}

	exportData := struct {
		ExportTime   time.Time     `json:"export_time"`
		Metric       string        `json:"metric"`
		Denomination string        `json:"denomination"`
		Label        string        `json:"label"`
		Summary      Summary       `json:"summary"`
		Points       []seriesPoint `json:"points"`
	}{
		ExportTime:   time.Now(),
		Metric:       string(block.Metric),
		Denomination: string(block.Denomination),
		Label:        series.Label,
		Summary:      calculateSummary(series),
		Points:       points,
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// calculateSummary computes the statistics block for an export.
func calculateSummary(series *records.Series) Summary {
	summary := Summary{Rows: series.Len()}
	if series.Len() == 0 {
		return summary
	}

	summary.First = series.Values[0]
	summary.Latest = series.Latest()
	summary.Min, summary.Max = series.MinMax()
	summary.NetChange = series.Change()
	summary.StartDate = series.Dates[0]
	summary.EndDate = series.Dates[len(series.Dates)-1]

	return summary
}
