package records

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	return NewLoader(dir, "ETH", "20250407", "20251021", zap.NewNop()), dir
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFilename(t *testing.T) {
	loader, _ := newTestLoader(t)

	name := loader.Filename(MetricPnL, DenomUSDBased)
	require.Equal(t, "PnL - ETH - USDBased - Records - 20250407 - 20251021.csv", name)

	name = loader.Filename(MetricVolume, DenomCoinBased)
	require.Equal(t, "Volume - ETH - CoinBased - Records - 20250407 - 20251021.csv", name)
}

func TestLoadCumulativeColumn(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricPnL, DenomUSDBased),
		"Date,PnL Cumulative ($),Other\n"+
			"2025-04-07,100.5,x\n"+
			"2025-04-08,102.25,y\n")

	series, err := loader.Load(MetricPnL, DenomUSDBased)
	require.NoError(t, err)
	require.Equal(t, "PnL Cumulative", series.Label)
	require.Equal(t, []float64{100.5, 102.25}, series.Values)
	require.Equal(t, []time.Time{
		time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC),
	}, series.Dates)
	require.Equal(t, 102.25, series.Latest())
}

func TestLoadDailyFallback(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricFee, DenomUSDBased),
		"Date,Fee Daily ($)\n"+
			"2025-04-07,0.25\n")

	series, err := loader.Load(MetricFee, DenomUSDBased)
	require.NoError(t, err)
	require.Equal(t, "Fee Daily", series.Label)
	require.Equal(t, []float64{0.25}, series.Values)
}

func TestLoadVolumePicksDailyOverCumulative(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricVolume, DenomUSDBased),
		"Date,Volume Cumulative,Volume Daily\n"+
			"2025-04-07,500,100\n"+
			"2025-04-08,650,150\n")

	series, err := loader.Load(MetricVolume, DenomUSDBased)
	require.NoError(t, err)
	require.Equal(t, "Volume Daily", series.Label)
	require.Equal(t, []float64{100, 150}, series.Values)
}

func TestLoadVolumeCumulativeOnlyIsMissingColumn(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricVolume, DenomUSDBased),
		"Date,Volume Cumulative\n"+
			"2025-04-07,500\n")

	_, err := loader.Load(MetricVolume, DenomUSDBased)
	require.ErrorIs(t, err, ErrColumnMissing)
}

func TestLoadMissingColumns(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricFunding, DenomCoinBased),
		"Date,Notes\n"+
			"2025-04-07,hello\n")

	_, err := loader.Load(MetricFunding, DenomCoinBased)
	require.ErrorIs(t, err, ErrColumnMissing)
}

func TestLoadMissingFile(t *testing.T) {
	loader, _ := newTestLoader(t)

	_, err := loader.Load(MetricPnL, DenomCoinBased)
	require.ErrorIs(t, err, ErrFileMissing)
}

func TestLoadDropsRowsWithMissingValues(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricVolume, DenomUSDBased),
		"Date,Volume Daily\n"+
			"2025-04-07,100\n"+
			"2025-04-08,\n"+
			"2025-04-09,NaN\n"+
			"2025-04-10,300\n")

	series, err := loader.Load(MetricVolume, DenomUSDBased)
	require.NoError(t, err)
	require.Equal(t, []float64{100, 300}, series.Values)
	require.Len(t, series.Dates, 2)
}

func TestLoadBadValueFailsFile(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricPnL, DenomUSDBased),
		"Date,PnL Cumulative\n"+
			"2025-04-07,not-a-number\n")

	_, err := loader.Load(MetricPnL, DenomUSDBased)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrColumnMissing)
	require.NotErrorIs(t, err, ErrFileMissing)
}

func TestLoadBadDateFailsFile(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricPnL, DenomUSDBased),
		"Date,PnL Cumulative\n"+
			"April 7th,100.5\n")

	_, err := loader.Load(MetricPnL, DenomUSDBased)
	require.Error(t, err)
}

func TestLoadBadDateOnDroppedRowStillFails(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricPnL, DenomUSDBased),
		"Date,PnL Cumulative\n"+
			"2025-04-07,100.5\n"+
			"garbage,\n")

	_, err := loader.Load(MetricPnL, DenomUSDBased)
	require.Error(t, err)
}

func TestLoadPreservesRowOrder(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricFee, DenomCoinBased),
		"Date,Fee Daily\n"+
			"2025-04-09,3\n"+
			"2025-04-07,1\n"+
			"2025-04-08,2\n")

	series, err := loader.Load(MetricFee, DenomCoinBased)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 1, 2}, series.Values)
	require.Equal(t, 2.0, series.Latest())
}

func TestLoadAll(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeFixture(t, dir, loader.Filename(MetricPnL, DenomUSDBased),
		"Date,PnL Cumulative\n"+
			"2025-04-07,100.5\n"+
			"2025-04-08,102.25\n")

	blocks := loader.LoadAll(context.Background())
	require.Len(t, blocks, 8)

	// USD section first, metrics in display order within each section.
	require.Equal(t, DenomUSDBased, blocks[0].Denomination)
	require.Equal(t, MetricPnL, blocks[0].Metric)
	require.Equal(t, DenomCoinBased, blocks[4].Denomination)

	require.True(t, blocks[0].HasData())
	require.Equal(t, 102.25, blocks[0].Series.Latest())

	// The seven missing files stay local to their own blocks.
	for _, block := range blocks[1:] {
		require.False(t, block.HasData())
		require.ErrorIs(t, block.Err, ErrFileMissing)
	}
}

func TestLoadAllCancelled(t *testing.T) {
	loader, _ := newTestLoader(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocks := loader.LoadAll(ctx)
	require.Len(t, blocks, 8)
	for _, block := range blocks {
		require.Error(t, block.Err)
	}
}
