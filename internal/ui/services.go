package ui

import (
	"github.com/rovshanmuradov/perf-dashboard/internal/config"
	"github.com/rovshanmuradov/perf-dashboard/internal/export"
	"github.com/rovshanmuradov/perf-dashboard/internal/logger"
	"github.com/rovshanmuradov/perf-dashboard/internal/records"
	"go.uber.org/zap"
)

// Services gives screens access to the shared application dependencies.
// Screens receive it at construction time; there is no global state.
type Services struct {
	Config   *config.Config
	Loader   *records.Loader
	Exporter *export.SeriesExporter
	LogBuf   *logger.Buffer
	Logger   *zap.Logger
}

// NewServices wires the application services from loaded configuration.
func NewServices(cfg *config.Config, logBuf *logger.Buffer, log *zap.Logger) *Services {
	return &Services{
		Config:   cfg,
		Loader:   records.NewLoader(cfg.DataDir, cfg.Asset, cfg.StartDate, cfg.EndDate, log),
		Exporter: export.NewSeriesExporter(cfg.ExportDir, log),
		LogBuf:   logBuf,
		Logger:   log,
	}
}
