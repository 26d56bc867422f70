// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir        string `mapstructure:"data_dir"`
	Asset          string `mapstructure:"asset"`
	StartDate      string `mapstructure:"start_date"`
	EndDate        string `mapstructure:"end_date"`
	RefreshSeconds int    `mapstructure:"refresh_seconds"`
	ExportDir      string `mapstructure:"export_dir"`
	LogBufferSize  int    `mapstructure:"log_buffer_size"`
	LogSpillPath   string `mapstructure:"log_spill_path"`
	DebugLogging   bool   `mapstructure:"debug_logging"`
}

const (
	DefaultAsset          = "ETH"
	DefaultStartDate      = "20250407"
	DefaultEndDate        = "20251021"
	DefaultRefreshSeconds = 60
	DefaultLogBufferSize  = 2000
	DefaultLogSpillPath   = "logs/dashboard.log"
	DefaultExportDir      = "exports"
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"data_dir":        ".",
		"asset":           DefaultAsset,
		"start_date":      DefaultStartDate,
		"end_date":        DefaultEndDate,
		"refresh_seconds": DefaultRefreshSeconds,
		"export_dir":      DefaultExportDir,
		"log_buffer_size": DefaultLogBufferSize,
		"log_spill_path":  DefaultLogSpillPath,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v, &cfg)

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.DataDir == "" {
		return errors.New("missing data_dir in configuration")
	}
	if cfg.Asset == "" {
		return errors.New("missing asset in configuration")
	}
	if err := validateDateStamp(cfg.StartDate); err != nil {
		return errors.New("invalid start_date, expected yyyymmdd")
	}
	if err := validateDateStamp(cfg.EndDate); err != nil {
		return errors.New("invalid end_date, expected yyyymmdd")
	}
	if cfg.RefreshSeconds <= 0 {
		return errors.New("invalid refresh_seconds")
	}
	if cfg.LogBufferSize <= 0 {
		return errors.New("invalid log_buffer_size")
	}
	return nil
}

// validateDateStamp checks the 8-digit yyyymmdd stamps baked into records
// file names. The stamps are substituted verbatim, so only the shape is
// validated here.
func validateDateStamp(stamp string) error {
	if len(stamp) != 8 {
		return errors.New("date stamp must be 8 digits")
	}
	if _, err := strconv.Atoi(stamp); err != nil {
		return errors.New("date stamp must be numeric")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	v.AutomaticEnv()
	v.SetEnvPrefix("PERF_DASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if envDataDir := v.GetString("DATA_DIR"); envDataDir != "" {
		cfg.DataDir = envDataDir
	}
	if envAsset := v.GetString("ASSET"); envAsset != "" {
		cfg.Asset = envAsset
	}
	if envExportDir := v.GetString("EXPORT_DIR"); envExportDir != "" {
		cfg.ExportDir = envExportDir
	}
}
