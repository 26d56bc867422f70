// =================================
// File: internal/config/config_test.go
// =================================
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid config",
			content: `{
				"data_dir": "/data/records",
				"asset": "BTC",
				"start_date": "20250101",
				"end_date": "20251231",
				"refresh_seconds": 30
			}`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.DataDir != "/data/records" {
					t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/data/records")
				}
				if cfg.Asset != "BTC" {
					t.Errorf("Asset = %q, want %q", cfg.Asset, "BTC")
				}
				if cfg.RefreshSeconds != 30 {
					t.Errorf("RefreshSeconds = %d, want 30", cfg.RefreshSeconds)
				}
			},
		},
		{
			name:    "defaults fill missing fields",
			content: `{"data_dir": "/data/records"}`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Asset != DefaultAsset {
					t.Errorf("Asset = %q, want default %q", cfg.Asset, DefaultAsset)
				}
				if cfg.StartDate != DefaultStartDate {
					t.Errorf("StartDate = %q, want default %q", cfg.StartDate, DefaultStartDate)
				}
				if cfg.RefreshSeconds != DefaultRefreshSeconds {
					t.Errorf("RefreshSeconds = %d, want default %d", cfg.RefreshSeconds, DefaultRefreshSeconds)
				}
				if cfg.ExportDir != DefaultExportDir {
					t.Errorf("ExportDir = %q, want default %q", cfg.ExportDir, DefaultExportDir)
				}
				if cfg.LogBufferSize != DefaultLogBufferSize {
					t.Errorf("LogBufferSize = %d, want default %d", cfg.LogBufferSize, DefaultLogBufferSize)
				}
			},
		},
		{
			name:    "short start date rejected",
			content: `{"data_dir": ".", "start_date": "2025"}`,
			wantErr: true,
		},
		{
			name:    "non-numeric end date rejected",
			content: `{"data_dir": ".", "end_date": "2025040x"}`,
			wantErr: true,
		},
		{
			name:    "zero refresh interval rejected",
			content: `{"data_dir": ".", "refresh_seconds": 0}`,
			wantErr: true,
		},
		{
			name:    "malformed json rejected",
			content: `{"data_dir": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			cfg, err := LoadConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("LoadConfig() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("LoadConfig() expected error for missing file, got nil")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PERF_DASH_ASSET", "SOL")
	t.Setenv("PERF_DASH_DATA_DIR", "/env/records")

	path := writeConfigFile(t, `{"data_dir": "/file/records", "asset": "BTC"}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Asset != "SOL" {
		t.Errorf("Asset = %q, want env override %q", cfg.Asset, "SOL")
	}
	if cfg.DataDir != "/env/records" {
		t.Errorf("DataDir = %q, want env override %q", cfg.DataDir, "/env/records")
	}
}
