package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkgbench/pkgbench/pkg/benchmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_DefaultsAppliedWhenEmpty(t *testing.T) {
	cfg, err := Load(writeConfig(t, "benchmark: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Global.LogLevel)
	assert.Equal(t, DefaultResultsDir, cfg.Benchmark.ResultsDir)
	assert.Equal(t, DefaultPackagesFile, cfg.Benchmark.PackagesFile)
	assert.Equal(t, DefaultRuns, cfg.Benchmark.Runs)
	assert.Equal(t, benchmark.Tools, cfg.Benchmark.Tools)
	assert.Equal(t, DefaultBaseline, cfg.Benchmark.Baseline)
	assert.Equal(t, benchmark.UVModeManifest, cfg.Benchmark.UV.Mode)
	assert.Equal(t, 300*time.Second, cfg.Benchmark.CommandTimeout())
	assert.Equal(t, DefaultHistoryDriver, cfg.History.Driver)
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultResultsDir, cfg.Benchmark.ResultsDir)
}

func TestLoad_ValuesFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
global:
  log_level: debug
benchmark:
  results_dir: /tmp/bench-results
  packages_file: deps.txt
  runs: 5
  tools: [uv, poetry]
  baseline: uv
  command_timeout_seconds: 60
  uv:
    mode: compile
history:
  enabled: true
  driver: sqlite
  sqlite:
    path: /tmp/history.db
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Global.LogLevel)
	assert.Equal(t, "/tmp/bench-results", cfg.Benchmark.ResultsDir)
	assert.Equal(t, "deps.txt", cfg.Benchmark.PackagesFile)
	assert.Equal(t, 5, cfg.Benchmark.Runs)
	assert.Equal(t, []string{"uv", "poetry"}, cfg.Benchmark.Tools)
	assert.Equal(t, "uv", cfg.Benchmark.Baseline)
	assert.Equal(t, 60*time.Second, cfg.Benchmark.CommandTimeout())
	assert.Equal(t, benchmark.UVModeCompile, cfg.Benchmark.UV.Mode)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/history.db", cfg.History.SQLite.Path)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "benchmark: [not: a: map:"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		errSubstr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:      "unknown tool",
			mutate:    func(cfg *Config) { cfg.Benchmark.Tools = []string{"npm"} },
			errSubstr: "unknown tool",
		},
		{
			name:      "duplicate tool",
			mutate:    func(cfg *Config) { cfg.Benchmark.Tools = []string{"pip", "pip"} },
			errSubstr: "duplicate tool",
		},
		{
			name:      "unknown baseline",
			mutate:    func(cfg *Config) { cfg.Benchmark.Baseline = "npm" },
			errSubstr: "unknown baseline",
		},
		{
			name:      "zero runs",
			mutate:    func(cfg *Config) { cfg.Benchmark.Runs = -1 },
			errSubstr: "runs must be at least 1",
		},
		{
			name:      "bad uv mode",
			mutate:    func(cfg *Config) { cfg.Benchmark.UV.Mode = "yolo" },
			errSubstr: "unsupported uv mode",
		},
		{
			name: "bad history driver",
			mutate: func(cfg *Config) {
				cfg.History.Enabled = true
				cfg.History.Driver = "mysql"
			},
			errSubstr: "unsupported history driver",
		},
		{
			name: "s3 enabled without bucket",
			mutate: func(cfg *Config) {
				cfg.Upload = &UploadConfig{S3: &S3UploadConfig{Enabled: true}}
			},
			errSubstr: "upload.s3.bucket is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errSubstr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			}
		})
	}
}
