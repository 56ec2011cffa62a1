package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pkgbench/pkgbench/pkg/benchmark"
)

const (
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultResultsDir is the default directory for benchmark results.
	DefaultResultsDir = "./results"

	// DefaultPackagesFile is the default package list path.
	DefaultPackagesFile = "packages.txt"

	// DefaultRuns is the default number of trials per tool.
	DefaultRuns = 3

	// DefaultTimeoutSeconds bounds each external command invocation.
	DefaultTimeoutSeconds = 300

	// DefaultBaseline is the tool relative speedups are computed against.
	DefaultBaseline = benchmark.ToolPip

	// DefaultWorkDir is where ephemeral trial workspaces are created.
	DefaultWorkDir = "."

	// DefaultHistoryDriver is the database driver for the run history.
	DefaultHistoryDriver = "sqlite"

	// DefaultHistoryPath is the sqlite file for the run history.
	DefaultHistoryPath = "./results/history.db"
)

// Config is the root configuration for pkgbench.
type Config struct {
	Global    GlobalConfig    `yaml:"global"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
	History   HistoryConfig   `yaml:"history"`
	Upload    *UploadConfig   `yaml:"upload,omitempty"`
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level"`
}

// BenchmarkConfig contains benchmark-specific settings.
type BenchmarkConfig struct {
	ResultsDir     string   `yaml:"results_dir"`
	PackagesFile   string   `yaml:"packages_file"`
	WorkDir        string   `yaml:"work_dir"`
	Runs           int      `yaml:"runs"`
	Tools          []string `yaml:"tools"`
	Baseline       string   `yaml:"baseline"`
	TimeoutSeconds int      `yaml:"command_timeout_seconds"`
	UV             UVConfig `yaml:"uv"`
}

// UVConfig contains settings for the uv-style scenario.
type UVConfig struct {
	Mode string `yaml:"mode"`
}

// HistoryConfig configures the optional cross-invocation run history.
type HistoryConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig contains sqlite driver settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig contains postgres driver settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// UploadConfig configures optional report uploads.
type UploadConfig struct {
	S3 *S3UploadConfig `yaml:"s3,omitempty"`
}

// S3UploadConfig contains S3-compatible upload settings.
type S3UploadConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	EndpointURL     string `yaml:"endpoint_url"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

// Default returns a configuration with all defaults applied and no file
// loaded.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	return cfg
}

// Load reads and parses a configuration file from the given path. An
// empty path yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for unspecified configuration options.
func (c *Config) applyDefaults() {
	if c.Global.LogLevel == "" {
		c.Global.LogLevel = DefaultLogLevel
	}

	if c.Benchmark.ResultsDir == "" {
		c.Benchmark.ResultsDir = DefaultResultsDir
	}

	if c.Benchmark.PackagesFile == "" {
		c.Benchmark.PackagesFile = DefaultPackagesFile
	}

	if c.Benchmark.WorkDir == "" {
		c.Benchmark.WorkDir = DefaultWorkDir
	}

	if c.Benchmark.Runs == 0 {
		c.Benchmark.Runs = DefaultRuns
	}

	if len(c.Benchmark.Tools) == 0 {
		c.Benchmark.Tools = append([]string(nil), benchmark.Tools...)
	}

	if c.Benchmark.Baseline == "" {
		c.Benchmark.Baseline = DefaultBaseline
	}

	if c.Benchmark.TimeoutSeconds == 0 {
		c.Benchmark.TimeoutSeconds = DefaultTimeoutSeconds
	}

	if c.Benchmark.UV.Mode == "" {
		c.Benchmark.UV.Mode = benchmark.UVModeManifest
	}

	if c.History.Driver == "" {
		c.History.Driver = DefaultHistoryDriver
	}

	if c.History.SQLite.Path == "" {
		c.History.SQLite.Path = DefaultHistoryPath
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Benchmark.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", c.Benchmark.Runs)
	}

	seen := make(map[string]struct{}, len(c.Benchmark.Tools))

	for _, tool := range c.Benchmark.Tools {
		if !isValidTool(tool) {
			return fmt.Errorf("unknown tool %q", tool)
		}

		if _, dup := seen[tool]; dup {
			return fmt.Errorf("duplicate tool %q", tool)
		}

		seen[tool] = struct{}{}
	}

	if !isValidTool(c.Benchmark.Baseline) {
		return fmt.Errorf("unknown baseline tool %q", c.Benchmark.Baseline)
	}

	switch c.Benchmark.UV.Mode {
	case benchmark.UVModeManifest, benchmark.UVModeCompile:
	default:
		return fmt.Errorf(
			"unsupported uv mode %q (use %q or %q)",
			c.Benchmark.UV.Mode, benchmark.UVModeManifest, benchmark.UVModeCompile,
		)
	}

	if c.History.Enabled {
		switch c.History.Driver {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("unsupported history driver %q", c.History.Driver)
		}
	}

	if c.Upload != nil && c.Upload.S3 != nil && c.Upload.S3.Enabled {
		if c.Upload.S3.Bucket == "" {
			return fmt.Errorf("upload.s3.bucket is required when S3 upload is enabled")
		}
	}

	return nil
}

// CommandTimeout returns the per-invocation timeout as a duration.
func (c *BenchmarkConfig) CommandTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// isValidTool checks if the given tool identifier is supported.
func isValidTool(tool string) bool {
	for _, known := range benchmark.Tools {
		if tool == known {
			return true
		}
	}

	return false
}
