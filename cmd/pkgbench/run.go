package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pkgbench/pkgbench/pkg/analysis"
	"github.com/pkgbench/pkgbench/pkg/benchmark"
	"github.com/pkgbench/pkgbench/pkg/command"
	"github.com/pkgbench/pkgbench/pkg/config"
	"github.com/pkgbench/pkgbench/pkg/history"
	"github.com/pkgbench/pkgbench/pkg/report"
	"github.com/pkgbench/pkgbench/pkg/upload"
)

var (
	runTools        []string
	runCount        int
	runPackagesFile string
	runUVMode       string
	runVerbose      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark",
	Long:  `Run every configured package manager against the package list and report the results.`,
	RunE:  runBenchmark,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringSliceVar(&runTools, "tool", nil,
		"Limit to these tools (comma-separated or repeated flag)")
	runCmd.Flags().IntVar(&runCount, "runs", 0,
		"Number of runs per tool (overrides config)")
	runCmd.Flags().StringVar(&runPackagesFile, "packages", "",
		"Path to the package list file (overrides config)")
	runCmd.Flags().StringVar(&runUVMode, "uv-mode", "",
		"uv lock strategy: manifest or compile (overrides config)")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false,
		"Enable debug logging")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags win over config file values.
	if len(runTools) > 0 {
		cfg.Benchmark.Tools = runTools
	}

	if runCount > 0 {
		cfg.Benchmark.Runs = runCount
	}

	if runPackagesFile != "" {
		cfg.Benchmark.PackagesFile = runPackagesFile
	}

	if runUVMode != "" {
		cfg.Benchmark.UV.Mode = runUVMode
	}

	if runVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	packages, err := benchmark.LoadPackages(cfg.Benchmark.PackagesFile)
	if err != nil {
		return fmt.Errorf("loading package list: %w", err)
	}

	log.WithFields(logrus.Fields{
		"packages": len(packages),
		"tools":    cfg.Benchmark.Tools,
		"runs":     cfg.Benchmark.Runs,
	}).Info("Starting benchmark")

	// Setup context with signal handling.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
	}()

	// Create S3 uploader if configured.
	var reportUploader upload.Uploader

	if cfg.Upload != nil && cfg.Upload.S3 != nil && cfg.Upload.S3.Enabled {
		reportUploader, err = upload.NewS3Uploader(log, cfg.Upload.S3)
		if err != nil {
			return fmt.Errorf("creating S3 uploader: %w", err)
		}

		// Fail fast: verify S3 is reachable and writable before benchmarking.
		if err := reportUploader.Preflight(ctx); err != nil {
			return fmt.Errorf("S3 upload preflight check failed: %w", err)
		}

		log.Info("S3 upload preflight check passed")
	}

	runner := command.NewRunner(log, &command.Config{
		Timeout: cfg.Benchmark.CommandTimeout(),
	})

	scenarioCfg := &benchmark.Config{
		Packages: packages,
		WorkRoot: cfg.Benchmark.WorkDir,
		UVMode:   cfg.Benchmark.UV.Mode,
	}

	results := make(benchmark.RecordSet, len(cfg.Benchmark.Tools))

	for _, tool := range cfg.Benchmark.Tools {
		scenario, err := benchmark.NewScenario(log, tool, scenarioCfg, runner)
		if err != nil {
			return fmt.Errorf("creating %s scenario: %w", tool, err)
		}

		log.WithField("tool", tool).Info("Benchmarking tool")

		for run := 1; run <= cfg.Benchmark.Runs; run++ {
			select {
			case <-ctx.Done():
				log.Info("Benchmark interrupted")

				return ctx.Err()
			default:
			}

			log.WithFields(logrus.Fields{
				"tool": tool,
				"run":  run,
			}).Info("Starting run")

			rec := scenario.Run(ctx, run)
			if rec.Success {
				log.WithFields(logrus.Fields{
					"tool":     tool,
					"run":      run,
					"duration": rec.Duration,
				}).Info("Run completed")
			} else {
				log.WithFields(logrus.Fields{
					"tool":  tool,
					"run":   run,
					"error": rec.ErrorDetail,
				}).Warn("Run failed")
			}

			results[tool] = append(results[tool], rec)
		}
	}

	summaries := analysis.SummarizeAll(results)

	report.RenderSummary(os.Stdout, cfg.Benchmark.Tools, summaries)
	report.RenderComparison(os.Stdout, summaries)
	report.RenderSpeedup(os.Stdout, cfg.Benchmark.Baseline, cfg.Benchmark.Tools, summaries)

	persister := report.NewPersister(log, cfg.Benchmark.ResultsDir)

	path, err := persister.Write(results)
	if err != nil {
		return fmt.Errorf("persisting results: %w", err)
	}

	if cfg.History.Enabled {
		if err := saveHistory(ctx, cfg, path, results); err != nil {
			log.WithError(err).Warn("Failed to save run history")
		}
	}

	if reportUploader != nil {
		key, err := reportUploader.UploadReport(ctx, path)
		if err != nil {
			log.WithError(err).Warn("Failed to upload report")
		} else {
			log.WithField("key", key).Info("Report uploaded")
		}
	}

	log.Info("Benchmark completed")

	return nil
}

// saveHistory stores the invocation's records keyed by the report filename.
func saveHistory(
	ctx context.Context,
	cfg *config.Config,
	reportPath string,
	results benchmark.RecordSet,
) error {
	store := history.NewStore(log, &cfg.History)

	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("starting history store: %w", err)
	}

	defer func() {
		if err := store.Stop(); err != nil {
			log.WithError(err).Warn("Failed to stop history store")
		}
	}()

	invocationID := strings.TrimSuffix(filepath.Base(reportPath), filepath.Ext(reportPath))

	if err := store.SaveRecords(ctx, invocationID, results); err != nil {
		return fmt.Errorf("saving records: %w", err)
	}

	log.WithField("invocation", invocationID).Info("Run history saved")

	return nil
}
