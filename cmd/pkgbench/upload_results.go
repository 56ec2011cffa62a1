package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgbench/pkgbench/pkg/config"
	"github.com/pkgbench/pkgbench/pkg/upload"
)

var (
	uploadMethod      string
	uploadResultsFile string
)

var uploadResultsCmd = &cobra.Command{
	Use:   "upload-results",
	Short: "Upload a benchmark results file to remote storage",
	Long:  `Upload a persisted benchmark results file to S3-compatible storage using the config file settings.`,
	RunE:  runUploadResults,
}

func init() {
	rootCmd.AddCommand(uploadResultsCmd)
	uploadResultsCmd.Flags().StringVar(&uploadMethod, "method", "s3",
		"Upload method (currently only \"s3\")")
	uploadResultsCmd.Flags().StringVar(&uploadResultsFile, "results-file", "",
		"Path to the results file to upload")

	_ = uploadResultsCmd.MarkFlagRequired("results-file")
}

func runUploadResults(cmd *cobra.Command, args []string) error {
	if uploadMethod != "s3" {
		return fmt.Errorf("unsupported method %q (only \"s3\" is supported)", uploadMethod)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Upload == nil || cfg.Upload.S3 == nil || !cfg.Upload.S3.Enabled {
		return fmt.Errorf("S3 upload is not configured or not enabled in config")
	}

	uploader, err := upload.NewS3Uploader(log, cfg.Upload.S3)
	if err != nil {
		return fmt.Errorf("creating S3 uploader: %w", err)
	}

	ctx := cmd.Context()

	log.WithField("file", uploadResultsFile).Info("Uploading results")

	key, err := uploader.UploadReport(ctx, uploadResultsFile)
	if err != nil {
		return fmt.Errorf("uploading results: %w", err)
	}

	log.WithField("key", key).Info("Upload completed successfully")

	return nil
}
