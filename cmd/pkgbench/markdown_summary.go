package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkgbench/pkgbench/pkg/benchmark"
	"github.com/pkgbench/pkgbench/pkg/report"
)

var generateMarkdownSummaryCmd = &cobra.Command{
	Use:   "generate-markdown-summary",
	Short: "Generate a markdown summary from a benchmark results file",
	Long:  `Reads a persisted benchmark results file and produces a markdown summary file.`,
	RunE:  runGenerateMarkdownSummary,
}

var (
	mdResultsFile string
	mdOutput      string
	mdBaseline    string
)

func init() {
	rootCmd.AddCommand(generateMarkdownSummaryCmd)
	generateMarkdownSummaryCmd.Flags().StringVar(&mdResultsFile, "results-file", "",
		"Path to the benchmark results file")
	generateMarkdownSummaryCmd.Flags().StringVar(&mdOutput, "output", "",
		"Output file path (default: summary-<results-file>.md)")
	generateMarkdownSummaryCmd.Flags().StringVar(&mdBaseline, "baseline", benchmark.ToolPip,
		"Tool speedups are computed against")

	if err := generateMarkdownSummaryCmd.MarkFlagRequired("results-file"); err != nil {
		panic(err)
	}
}

func runGenerateMarkdownSummary(_ *cobra.Command, _ []string) error {
	log.WithField("results_file", mdResultsFile).
		Info("Generating markdown summary")

	set, err := report.Load(mdResultsFile)
	if err != nil {
		return fmt.Errorf("loading results: %w", err)
	}

	md := report.GenerateMarkdown(set, mdBaseline)

	output := mdOutput
	if output == "" {
		base := strings.TrimSuffix(
			filepath.Base(mdResultsFile), filepath.Ext(mdResultsFile),
		)
		output = fmt.Sprintf("summary-%s.md", base)
	}

	if err := os.WriteFile(output, []byte(md), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	log.WithField("output", output).
		Info("Markdown summary generated successfully")

	return nil
}
