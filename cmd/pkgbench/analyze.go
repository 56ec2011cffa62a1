package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pkgbench/pkgbench/pkg/analysis"
	"github.com/pkgbench/pkgbench/pkg/benchmark"
	"github.com/pkgbench/pkgbench/pkg/report"
)

var analyzeBaseline string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <results-file>",
	Short: "Analyze a persisted benchmark results file",
	Long:  `Reload a benchmark results file and print the summary, comparison and speedup tables.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeBaseline, "baseline", benchmark.ToolPip,
		"Tool speedups are computed against")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	log.WithField("file", path).Info("Analyzing results")

	set, err := report.Load(path)
	if err != nil {
		return fmt.Errorf("loading results: %w", err)
	}

	summaries := analysis.SummarizeAll(set)
	order := toolOrder(set)

	report.RenderSummary(os.Stdout, order, summaries)
	report.RenderComparison(os.Stdout, summaries)
	report.RenderSpeedup(os.Stdout, analyzeBaseline, order, summaries)

	return nil
}

// toolOrder returns the tools present in the set, canonical tools first,
// unknown tools appended alphabetically.
func toolOrder(set benchmark.RecordSet) []string {
	order := make([]string, 0, len(set))
	seen := make(map[string]struct{}, len(set))

	for _, tool := range benchmark.Tools {
		if _, ok := set[tool]; ok {
			order = append(order, tool)
			seen[tool] = struct{}{}
		}
	}

	extra := make([]string, 0, len(set))

	for tool := range set {
		if _, ok := seen[tool]; !ok {
			extra = append(extra, tool)
		}
	}

	sort.Strings(extra)

	return append(order, extra...)
}
