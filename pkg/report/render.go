package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/pkgbench/pkgbench/pkg/analysis"
)

// RenderSummary writes a per-tool status block for every summarized tool,
// in the given order.
func RenderSummary(w io.Writer, order []string, summaries map[string]*analysis.ToolSummary) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 70))
	fmt.Fprintln(w, "BENCHMARK SUMMARY")
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 70))

	if fastest, ok := analysis.Fastest(summaries); ok {
		fmt.Fprintf(w, "Fastest tool: %s (%.2fs mean)\n\n",
			strings.ToUpper(fastest), summaries[fastest].InstallTime.Mean)
	}

	for _, tool := range order {
		s, ok := summaries[tool]
		if !ok {
			continue
		}

		fmt.Fprintf(w, "%s %s\n", statusGlyph(s.Status), strings.ToUpper(tool))

		if s.Status == analysis.StatusFailed {
			fmt.Fprintf(w, "   Status: FAILED\n")
			fmt.Fprintf(w, "   Successful runs: %d/%d\n\n", s.SuccessfulRuns, s.TotalRuns)

			continue
		}

		fmt.Fprintf(w, "   Install time: %.2fs (min: %.2fs, max: %.2fs",
			s.InstallTime.Mean, s.InstallTime.Min, s.InstallTime.Max)

		if s.InstallTime.Stdev > 0 {
			fmt.Fprintf(w, ", stdev: %.2fs", s.InstallTime.Stdev)
		}

		fmt.Fprintln(w, ")")
		fmt.Fprintf(w, "   Lock file size: %.1fKB (min: %.1fKB, max: %.1fKB)\n",
			s.LockFileSize.Mean/1024,
			float64(s.LockFileSize.Min)/1024,
			float64(s.LockFileSize.Max)/1024)
		fmt.Fprintf(w, "   Successful runs: %d/%d\n\n", s.SuccessfulRuns, s.TotalRuns)
	}
}

// RenderComparison writes the cross-tool comparison table, sorted by
// tool name.
func RenderComparison(w io.Writer, summaries map[string]*analysis.ToolSummary) {
	fmt.Fprintf(w, "%-12s %-15s %-15s %s\n", "Tool", "Time (s)", "Lock Size (KB)", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 52))

	for _, tool := range sortedTools(summaries) {
		s := summaries[tool]

		timeStr := "N/A"
		sizeStr := "N/A"

		if s.Status == analysis.StatusSuccess {
			timeStr = fmt.Sprintf("%.2fs", s.InstallTime.Mean)
			sizeStr = fmt.Sprintf("%.1fKB", s.LockFileSize.Mean/1024)
		}

		fmt.Fprintf(w, "%-12s %-15s %-15s %s\n", tool, timeStr, sizeStr, statusGlyph(s.Status))
	}

	fmt.Fprintln(w)
}

// RenderSpeedup writes the speedup table relative to the baseline tool,
// in the given order. The table is present only when the baseline
// summary is successful.
func RenderSpeedup(w io.Writer, baseline string, order []string, summaries map[string]*analysis.ToolSummary) {
	fmt.Fprintf(w, "SPEEDUP COMPARISON (relative to %s)\n", baseline)

	base, ok := summaries[baseline]
	if !ok || base.Status != analysis.StatusSuccess {
		fmt.Fprintf(w, "   %s benchmark not available for comparison\n\n", baseline)

		return
	}

	for _, tool := range order {
		if tool == baseline {
			continue
		}

		ratio, ok := analysis.Speedup(base, summaries[tool])
		if !ok {
			continue
		}

		if ratio > 1 {
			fmt.Fprintf(w, "   %s: %.1fx faster than %s\n", strings.ToUpper(tool), ratio, baseline)
		} else {
			fmt.Fprintf(w, "   %s: %.1fx slower than %s\n", strings.ToUpper(tool), 1/ratio, baseline)
		}
	}

	fmt.Fprintln(w)
}

func statusGlyph(status analysis.Status) string {
	if status == analysis.StatusSuccess {
		return color.GreenString("✓")
	}

	return color.RedString("✗")
}

func sortedTools(summaries map[string]*analysis.ToolSummary) []string {
	tools := make([]string, 0, len(summaries))
	for tool := range summaries {
		tools = append(tools, tool)
	}

	sort.Strings(tools)

	return tools
}
