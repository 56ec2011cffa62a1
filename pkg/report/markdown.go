package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkgbench/pkgbench/pkg/analysis"
	"github.com/pkgbench/pkgbench/pkg/benchmark"
)

// GenerateMarkdown renders a markdown report for a persisted record set:
// a comparison table, a speedup table relative to the baseline, and
// per-run detail tables.
func GenerateMarkdown(set benchmark.RecordSet, baseline string) string {
	summaries := analysis.SummarizeAll(set)

	tools := make([]string, 0, len(set))
	for tool := range set {
		tools = append(tools, tool)
	}

	sort.Strings(tools)

	var b strings.Builder

	b.WriteString("# Package Manager Benchmark\n\n")

	if fastest, ok := analysis.Fastest(summaries); ok {
		fmt.Fprintf(&b, "Fastest tool: **%s** (%.2fs mean install time)\n\n",
			fastest, summaries[fastest].InstallTime.Mean)
	}

	b.WriteString("## Results\n\n")
	b.WriteString("| Tool | Status | Runs | Mean (s) | Min (s) | Max (s) | Stdev (s) | Mean Lock Size (KB) |\n")
	b.WriteString("|------|--------|------|----------|---------|---------|-----------|---------------------|\n")

	for _, tool := range tools {
		s := summaries[tool]

		if s.Status != analysis.StatusSuccess {
			fmt.Fprintf(&b, "| %s | ❌ FAILED | %d/%d | - | - | - | - | - |\n",
				tool, s.SuccessfulRuns, s.TotalRuns)

			continue
		}

		fmt.Fprintf(&b, "| %s | ✅ SUCCESS | %d/%d | %.2f | %.2f | %.2f | %.2f | %.1f |\n",
			tool, s.SuccessfulRuns, s.TotalRuns,
			s.InstallTime.Mean, s.InstallTime.Min, s.InstallTime.Max,
			s.InstallTime.Stdev, s.LockFileSize.Mean/1024)
	}

	b.WriteString("\n")

	if base, ok := summaries[baseline]; ok && base.Status == analysis.StatusSuccess {
		fmt.Fprintf(&b, "## Speedup relative to %s\n\n", baseline)
		b.WriteString("| Tool | Speedup |\n")
		b.WriteString("|------|--------|\n")

		for _, tool := range tools {
			if tool == baseline {
				continue
			}

			ratio, ok := analysis.Speedup(base, summaries[tool])
			if !ok {
				continue
			}

			fmt.Fprintf(&b, "| %s | %.2fx |\n", tool, ratio)
		}

		b.WriteString("\n")
	}

	b.WriteString("## Runs\n\n")

	for _, tool := range tools {
		fmt.Fprintf(&b, "### %s\n\n", tool)
		b.WriteString("| Run | Duration (s) | Lock Size (B) | Success | Error |\n")
		b.WriteString("|-----|--------------|---------------|---------|-------|\n")

		for _, rec := range set[tool] {
			errDetail := rec.ErrorDetail
			if errDetail == "" {
				errDetail = "-"
			}

			fmt.Fprintf(&b, "| %d | %.2f | %d | %t | %s |\n",
				rec.RunNumber, rec.Duration, rec.LockSize, rec.Success,
				markdownEscape(errDetail))
		}

		b.WriteString("\n")
	}

	return b.String()
}

// markdownEscape keeps diagnostic text from breaking table rows.
func markdownEscape(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")

	return s
}
