package report

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/pkgbench/pkgbench/pkg/analysis"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Keep rendered output assertable.
	color.NoColor = true
}

func testSummaries() map[string]*analysis.ToolSummary {
	return map[string]*analysis.ToolSummary{
		"pip": {
			Tool: "pip", Status: analysis.StatusSuccess,
			SuccessfulRuns: 3, TotalRuns: 3,
			InstallTime:  &analysis.DurationStats{Mean: 10.0, Min: 9.0, Max: 11.0, Stdev: 1.0},
			LockFileSize: &analysis.LockSizeStats{Mean: 2048, Min: 1024, Max: 3072},
		},
		"poetry": {
			Tool: "poetry", Status: analysis.StatusFailed,
			SuccessfulRuns: 0, TotalRuns: 3,
		},
		"uv": {
			Tool: "uv", Status: analysis.StatusSuccess,
			SuccessfulRuns: 3, TotalRuns: 3,
			InstallTime:  &analysis.DurationStats{Mean: 5.0, Min: 4.0, Max: 6.0, Stdev: 1.0},
			LockFileSize: &analysis.LockSizeStats{Mean: 4096, Min: 4096, Max: 4096},
		},
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer

	RenderSummary(&buf, []string{"pip", "poetry", "uv"}, testSummaries())
	out := buf.String()

	assert.Contains(t, out, "BENCHMARK SUMMARY")
	assert.Contains(t, out, "Fastest tool: UV (5.00s mean)")
	assert.Contains(t, out, "✓ PIP")
	assert.Contains(t, out, "✗ POETRY")
	assert.Contains(t, out, "Install time: 10.00s (min: 9.00s, max: 11.00s, stdev: 1.00s)")
	assert.Contains(t, out, "Successful runs: 0/3")
}

func TestRenderComparison(t *testing.T) {
	var buf bytes.Buffer

	RenderComparison(&buf, testSummaries())
	out := buf.String()

	assert.Contains(t, out, "Tool")
	assert.Contains(t, out, "10.00s")
	assert.Contains(t, out, "2.0KB")

	// Failed tools render placeholders, not numbers.
	assert.Contains(t, out, "N/A")
}

func TestRenderSpeedup(t *testing.T) {
	var buf bytes.Buffer

	RenderSpeedup(&buf, "pip", []string{"pip", "poetry", "uv"}, testSummaries())
	out := buf.String()

	assert.Contains(t, out, "SPEEDUP COMPARISON (relative to pip)")
	assert.Contains(t, out, "UV: 2.0x faster than pip")

	// Failed tools are omitted from the table.
	assert.NotContains(t, out, "POETRY")
}

func TestRenderSpeedup_BaselineFailed(t *testing.T) {
	summaries := testSummaries()
	summaries["pip"].Status = analysis.StatusFailed
	summaries["pip"].InstallTime = nil

	var buf bytes.Buffer

	RenderSpeedup(&buf, "pip", []string{"pip", "uv"}, summaries)

	assert.Contains(t, buf.String(), "pip benchmark not available for comparison")
}

func TestRenderSpeedup_SlowerTool(t *testing.T) {
	summaries := testSummaries()
	summaries["uv"].InstallTime.Mean = 20.0

	var buf bytes.Buffer

	RenderSpeedup(&buf, "pip", []string{"pip", "uv"}, summaries)

	assert.Contains(t, buf.String(), "UV: 2.0x slower than pip")
}
