package analysis

import (
	"math"

	"github.com/pkgbench/pkgbench/pkg/benchmark"
)

// Status of a tool's summary.
type Status string

const (
	// StatusSuccess means at least one run of the tool succeeded.
	StatusSuccess Status = "SUCCESS"

	// StatusFailed means no run of the tool succeeded.
	StatusFailed Status = "FAILED"
)

// DurationStats holds install-time statistics in seconds.
type DurationStats struct {
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Stdev float64 `json:"stdev"`
}

// LockSizeStats holds lock-artifact size statistics in bytes.
type LockSizeStats struct {
	Mean float64 `json:"mean"`
	Min  int64   `json:"min"`
	Max  int64   `json:"max"`
}

// ToolSummary is derived from a tool's completed run records. It is
// recomputed fully on every analysis pass; nothing updates it
// incrementally. InstallTime and LockFileSize are nil unless Status is
// StatusSuccess.
type ToolSummary struct {
	Tool           string         `json:"tool"`
	Status         Status         `json:"status"`
	SuccessfulRuns int            `json:"successful_runs"`
	TotalRuns      int            `json:"total_runs"`
	InstallTime    *DurationStats `json:"install_time,omitempty"`
	LockFileSize   *LockSizeStats `json:"lock_file_size,omitempty"`
}

// Summarize derives a ToolSummary from one tool's run records. Numeric
// fields come from successful runs only; a tool with zero successful runs
// yields a FAILED summary with nil statistics, never an error.
func Summarize(tool string, records []*benchmark.RunRecord) *ToolSummary {
	summary := &ToolSummary{
		Tool:      tool,
		Status:    StatusFailed,
		TotalRuns: len(records),
	}

	var (
		durations []float64
		sizes     []int64
	)

	for _, rec := range records {
		if !rec.Success {
			continue
		}

		durations = append(durations, rec.Duration)
		sizes = append(sizes, rec.LockSize)
	}

	summary.SuccessfulRuns = len(durations)

	if summary.SuccessfulRuns == 0 {
		return summary
	}

	summary.Status = StatusSuccess

	minDur, maxDur := minMax(durations)
	summary.InstallTime = &DurationStats{
		Mean:  mean(durations),
		Min:   minDur,
		Max:   maxDur,
		Stdev: sampleStdev(durations),
	}

	sizesF := make([]float64, len(sizes))
	for i, s := range sizes {
		sizesF[i] = float64(s)
	}

	minSize, maxSize := minMax(sizesF)
	summary.LockFileSize = &LockSizeStats{
		Mean: mean(sizesF),
		Min:  int64(minSize),
		Max:  int64(maxSize),
	}

	return summary
}

// SummarizeAll derives summaries for every tool in the record set.
func SummarizeAll(set benchmark.RecordSet) map[string]*ToolSummary {
	summaries := make(map[string]*ToolSummary, len(set))

	for tool, records := range set {
		summaries[tool] = Summarize(tool, records)
	}

	return summaries
}

// Fastest returns the successful tool with the lowest mean install time.
// ok is false when no tool succeeded.
func Fastest(summaries map[string]*ToolSummary) (string, bool) {
	var (
		fastest string
		best    float64
		found   bool
	)

	for tool, s := range summaries {
		if s.Status != StatusSuccess {
			continue
		}

		if !found || s.InstallTime.Mean < best {
			fastest = tool
			best = s.InstallTime.Mean
			found = true
		}
	}

	return fastest, found
}

// Speedup returns the baseline's mean install time divided by the other
// tool's. Values above 1 mean the other tool is faster. ok is false
// unless both summaries are successful.
func Speedup(baseline, other *ToolSummary) (float64, bool) {
	if baseline == nil || other == nil {
		return 0, false
	}

	if baseline.Status != StatusSuccess || other.Status != StatusSuccess {
		return 0, false
	}

	return baseline.InstallTime.Mean / other.InstallTime.Mean, true
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]

	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}

		if v > hi {
			hi = v
		}
	}

	return lo, hi
}

// sampleStdev computes the sample standard deviation, 0 for fewer than
// two values.
func sampleStdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)

	var sum float64

	for _, v := range values {
		d := v - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)-1))
}
