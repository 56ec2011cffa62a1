package benchmark

import (
	"fmt"
	"time"
)

// RunRecord is one benchmark attempt by one tool. A record is write-once:
// the scenario constructs it at the end of a trial and nothing mutates it
// afterwards. LockSize and Duration are only meaningful when Success is
// true; callers must not treat a failed record's numeric fields as data.
type RunRecord struct {
	Tool         string    `json:"tool"`
	RunNumber    int       `json:"run_number"`
	Duration     float64   `json:"install_time"`
	LockSize     int64     `json:"lock_file_size"`
	LockPath     string    `json:"lock_file_path"`
	PackageCount int       `json:"packages_count"`
	Success      bool      `json:"success"`
	ErrorDetail  string    `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// RecordSet maps a tool identifier to its ordered run records from a
// single benchmark invocation.
type RecordSet map[string][]*RunRecord

// NewRecord seeds the write-once record for a trial, stamping the
// creation time.
func NewRecord(tool string, runNumber, packageCount int) *RunRecord {
	return &RunRecord{
		Tool:         tool,
		RunNumber:    runNumber,
		PackageCount: packageCount,
		Timestamp:    time.Now(),
	}
}

// Validate checks the identifying fields of a record. Run numbers are
// 1-based within a tool's run sequence.
func (r *RunRecord) Validate() error {
	if r.Tool == "" {
		return fmt.Errorf("tool identifier is required")
	}

	if r.RunNumber < 1 {
		return fmt.Errorf("run number must be 1-based, got %d", r.RunNumber)
	}

	return nil
}
