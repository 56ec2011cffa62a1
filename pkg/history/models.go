package history

// Run is one persisted benchmark trial, keyed by the invocation that
// produced it.
type Run struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	InvocationID string  `gorm:"index" json:"invocation_id"`
	Tool         string  `gorm:"index" json:"tool"`
	RunNumber    int     `json:"run_number"`
	InstallTime  float64 `json:"install_time"`
	LockFileSize int64   `json:"lock_file_size"`
	PackageCount int     `json:"packages_count"`
	Success      bool    `json:"success"`
	ErrorDetail  string  `json:"error_message,omitempty"`
	Timestamp    int64   `json:"timestamp"`
}

// InvocationSummary aggregates the stored runs of one benchmark
// invocation.
type InvocationSummary struct {
	InvocationID string `json:"invocation_id"`
	Records      int64  `json:"records"`
	Succeeded    int64  `json:"succeeded"`
	FirstRun     int64  `json:"first_run"`
}
