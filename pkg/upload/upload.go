package upload

import "context"

// Uploader pushes benchmark artifacts to remote storage.
type Uploader interface {
	// Preflight verifies that the remote storage is reachable and writable.
	// Writes a small test object to the bucket to fail fast on misconfiguration.
	Preflight(ctx context.Context) error

	// UploadReport uploads a single report file and returns the remote key
	// it was stored under.
	UploadReport(ctx context.Context, localPath string) (string, error)
}
