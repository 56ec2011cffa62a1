package benchmark

import (
	"fmt"
	"os"
	"path/filepath"
)

// acquireWorkspace creates a fresh, uniquely named trial directory under
// root, removing any stale directory left behind by a previously aborted
// run. The returned release function removes the workspace and is paired
// with every acquisition; callers defer it so cleanup runs on every exit
// path, including early-failure returns.
func acquireWorkspace(root, name string) (string, func(), error) {
	dir := filepath.Join(root, name)

	if err := os.RemoveAll(dir); err != nil {
		return "", nil, fmt.Errorf("removing stale workspace %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, fmt.Errorf("creating workspace %s: %w", dir, err)
	}

	release := func() {
		_ = os.RemoveAll(dir)
	}

	return dir, release, nil
}

// fileSize returns the byte size of the file at path, or 0 when it does
// not exist.
func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}

	return info.Size()
}
