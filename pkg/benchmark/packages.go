package benchmark

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadPackages reads a package list file with one specifier per line,
// skipping blank lines.
func LoadPackages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening package list: %w", err)
	}
	defer f.Close()

	var packages []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		packages = append(packages, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading package list: %w", err)
	}

	return packages, nil
}
