package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkgbench/pkgbench/pkg/benchmark"
	"github.com/sirupsen/logrus"
)

// filenameLayout is the timestamp embedded in result filenames so that
// repeated invocations never collide.
const filenameLayout = "20060102_150405"

// Persister writes complete benchmark record sets, failures included, to
// timestamped files in a results directory.
type Persister struct {
	log logrus.FieldLogger
	dir string
}

// NewPersister creates a Persister rooted at dir.
func NewPersister(log logrus.FieldLogger, dir string) *Persister {
	return &Persister{
		log: log.WithField("component", "report"),
		dir: dir,
	}
}

// Write persists the record set and returns the path of the file written.
// The report is written once per benchmark invocation, after all tools
// have completed.
func (p *Persister) Write(set benchmark.RecordSet) (string, error) {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return "", fmt.Errorf("creating results directory: %w", err)
	}

	name := fmt.Sprintf("benchmark_%s.json", time.Now().Format(filenameLayout))
	path := filepath.Join(p.dir, name)

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing results file: %w", err)
	}

	p.log.WithField("path", path).Info("Detailed results saved")

	return path, nil
}

// Load reads a persisted record set back from disk and validates every
// record's identifying fields.
func Load(path string) (benchmark.RecordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results file: %w", err)
	}

	var set benchmark.RecordSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing results file: %w", err)
	}

	for tool, records := range set {
		for _, rec := range records {
			if err := rec.Validate(); err != nil {
				return nil, fmt.Errorf("invalid record for %s: %w", tool, err)
			}
		}
	}

	return set, nil
}
