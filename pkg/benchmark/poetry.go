package benchmark

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkgbench/pkgbench/pkg/command"
	"github.com/sirupsen/logrus"
)

// NewPoetryScenario creates the poetry-style scenario: a minimal project
// manifest, one add command per package, then the lock command as the
// timed step.
func NewPoetryScenario(log logrus.FieldLogger, cfg *Config, runner command.Runner) Scenario {
	return &poetryScenario{
		log:    log.WithField("scenario", ToolPoetry),
		cfg:    cfg,
		runner: runner,
	}
}

type poetryScenario struct {
	log    logrus.FieldLogger
	cfg    *Config
	runner command.Runner
}

// Ensure interface compliance.
var _ Scenario = (*poetryScenario)(nil)

func (s *poetryScenario) Tool() string { return ToolPoetry }

// Run performs one poetry trial in a fresh workspace.
func (s *poetryScenario) Run(ctx context.Context, runNumber int) *RunRecord {
	rec := NewRecord(ToolPoetry, runNumber, len(s.cfg.Packages))

	ws, release, err := acquireWorkspace(s.cfg.WorkRoot, fmt.Sprintf("test_poetry_run%d", runNumber))
	if err != nil {
		rec.ErrorDetail = err.Error()

		return rec
	}
	defer release()

	log := s.log.WithField("run", runNumber)
	log.Debug("Creating project")

	if err := writePoetryManifest(ws); err != nil {
		rec.ErrorDetail = err.Error()

		return rec
	}

	log.Debug("Adding packages")

	// A failed add does not abort the trial; the terminal lock step
	// decides the run's outcome.
	for _, pkg := range s.cfg.Packages {
		if res := s.runner.Run(ctx, ws, "poetry", "add", "-q", pkg); !res.Success {
			log.WithFields(logrus.Fields{
				"package": pkg,
				"output":  res.Output,
			}).Debug("Failed to add package")
		}
	}

	log.Debug("Generating lock file")

	lock := s.runner.Run(ctx, ws, "poetry", "lock", "--no-update")
	lockPath := filepath.Join(ws, "poetry.lock")

	rec.Duration = lock.Duration.Seconds()
	rec.LockSize = fileSize(lockPath)
	rec.LockPath = lockPath
	rec.Success = lock.Success

	if !lock.Success {
		rec.ErrorDetail = lock.Output
	}

	return rec
}
