package benchmark

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgbench/pkgbench/pkg/command"
	"github.com/sirupsen/logrus"
)

// NewPipScenario creates the pip-style scenario: an isolated interpreter
// environment, a batched install (the timed step), then a freeze pass
// whose output becomes the lock artifact.
func NewPipScenario(log logrus.FieldLogger, cfg *Config, runner command.Runner) Scenario {
	return &pipScenario{
		log:    log.WithField("scenario", ToolPip),
		cfg:    cfg,
		runner: runner,
	}
}

type pipScenario struct {
	log    logrus.FieldLogger
	cfg    *Config
	runner command.Runner
}

// Ensure interface compliance.
var _ Scenario = (*pipScenario)(nil)

func (s *pipScenario) Tool() string { return ToolPip }

// Run performs one pip trial in a fresh workspace.
func (s *pipScenario) Run(ctx context.Context, runNumber int) *RunRecord {
	rec := NewRecord(ToolPip, runNumber, len(s.cfg.Packages))

	ws, release, err := acquireWorkspace(s.cfg.WorkRoot, fmt.Sprintf("test_pip_run%d", runNumber))
	if err != nil {
		rec.ErrorDetail = err.Error()

		return rec
	}
	defer release()

	log := s.log.WithField("run", runNumber)
	log.Debug("Creating venv")

	if res := s.runner.Run(ctx, ws, "python3", "-m", "venv", "venv"); !res.Success {
		rec.ErrorDetail = "failed to create venv: " + res.Output

		return rec
	}

	pip := filepath.Join(ws, "venv", "bin", "pip")

	log.Debug("Installing packages")

	installArgs := append([]string{"install", "-q"}, s.cfg.Packages...)
	install := s.runner.Run(ctx, ws, pip, installArgs...)

	// The freeze output is the lock artifact; it is attempted regardless
	// of the install outcome.
	lockPath := filepath.Join(ws, "requirements.txt")

	if freeze := s.runner.Run(ctx, ws, pip, "freeze"); freeze.Success {
		if err := os.WriteFile(lockPath, []byte(freeze.Output), 0644); err != nil {
			log.WithError(err).Warn("Failed to write freeze output")
		}
	}

	rec.Duration = install.Duration.Seconds()
	rec.LockSize = fileSize(lockPath)
	rec.LockPath = lockPath
	rec.Success = install.Success

	if !install.Success {
		rec.ErrorDetail = install.Output
	}

	return rec
}
