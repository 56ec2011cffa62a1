package benchmark

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkgbench/pkgbench/pkg/command"
	"github.com/sirupsen/logrus"
)

// NewUVScenario creates the uv-style scenario. In manifest mode it writes
// a project manifest and times a single batched add; in compile mode it
// writes a flat requirements file and times the compile command.
func NewUVScenario(log logrus.FieldLogger, cfg *Config, runner command.Runner) Scenario {
	return &uvScenario{
		log:    log.WithField("scenario", ToolUV),
		cfg:    cfg,
		runner: runner,
	}
}

type uvScenario struct {
	log    logrus.FieldLogger
	cfg    *Config
	runner command.Runner
}

// Ensure interface compliance.
var _ Scenario = (*uvScenario)(nil)

func (s *uvScenario) Tool() string { return ToolUV }

// Run performs one uv trial in a fresh workspace.
func (s *uvScenario) Run(ctx context.Context, runNumber int) *RunRecord {
	rec := NewRecord(ToolUV, runNumber, len(s.cfg.Packages))

	ws, release, err := acquireWorkspace(s.cfg.WorkRoot, fmt.Sprintf("test_uv_run%d", runNumber))
	if err != nil {
		rec.ErrorDetail = err.Error()

		return rec
	}
	defer release()

	log := s.log.WithField("run", runNumber)

	var resolve command.Result

	switch s.cfg.UVMode {
	case UVModeCompile:
		log.Debug("Creating requirements.txt")

		reqPath := filepath.Join(ws, "requirements.txt")
		if err := os.WriteFile(reqPath, []byte(strings.Join(s.cfg.Packages, "\n")), 0644); err != nil {
			rec.ErrorDetail = fmt.Sprintf("writing requirements.txt: %v", err)

			return rec
		}

		log.Debug("Compiling requirements")

		resolve = s.runner.Run(ctx, ws, "uv", "pip", "compile", "requirements.txt", "-o", "uv.lock")
	default:
		log.Debug("Creating project")

		if err := writeUVManifest(ws); err != nil {
			rec.ErrorDetail = err.Error()

			return rec
		}

		log.Debug("Adding packages")

		args := append([]string{"add"}, s.cfg.Packages...)
		resolve = s.runner.Run(ctx, ws, "uv", args...)
	}

	lockPath := filepath.Join(ws, "uv.lock")

	rec.Duration = resolve.Duration.Seconds()
	rec.LockSize = fileSize(lockPath)
	rec.LockPath = lockPath
	rec.Success = resolve.Success

	if !resolve.Success {
		rec.ErrorDetail = resolve.Output
	}

	return rec
}
