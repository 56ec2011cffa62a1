package benchmark

import (
	"context"
	"fmt"

	"github.com/pkgbench/pkgbench/pkg/command"
	"github.com/sirupsen/logrus"
)

// Tool identifiers.
const (
	ToolPip    = "pip"
	ToolPoetry = "poetry"
	ToolUV     = "uv"
)

// Modes for the uv-style scenario. The mode is chosen once per benchmark
// invocation, not per run.
const (
	// UVModeManifest writes a project manifest and times a single
	// batched add command.
	UVModeManifest = "manifest"

	// UVModeCompile writes a flat requirements file and times a compile
	// command producing the lock file.
	UVModeCompile = "compile"
)

// Tools lists the supported tool identifiers in their canonical order.
var Tools = []string{ToolPip, ToolPoetry, ToolUV}

// Scenario runs one complete install-and-lock trial for a single tool.
type Scenario interface {
	// Tool returns the identifier of the package manager being exercised.
	Tool() string

	// Run performs one trial and returns exactly one record, regardless
	// of where in the sequence a step failed. Per-trial faults never
	// escape; they are converted into a failed record.
	Run(ctx context.Context, runNumber int) *RunRecord
}

// Config is shared by all scenarios of one benchmark invocation.
type Config struct {
	// Packages is the list of package specifiers every tool installs.
	Packages []string

	// WorkRoot is the directory under which ephemeral trial workspaces
	// are created and removed.
	WorkRoot string

	// UVMode selects how the uv-style scenario drives the resolver.
	UVMode string
}

// NewScenario returns the scenario implementation for the given tool
// identifier.
func NewScenario(
	log logrus.FieldLogger,
	tool string,
	cfg *Config,
	runner command.Runner,
) (Scenario, error) {
	switch tool {
	case ToolPip:
		return NewPipScenario(log, cfg, runner), nil
	case ToolPoetry:
		return NewPoetryScenario(log, cfg, runner), nil
	case ToolUV:
		return NewUVScenario(log, cfg, runner), nil
	default:
		return nil, fmt.Errorf("unknown tool %q", tool)
	}
}
