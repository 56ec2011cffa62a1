package command

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout is the hard upper bound on the wall-clock duration of a
// single external command invocation.
const DefaultTimeout = 300 * time.Second

// Result is the outcome of one external command invocation. Every failure
// mode is folded into the result; callers never handle an error value.
type Result struct {
	// Success is true when the command exited with code zero.
	Success bool

	// Output holds captured stdout on success. On failure it holds the
	// most useful diagnostic: stderr, falling back to stdout, or a fault
	// description when the command never ran.
	Output string

	// Duration is the measured wall-clock time of the invocation. It is
	// pinned to the timeout bound on expiry and zero when the command
	// could not be started at all.
	Duration time.Duration
}

// Runner executes an external command in a working directory.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) Result
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir, name string, args ...string) Result

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, dir, name string, args ...string) Result {
	return f(ctx, dir, name, args...)
}

// Config for the subprocess runner.
type Config struct {
	// Timeout bounds each invocation. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// NewRunner creates a subprocess-backed Runner.
func NewRunner(log logrus.FieldLogger, cfg *Config) Runner {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &runner{
		log: log.WithField("component", "command"),
		cfg: cfg,
	}
}

type runner struct {
	log logrus.FieldLogger
	cfg *Config
}

// Ensure interface compliance.
var _ Runner = (*runner)(nil)

// Run executes the command in dir, capturing both output streams and
// enforcing the configured timeout. The child process is killed on expiry.
func (r *runner) Run(ctx context.Context, dir, name string, args ...string) Result {
	runCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.WithFields(logrus.Fields{
		"dir":     dir,
		"command": name + " " + strings.Join(args, " "),
	}).Debug("Running command")

	start := time.Now()

	if err := cmd.Start(); err != nil {
		return Result{Success: false, Output: err.Error(), Duration: 0}
	}

	err := cmd.Wait()
	elapsed := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		return Result{
			Success:  false,
			Output:   fmt.Sprintf("command timed out after %s", r.cfg.Timeout),
			Duration: r.cfg.Timeout,
		}
	}

	if err != nil {
		diagnostic := stderr.String()
		if diagnostic == "" {
			diagnostic = stdout.String()
		}

		return Result{Success: false, Output: diagnostic, Duration: elapsed}
	}

	return Result{Success: true, Output: stdout.String(), Duration: elapsed}
}
