package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, timeout time.Duration) Runner {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return NewRunner(log, &Config{Timeout: timeout})
}

func TestRun_Success(t *testing.T) {
	r := newTestRunner(t, 0)

	res := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo hello")

	assert.True(t, res.Success)
	assert.Equal(t, "hello\n", res.Output)
	assert.Greater(t, res.Duration, time.Duration(0))
}

func TestRun_NonZeroExitCapturesStderr(t *testing.T) {
	r := newTestRunner(t, 0)

	res := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo boom >&2; exit 3")

	assert.False(t, res.Success)
	assert.Equal(t, "boom\n", res.Output)
	assert.Greater(t, res.Duration, time.Duration(0))
}

func TestRun_NonZeroExitFallsBackToStdout(t *testing.T) {
	r := newTestRunner(t, 0)

	res := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo detail; exit 1")

	assert.False(t, res.Success)
	assert.Equal(t, "detail\n", res.Output)
}

func TestRun_ExecutableNotFound(t *testing.T) {
	r := newTestRunner(t, 0)

	res := r.Run(context.Background(), t.TempDir(), "definitely-not-a-real-binary")

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Output)
	assert.Equal(t, time.Duration(0), res.Duration)
}

func TestRun_TimeoutPinsDuration(t *testing.T) {
	timeout := 100 * time.Millisecond
	r := newTestRunner(t, timeout)

	res := r.Run(context.Background(), t.TempDir(), "sleep", "5")

	require.False(t, res.Success)
	assert.True(t, strings.Contains(res.Output, "timed out"), "output: %q", res.Output)
	assert.Equal(t, timeout, res.Duration)
}

func TestRunnerFunc(t *testing.T) {
	var gotName string

	fake := RunnerFunc(func(_ context.Context, _, name string, _ ...string) Result {
		gotName = name

		return Result{Success: true, Output: "ok"}
	})

	res := fake.Run(context.Background(), "/tmp", "pip", "install")

	assert.True(t, res.Success)
	assert.Equal(t, "pip", gotName)
}
