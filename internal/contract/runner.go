package contract

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// LocalToolRunner implements the ToolRunner interface by executing
// binaries installed on the machine.
type LocalToolRunner struct{}

var _ ToolRunner = &LocalToolRunner{} // Compile-time check

// NewLocalToolRunner creates a new instance of the local tool runner.
func NewLocalToolRunner() *LocalToolRunner {
	return &LocalToolRunner{}
}

// Run executes a command with the given timeout and returns stdout and
// stderr separately. The timeout bounds the whole invocation; an overrun
// surfaces as an error wrapping context.DeadlineExceeded so callers can
// report it as a timeout rather than a tool failure.
func (r *LocalToolRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, []byte, error) {
	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if runCtx.Err() != nil {
		// Prefer the deadline error over the kill-induced exec error.
		err = runCtx.Err()
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// LookPath implements the ToolRunner interface.
func (r *LocalToolRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
