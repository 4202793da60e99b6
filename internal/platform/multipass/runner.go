package multipass

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// Runner executes one backend command. A non-zero exit is reported
// through the exit code, not the error; the error is reserved for
// failures to run the command at all (missing binary, killed context).
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, exitCode int, err error)
}

// execRunner runs commands through os/exec, tracing every invocation at
// debug level.
type execRunner struct {
	logger *zap.Logger
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
			err = nil
		}
	}

	r.logger.Debug("backend command finished",
		zap.String("command", name),
		zap.Strings("args", args),
		zap.Int("exit_code", exitCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))

	return stdout.Bytes(), stderr.Bytes(), exitCode, err
}
