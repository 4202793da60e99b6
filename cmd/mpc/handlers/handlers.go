// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yehuo/multipass-k3s-cli/internal/config"
	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
)

// MultipassBinEnv is the environment variable that overrides the backend
// binary when --multipass-bin is not given.
const MultipassBinEnv = "MPC_MULTIPASS_BIN"

// Globals carries the root command's persistent flag values into handlers.
type Globals struct {
	// Verbose enables debug tracing of backend command invocations.
	Verbose bool

	// MultipassBin overrides the backend binary. Empty falls back to the
	// MPC_MULTIPASS_BIN environment variable, then to "multipass".
	MultipassBin string
}

// binary resolves the backend binary: flag, then environment, then default.
func (g Globals) binary() string {
	if g.MultipassBin != "" {
		return g.MultipassBin
	}
	if bin := os.Getenv(MultipassBinEnv); bin != "" {
		return bin
	}
	return multipass.DefaultBinary
}

// newGateway builds the backend client from the global flags. Factory
// function variable - can be replaced in tests.
var newGateway = func(g Globals) multipass.Client {
	opts := []multipass.ClientOption{multipass.WithBinary(g.binary())}
	if g.Verbose {
		opts = append(opts, multipass.WithLogger(newTraceLogger()))
	}
	return multipass.NewCLIClient(opts...)
}

// newTraceLogger builds the logger that traces backend invocations in
// --verbose mode.
func newTraceLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := logConfig.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// loadConfig loads the cluster configuration from the explicit path, or
// from the nearest cluster.yaml when the path is empty.
func loadConfig(path string) (*config.File, error) {
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			return nil, err
		}
		path = found
	}
	return config.Load(path)
}

// ExitError carries a specific process exit code through the command
// error path. main exits with Code instead of the generic 1.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for err: an ExitError's own
// code, 1 for any other error, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
