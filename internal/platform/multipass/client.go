package multipass

import (
	"context"

	"go.uber.org/zap"
)

// DefaultBinary is the backend binary resolved from PATH.
const DefaultBinary = "multipass"

// Launcher creates new machines.
type Launcher interface {
	Launch(ctx context.Context, spec LaunchSpec) (LaunchResult, error)
}

// PowerManager transitions machines between power states. One call is
// one batch backend invocation covering all names.
type PowerManager interface {
	SetPowerState(ctx context.Context, names []string, target PowerTarget) (PowerResult, error)
}

// Querier reports observed machine state. Names absent from the result
// are not found; that is not an error. An empty names slice queries
// everything the backend knows.
type Querier interface {
	Query(ctx context.Context, names []string) ([]VMState, error)
}

// Execer runs commands inside machines.
type Execer interface {
	Exec(ctx context.Context, name string, command []string) (ExecResult, error)
}

// FileTransferrer copies local files into machines.
type FileTransferrer interface {
	Transfer(ctx context.Context, localPath, remoteSpec string) error
}

// Deleter removes machines, optionally purging them so the name can be
// reused immediately.
type Deleter interface {
	Delete(ctx context.Context, name string, purge bool) error
}

// Client combines every backend capability the tool uses.
type Client interface {
	Launcher
	PowerManager
	Querier
	Execer
	FileTransferrer
	Deleter
}

// CLIClient implements Client by shelling out to the multipass binary.
type CLIClient struct {
	binary string
	runner Runner
	logger *zap.Logger
}

// ClientOption configures a CLIClient.
type ClientOption func(*CLIClient)

// WithBinary overrides the backend binary path.
func WithBinary(path string) ClientOption {
	return func(c *CLIClient) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithLogger sets the logger used to trace backend invocations.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *CLIClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRunner replaces the command runner (useful for testing).
func WithRunner(r Runner) ClientOption {
	return func(c *CLIClient) {
		c.runner = r
	}
}

// NewCLIClient creates a client for the multipass binary. Tracing is off
// unless a logger is supplied.
func NewCLIClient(opts ...ClientOption) *CLIClient {
	c := &CLIClient{
		binary: DefaultBinary,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runner == nil {
		c.runner = &execRunner{logger: c.logger}
	}
	return c
}

// Binary returns the backend binary the client invokes.
func (c *CLIClient) Binary() string {
	return c.binary
}
