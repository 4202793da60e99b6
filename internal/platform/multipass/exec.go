package multipass

import (
	"context"
	"fmt"
	"strings"
)

// Exec runs a command inside a machine. The remote command's own failure
// comes back as a result with OK=false and its exit code; a GatewayError
// means the backend could not run it at all (unknown instance, transport
// failure).
func (c *CLIClient) Exec(ctx context.Context, name string, command []string) (ExecResult, error) {
	if len(command) == 0 {
		return ExecResult{}, &GatewayError{Op: "exec", Subject: name, Err: fmt.Errorf("no command given")}
	}

	args := append([]string{"exec", name, "--"}, command...)
	stdout, stderr, exitCode, err := c.runner.Run(ctx, c.binary, args...)

	result := ExecResult{
		ExitCode: exitCode,
		Stdout:   string(stdout),
		Stderr:   string(stderr),
	}

	if err != nil {
		return result, &GatewayError{Op: "exec", Subject: name, Stderr: string(stderr), Err: err}
	}
	if exitCode != 0 && strings.Contains(string(stderr), "does not exist") {
		return result, &GatewayError{
			Op:      "exec",
			Subject: name,
			Stderr:  string(stderr),
			Err:     fmt.Errorf("exit status %d", exitCode),
		}
	}

	result.OK = exitCode == 0
	return result, nil
}
