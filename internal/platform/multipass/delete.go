package multipass

import (
	"context"
	"fmt"
)

// Delete removes a machine. Without purge the backend keeps it around for
// recovery; with purge the name is freed immediately.
func (c *CLIClient) Delete(ctx context.Context, name string, purge bool) error {
	args := []string{"delete", name}
	if purge {
		args = append(args, "--purge")
	}

	_, stderr, exitCode, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return &GatewayError{Op: "delete", Subject: name, Stderr: string(stderr), Err: err}
	}
	if exitCode != 0 {
		return &GatewayError{
			Op:      "delete",
			Subject: name,
			Stderr:  string(stderr),
			Err:     fmt.Errorf("exit status %d", exitCode),
		}
	}
	return nil
}
