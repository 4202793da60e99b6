package multipass

import (
	"context"
	"fmt"
)

// Transfer copies a local file into a machine. The remote spec uses the
// backend's own "instance:/path" form.
func (c *CLIClient) Transfer(ctx context.Context, localPath, remoteSpec string) error {
	_, stderr, exitCode, err := c.runner.Run(ctx, c.binary, "transfer", localPath, remoteSpec)
	if err != nil {
		return &GatewayError{Op: "transfer", Subject: remoteSpec, Stderr: string(stderr), Err: err}
	}
	if exitCode != 0 {
		return &GatewayError{
			Op:      "transfer",
			Subject: remoteSpec,
			Stderr:  string(stderr),
			Err:     fmt.Errorf("exit status %d", exitCode),
		}
	}
	return nil
}
