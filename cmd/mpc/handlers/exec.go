package handlers

import (
	"context"
	"fmt"
	"os"
)

// Exec handles the exec command.
//
// The remote command's stdout and stderr are printed as is. A remote
// failure becomes an ExitError carrying the remote exit code, so the
// mpc process exits exactly like the guest command did.
func Exec(ctx context.Context, name string, command []string, g Globals) error {
	res, err := newGateway(g).Exec(ctx, name, command)
	if err != nil {
		return err
	}

	if res.Stdout != "" {
		fmt.Print(res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprint(os.Stderr, res.Stderr)
	}

	if !res.OK {
		return &ExitError{
			Code: res.ExitCode,
			Err:  fmt.Errorf("command exited with status %d in %s", res.ExitCode, name),
		}
	}
	return nil
}
