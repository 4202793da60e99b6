package multipass

import (
	"context"
	"fmt"
	"strings"

	"github.com/yehuo/multipass-k3s-cli/internal/retry"
)

// SetPowerState applies the target to all names in one backend
// invocation. On failure it attributes the damage per name by scanning
// the backend's stderr: names it quoted are failed, the rest are assumed
// applied (the backend processes names left to right and reports the
// offenders by name).
func (c *CLIClient) SetPowerState(ctx context.Context, names []string, target PowerTarget) (PowerResult, error) {
	result := PowerResult{Target: target, Failed: map[string]error{}}
	if len(names) == 0 {
		return result, nil
	}
	if !target.IsValid() {
		err := &GatewayError{Op: "power", Subject: strings.Join(names, ", "), Err: fmt.Errorf("unknown power target %q", target)}
		return result, err
	}

	args := append([]string{target.Command()}, names...)
	_, stderr, exitCode, err := c.runner.Run(ctx, c.binary, args...)
	if err == nil && exitCode == 0 {
		result.Applied = append([]string(nil), names...)
		return result, nil
	}

	if err == nil {
		err = fmt.Errorf("exit status %d", exitCode)
	}
	gwErr := &GatewayError{
		Op:      target.Command(),
		Subject: strings.Join(names, ", "),
		Stderr:  string(stderr),
		Err:     err,
	}
	result.Applied, result.Failed = attributeFailures(names, string(stderr), gwErr)
	return result, gwErr
}

// attributeFailures splits a failed batch into applied and failed names
// based on which names the backend mentioned. When the output names
// nobody, the whole batch counts as failed.
func attributeFailures(names []string, stderr string, cause error) ([]string, map[string]error) {
	failed := make(map[string]error)
	var applied []string

	for _, name := range names {
		if strings.Contains(stderr, `"`+name+`"`) {
			failed[name] = cause
			continue
		}
		applied = append(applied, name)
	}

	if len(failed) == 0 {
		for _, name := range names {
			failed[name] = cause
		}
		return nil, failed
	}
	return applied, failed
}

// WaitForState polls the backend until the named machine reports the
// target state. Observing StateDeleted while waiting for any other state
// aborts the wait: a deleted machine is not coming back on its own.
//
// The poll is bounded and fixed-interval; see the retry package defaults.
func WaitForState(ctx context.Context, q Querier, name string, target State, opts ...retry.Option) error {
	return retry.Poll(ctx, func() error {
		states, err := q.Query(ctx, []string{name})
		if err != nil {
			return err
		}

		for _, vm := range states {
			if vm.Name != name {
				continue
			}
			if vm.State == target {
				return nil
			}
			if vm.State == StateDeleted && target != StateDeleted {
				return retry.Fatal(fmt.Errorf("node %s was deleted while waiting for %s", name, target))
			}
			return fmt.Errorf("node %s is %s, waiting for %s", name, vm.State, target)
		}

		return fmt.Errorf("node %s not reported by the backend yet", name)
	}, opts...)
}
