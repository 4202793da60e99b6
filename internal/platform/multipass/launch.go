package multipass

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// buildLaunchArgs translates a LaunchSpec into backend arguments. The
// image is positional; everything else is flags.
func buildLaunchArgs(spec LaunchSpec) []string {
	args := []string{"launch", "--name", spec.Name}

	if spec.CPUs > 0 {
		args = append(args, "--cpus", strconv.Itoa(spec.CPUs))
	}
	if spec.Memory != "" {
		args = append(args, "--memory", spec.Memory)
	}
	if spec.Disk != "" {
		args = append(args, "--disk", spec.Disk)
	}
	if spec.Image != "" {
		args = append(args, spec.Image)
	}
	if spec.Bridged {
		args = append(args, "--network", "name=bridge")
	}
	for _, iface := range spec.Interfaces {
		args = append(args, "--network", iface)
	}
	for _, m := range spec.Mounts {
		mount := m.Source + ":" + m.Target
		if m.ReadOnly {
			mount += ":ro"
		}
		args = append(args, "--mount", mount)
	}
	if spec.CloudInit != "" {
		args = append(args, "--cloud-init", spec.CloudInit)
	}
	args = append(args, spec.ExtraOptions...)

	return args
}

// LaunchCommand returns the full command line that Launch would run,
// binary included. Used for dry-run previews.
func (c *CLIClient) LaunchCommand(spec LaunchSpec) []string {
	return append([]string{c.binary}, buildLaunchArgs(spec)...)
}

// Launch creates one machine and blocks until the backend hands it back.
func (c *CLIClient) Launch(ctx context.Context, spec LaunchSpec) (LaunchResult, error) {
	if spec.Name == "" {
		return LaunchResult{}, &GatewayError{Op: "launch", Err: fmt.Errorf("launch spec has no name")}
	}

	stdout, stderr, exitCode, err := c.runner.Run(ctx, c.binary, buildLaunchArgs(spec)...)
	if err != nil {
		return LaunchResult{}, &GatewayError{Op: "launch", Subject: spec.Name, Stderr: string(stderr), Err: err}
	}
	if exitCode != 0 {
		return LaunchResult{}, &GatewayError{
			Op:      "launch",
			Subject: spec.Name,
			Stderr:  string(stderr),
			Err:     fmt.Errorf("exit status %d", exitCode),
		}
	}

	return LaunchResult{
		Name:    spec.Name,
		Message: strings.TrimSpace(string(stdout)),
	}, nil
}
