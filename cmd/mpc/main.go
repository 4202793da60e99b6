// Package main is the entry point for the mpc CLI.
//
// mpc manages a fleet of Multipass virtual machines that together form a
// local Kubernetes lab cluster. Nodes are declared in a layered YAML
// inventory, resolved into effective per-node configurations, and driven
// through ordered lifecycle operations with confirmation gates between
// the controller and worker groups.
//
// Commands: init, start, suspend, stop, status, delete, exec.
//
// For detailed usage information, run:
//
//	mpc --help
package main

import (
	"fmt"
	"os"

	"github.com/yehuo/multipass-k3s-cli/cmd/mpc/commands"
	"github.com/yehuo/multipass-k3s-cli/cmd/mpc/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(handlers.ExitCode(err))
	}
}
