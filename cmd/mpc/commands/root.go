// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/yehuo/multipass-k3s-cli/cmd/mpc/handlers"
)

// globals holds the root persistent flag values shared by every command.
var globals handlers.Globals

// Root returns the root command for the mpc CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It provides basic CLI metadata and organizes the command hierarchy.
//
// Persistent flags:
//
//	--verbose: Trace backend command invocations
//	--multipass-bin: Path to the multipass binary (env: MPC_MULTIPASS_BIN)
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mpc",
		Short: "Manage a Multipass-backed Kubernetes lab cluster",
	}

	cmd.PersistentFlags().BoolVar(&globals.Verbose, "verbose", false, "Trace backend command invocations")
	cmd.PersistentFlags().StringVar(&globals.MultipassBin, "multipass-bin", "", "Path to the multipass binary (default: multipass, env: MPC_MULTIPASS_BIN)")

	// Cluster lifecycle
	cmd.AddCommand(Init())
	cmd.AddCommand(Start())
	cmd.AddCommand(Suspend())
	cmd.AddCommand(Stop())
	cmd.AddCommand(Status())

	// Node-level commands
	cmd.AddCommand(Delete())
	cmd.AddCommand(Exec())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
