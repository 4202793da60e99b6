package commands

import (
	"github.com/spf13/cobra"

	"github.com/yehuo/multipass-k3s-cli/cmd/mpc/handlers"
)

// Exec returns the command for running a command inside a node.
//
// Everything after the node name is passed to the guest verbatim; use
// "--" to stop mpc from parsing the guest command's flags. The process
// exit code follows the remote command's exit code.
func Exec() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec NAME -- COMMAND [ARG...]",
		Short: "Run a command inside a cluster machine",
		Long: `Run a command inside one of the cluster's machines.

Standard output and standard error of the remote command are printed as
is, and mpc exits with the remote command's exit code.

Examples:
  # Check cluster membership from the first controller
  mpc exec controller-01 -- kubectl get nodes

  # Tail a log on a worker
  mpc exec worker-01 -- tail -n 50 /var/log/syslog`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Exec(cmd.Context(), args[0], args[1:], globals)
		},
	}

	return cmd
}
