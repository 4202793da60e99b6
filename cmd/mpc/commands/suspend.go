package commands

import (
	"github.com/spf13/cobra"

	"github.com/yehuo/multipass-k3s-cli/cmd/mpc/handlers"
)

// Suspend returns the command for suspending the cluster.
//
// Worker nodes are suspended first; controller nodes follow after a
// confirmation gate, so the control plane stays up until last.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: auto-detect cluster.yaml)
//	--yes, -y: Skip the confirmation gate between node groups
func Suspend() *cobra.Command {
	var configPath string
	var yes bool

	cmd := &cobra.Command{
		Use:   "suspend",
		Short: "Suspend the cluster, workers before controllers",
		Long: `Suspend every node in the cluster, one role group at a time.

Worker nodes are suspended first, then the controllers, so workloads are
parked before the control plane goes away. Suspended nodes keep their
memory state and resume where they left off.

Examples:
  # Suspend using cluster.yaml in the current directory
  mpc suspend

  # Suspend without confirmation gates
  mpc suspend --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Suspend(cmd.Context(), configPath, yes, globals)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cluster.yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation gates between node groups")

	return cmd
}
