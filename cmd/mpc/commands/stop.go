package commands

import (
	"github.com/spf13/cobra"

	"github.com/yehuo/multipass-k3s-cli/cmd/mpc/handlers"
)

// Stop returns the command for stopping the cluster.
//
// Worker nodes are stopped first; controller nodes follow after a
// confirmation gate.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: auto-detect cluster.yaml)
//	--yes, -y: Skip the confirmation gate between node groups
func Stop() *cobra.Command {
	var configPath string
	var yes bool

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the cluster, workers before controllers",
		Long: `Stop every node in the cluster, one role group at a time.

Worker nodes are stopped first, then the controllers. Unlike suspend,
stopped nodes boot from scratch on the next start.

Examples:
  # Stop using cluster.yaml in the current directory
  mpc stop

  # Stop without confirmation gates
  mpc stop --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Stop(cmd.Context(), configPath, yes, globals)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cluster.yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation gates between node groups")

	return cmd
}
