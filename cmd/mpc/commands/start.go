package commands

import (
	"github.com/spf13/cobra"

	"github.com/yehuo/multipass-k3s-cli/cmd/mpc/handlers"
)

// Start returns the command for starting the cluster.
//
// Controller nodes are started first; worker nodes follow after a
// confirmation gate. Declining the gate leaves the controllers running
// and aborts the rest of the run.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: auto-detect cluster.yaml)
//	--yes, -y: Skip the confirmation gate between node groups
func Start() *cobra.Command {
	var configPath string
	var yes bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the cluster, controllers before workers",
		Long: `Start every node in the cluster, one role group at a time.

Controller nodes come up first so the control plane is ready before any
worker joins. Between the groups mpc asks for confirmation; decline it to
stop after the controllers.

Examples:
  # Start using cluster.yaml in the current directory
  mpc start

  # Start a specific cluster without confirmation gates
  mpc start -c lab.yaml --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Start(cmd.Context(), configPath, yes, globals)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cluster.yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation gates between node groups")

	return cmd
}
