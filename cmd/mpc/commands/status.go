package commands

import (
	"github.com/spf13/cobra"

	"github.com/yehuo/multipass-k3s-cli/cmd/mpc/handlers"
)

// Status returns the command for showing cluster state.
//
// State is whatever the backend last reported; mpc does not probe the
// guests itself.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: auto-detect cluster.yaml)
//	--all: Show every machine (default)
//	--controller: Show only machines whose name contains "controller"
//	--worker: Show only machines whose name contains "worker"
//	--watch, -w: Live dashboard that refreshes until interrupted
func Status() *cobra.Command {
	var opts handlers.StatusOptions

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current state of cluster machines",
		Long: `Show the backend-reported state of the cluster's machines.

The role filters match case-insensitively against the machine name, so
--worker matches "worker-01" as well as "Worker-01".

Examples:
  # One-shot status table
  mpc status

  # Only the worker nodes
  mpc status --worker

  # Live dashboard, q to quit
  mpc status --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), opts, globals)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: cluster.yaml)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Show every machine (default)")
	cmd.Flags().BoolVar(&opts.Controller, "controller", false, "Show only controller machines")
	cmd.Flags().BoolVar(&opts.Worker, "worker", false, "Show only worker machines")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Continuously watch status updates")

	return cmd
}
