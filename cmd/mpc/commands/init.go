package commands

import (
	"github.com/spf13/cobra"

	"github.com/yehuo/multipass-k3s-cli/cmd/mpc/handlers"
)

// Init returns the command for creating the cluster's virtual machines.
//
// Every inventory node is resolved into its effective configuration
// first; nodes that fail to resolve are reported by name and do not
// block the rest. The remaining nodes are then created one at a time.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: auto-detect cluster.yaml)
//	--dry-run: Print the planned multipass launch command per node instead of running it
//	--generate: Write each node's effective configuration to the output directory
//	--output-dir: Directory for generated per-node configuration files
//	--yes, -y: Create nodes without per-node confirmation
func Init() *cobra.Command {
	var opts handlers.InitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the cluster's virtual machines",
		Long: `Create every node declared in the cluster inventory.

Each node's configuration is resolved by layering cluster defaults, role
defaults, and the per-node override. Creation launches the machine, waits
for it to reach Running, and runs the node's post-creation scripts inside
it.

Examples:
  # Preview the launch commands without touching the backend
  mpc init --dry-run

  # Write resolved per-node configs to .generated/
  mpc init --generate

  # Create all nodes without per-node prompts
  mpc init --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), opts, globals)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: cluster.yaml)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print planned backend commands instead of running them")
	cmd.Flags().BoolVar(&opts.Generate, "generate", false, "Write resolved per-node configuration files")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", handlers.DefaultOutputDir, "Directory for generated configuration files")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Create nodes without per-node confirmation")

	return cmd
}
