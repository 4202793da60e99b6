package commands

import (
	"github.com/spf13/cobra"

	"github.com/yehuo/multipass-k3s-cli/cmd/mpc/handlers"
)

// Delete returns the command for deleting a single node.
//
// The name must belong to the cluster inventory; deleting machines the
// cluster does not know about is refused.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: auto-detect cluster.yaml)
//	--purge: Purge the machine so its name can be reused immediately
//	--force, -f: Delete without confirmation
func Delete() *cobra.Command {
	var opts handlers.DeleteOptions

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete one of the cluster's virtual machines",
		Long: `Delete a single node's virtual machine.

Without --purge the backend keeps the deleted machine around for
recovery and the name stays taken. With --purge the machine is gone for
good and the name is free again.

Examples:
  # Delete a worker, answering the confirmation prompt
  mpc delete worker-01

  # Delete and purge without confirmation
  mpc delete worker-01 --purge --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Delete(cmd.Context(), args[0], opts, globals)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: cluster.yaml)")
	cmd.Flags().BoolVar(&opts.Purge, "purge", false, "Purge the machine so the name can be reused")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Delete without confirmation")

	return cmd
}
