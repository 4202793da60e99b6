package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yehuo/multipass-k3s-cli/internal/cluster"
	"github.com/yehuo/multipass-k3s-cli/internal/config"
	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
)

// DefaultOutputDir is where init --generate writes per-node configuration
// files.
const DefaultOutputDir = ".generated"

// InitOptions carries the init command's flag values.
type InitOptions struct {
	ConfigPath string
	DryRun     bool
	Generate   bool
	OutputDir  string
	Yes        bool
}

// Init handles the init command.
//
// Every inventory node is resolved first. A node that fails to resolve
// is reported by name and skipped; it never blocks the others. What
// happens to the resolved nodes depends on the mode: dry-run prints the
// planned backend command per node, generate writes effective
// configuration snapshots, and the default mode creates the machines one
// at a time.
func Init(ctx context.Context, opts InitOptions, g Globals) error {
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	// Dry-run wins over generate: nothing is written, nothing is launched.
	var ropts []cluster.ResolverOption
	generate := opts.Generate && !opts.DryRun
	if generate {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", opts.OutputDir, err)
		}
		ropts = append(ropts, cluster.WithSnapshotWriter(snapshotWriter(opts.OutputDir)))
	}

	c, rerr := buildClusterReporting(cfg, ropts...)

	switch {
	case opts.DryRun:
		printLaunchPlan(c, g)
	case generate:
		fmt.Printf("Wrote %d node configuration file(s) to %s\n", c.Len(), opts.OutputDir)
	default:
		if err := createNodes(ctx, c, opts.Yes, g); err != nil {
			return err
		}
	}

	if rerr != nil {
		return fmt.Errorf("some nodes failed to resolve")
	}
	return nil
}

// buildClusterReporting resolves the inventory and prints per-node
// resolution failures. The returned cluster holds every node that did
// resolve; the error only signals that at least one node did not.
func buildClusterReporting(cfg *config.File, opts ...cluster.ResolverOption) (*cluster.Cluster, error) {
	c, err := cluster.BuildCluster(cfg, opts...)
	if err != nil {
		fmt.Printf("Some nodes failed to resolve:\n")
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Printf("  %s\n", line)
		}
		fmt.Println()
	}
	return c, err
}

// snapshotWriter persists one node's effective tree under dir, named by
// the node.
func snapshotWriter(dir string) cluster.SnapshotWriter {
	return cluster.SnapshotWriterFunc(func(node string, effective config.Tree) error {
		return config.SaveTree(effective, filepath.Join(dir, node+".yaml"))
	})
}

// printLaunchPlan prints the backend command each node's creation would
// run. Nothing is executed.
func printLaunchPlan(c *cluster.Cluster, g Globals) {
	client := multipass.NewCLIClient(multipass.WithBinary(g.binary()))
	for _, n := range c.Nodes() {
		fmt.Println(strings.Join(client.LaunchCommand(launchSpec(n)), " "))
	}
	fmt.Printf("\nPlanned %d launch command(s). Nothing was executed.\n", c.Len())
}
