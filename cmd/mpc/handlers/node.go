package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yehuo/multipass-k3s-cli/internal/cluster"
	"github.com/yehuo/multipass-k3s-cli/internal/lifecycle"
	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
)

// nodeOutcome records one node's creation result for the summary.
type nodeOutcome struct {
	Name    string
	Status  string // created, skipped, or failed
	Message string
}

// createNodes creates every resolved node in inventory order, asking
// before each one unless yes is set. One node failing or being declined
// does not stop the others; the summary reports per-node outcomes and
// the error reflects whether any attempted node failed.
func createNodes(ctx context.Context, c *cluster.Cluster, yes bool, g Globals) error {
	gateway := newGateway(g)
	confirm := newConfirmer(yes)
	observer := lifecycle.NewConsoleObserver()

	outcomes := make([]nodeOutcome, 0, c.Len())
	created, failed := 0, 0
	for _, n := range c.Nodes() {
		prompt := fmt.Sprintf("Create node %s (%s, image %s)?", n.Name, n.Role, n.Image)
		approved, err := confirm.Confirm(ctx, prompt)
		if err != nil {
			outcomes = append(outcomes, nodeOutcome{
				Name:    n.Name,
				Status:  "skipped",
				Message: fmt.Sprintf("confirmation unavailable: %v", err),
			})
			continue
		}
		if !approved {
			outcomes = append(outcomes, nodeOutcome{Name: n.Name, Status: "skipped", Message: "declined"})
			continue
		}

		if err := createNode(ctx, gateway, n, observer); err != nil {
			failed++
			outcomes = append(outcomes, nodeOutcome{Name: n.Name, Status: "failed", Message: err.Error()})
			continue
		}
		created++
		outcomes = append(outcomes, nodeOutcome{Name: n.Name, Status: "created", Message: "ready"})
	}

	printInitSummary(outcomes, created)

	if failed > 0 {
		return fmt.Errorf("%d node(s) failed to create", failed)
	}
	return nil
}

// createNode launches one machine, waits for it to report Running, and
// runs its post-creation scripts inside it.
func createNode(ctx context.Context, gateway multipass.Client, n cluster.Node, observer lifecycle.Observer) error {
	start := time.Now()
	lifecycle.LogNodeCreating(observer, n.Name, n.Image)

	if _, err := gateway.Launch(ctx, launchSpec(n)); err != nil {
		lifecycle.LogNodeFailed(observer, n.Name, err)
		return err
	}

	if err := multipass.WaitForState(ctx, gateway, n.Name, multipass.StateRunning); err != nil {
		lifecycle.LogNodeFailed(observer, n.Name, err)
		return err
	}

	for _, script := range n.PostCreationScripts {
		if err := runScript(ctx, gateway, n.Name, script); err != nil {
			lifecycle.LogNodeFailed(observer, n.Name, err)
			return err
		}
	}

	lifecycle.LogNodeCreated(observer, n.Name, time.Since(start))
	return nil
}

// runScript copies a local script into the node and executes it in one
// guest invocation: chmod, then run.
func runScript(ctx context.Context, gateway multipass.Client, node, script string) error {
	remote := "/tmp/" + filepath.Base(script)

	if err := gateway.Transfer(ctx, script, node+":"+remote); err != nil {
		return fmt.Errorf("transferring %s: %w", script, err)
	}

	command := []string{"bash", "-c", fmt.Sprintf("chmod +x %s && %s", remote, remote)}
	res, err := gateway.Exec(ctx, node, command)
	if err != nil {
		return fmt.Errorf("running %s: %w", script, err)
	}
	if !res.OK {
		return fmt.Errorf("script %s exited with status %d: %s",
			filepath.Base(script), res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// launchSpec projects a resolved node onto the backend launch request.
func launchSpec(n cluster.Node) multipass.LaunchSpec {
	spec := multipass.LaunchSpec{
		Name:         n.Name,
		Image:        n.Image,
		CPUs:         n.CPUs,
		Memory:       n.Memory.String(),
		Disk:         n.Disk.String(),
		Bridged:      n.Network.Bridged,
		Interfaces:   n.Network.Interfaces,
		CloudInit:    n.CloudInitPath,
		ExtraOptions: n.ExtraOptions,
	}
	for _, m := range n.Mounts {
		spec.Mounts = append(spec.Mounts, multipass.MountSpec{
			Source:   m.Source,
			Target:   m.Target,
			ReadOnly: m.ReadOnly,
		})
	}
	return spec
}

// printInitSummary prints the per-node outcome list and the closing
// count of successful creations.
func printInitSummary(outcomes []nodeOutcome, created int) {
	fmt.Printf("\nResults:\n")
	for _, o := range outcomes {
		mark := "ok"
		switch o.Status {
		case "skipped":
			mark = "--"
		case "failed":
			mark = "!!"
		}
		fmt.Printf("  [%s] %-16s %s\n", mark, o.Name, o.Message)
	}
	fmt.Printf("\n(%d/%d successful)\n", created, len(outcomes))
}
