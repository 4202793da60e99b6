package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/yehuo/multipass-k3s-cli/internal/cluster"
	"github.com/yehuo/multipass-k3s-cli/internal/lifecycle"
)

// Start handles the start command: controllers first, then workers.
func Start(ctx context.Context, configPath string, yes bool, g Globals) error {
	return runLifecycle(ctx, lifecycle.OpStart, configPath, yes, g)
}

// Suspend handles the suspend command: workers first, then controllers.
func Suspend(ctx context.Context, configPath string, yes bool, g Globals) error {
	return runLifecycle(ctx, lifecycle.OpSuspend, configPath, yes, g)
}

// Stop handles the stop command: workers first, then controllers.
func Stop(ctx context.Context, configPath string, yes bool, g Globals) error {
	return runLifecycle(ctx, lifecycle.OpStop, configPath, yes, g)
}

// runLifecycle loads and resolves the cluster, then drives one ordered
// lifecycle run over its role groups. A resolution failure is fatal
// here: operating on a partially resolved cluster would dispatch the
// wrong groups.
func runLifecycle(ctx context.Context, op lifecycle.Operation, configPath string, yes bool, g Globals) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	c, err := cluster.BuildCluster(cfg)
	if err != nil {
		return fmt.Errorf("resolving cluster %s: %w", cfg.ClusterName, err)
	}

	orch := lifecycle.NewOrchestrator(newGateway(g),
		lifecycle.WithConfirmer(newConfirmer(yes)),
		lifecycle.WithObserver(lifecycle.NewConsoleObserver()),
	)

	result, err := orch.Run(ctx, c, op)
	if err != nil {
		return err
	}

	printRunResult(result)
	return nil
}

// printRunResult prints the closing line of a finished lifecycle run.
// Failed runs never reach here; their error carries the details.
func printRunResult(result *lifecycle.Result) {
	switch result.State {
	case lifecycle.StateDone:
		applied := result.Applied()
		if len(applied) == 0 {
			fmt.Printf("\nNothing to do: the cluster has no nodes.\n")
			return
		}
		fmt.Printf("\nCluster %s: %d node(s) (%s).\n",
			result.Operation.Past(), len(applied), strings.Join(applied, ", "))
	case lifecycle.StateAborted:
		fmt.Printf("\nAborted: %s\n", result.Message)
	}
}
