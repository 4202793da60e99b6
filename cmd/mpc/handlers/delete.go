package handlers

import (
	"context"
	"fmt"

	"github.com/yehuo/multipass-k3s-cli/internal/cluster"
	"github.com/yehuo/multipass-k3s-cli/internal/config"
	"github.com/yehuo/multipass-k3s-cli/internal/lifecycle"
)

// DeleteOptions carries the delete command's flag values.
type DeleteOptions struct {
	ConfigPath string
	Purge      bool
	Force      bool
}

// Delete handles the delete command.
//
// The name is checked against the cluster inventory first, so a typo
// cannot take down an unrelated machine. Only the inventory is needed
// for that; the node's effective configuration is not resolved.
func Delete(ctx context.Context, name string, opts DeleteOptions, g Globals) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if !inventoryHas(cfg, name) {
		return &cluster.UnknownNodeError{Name: name}
	}

	if !opts.Force {
		prompt := fmt.Sprintf("Delete node %s?", name)
		if opts.Purge {
			prompt = fmt.Sprintf("Delete and purge node %s? The machine cannot be recovered.", name)
		}

		approved, err := newConfirmer(false).Confirm(ctx, prompt)
		if err != nil {
			return fmt.Errorf("confirmation unavailable: %w", err)
		}
		if !approved {
			fmt.Println("Aborted.")
			return nil
		}
	}

	observer := lifecycle.NewConsoleObserver()
	lifecycle.LogNodeDeleting(observer, name)

	if err := newGateway(g).Delete(ctx, name, opts.Purge); err != nil {
		return err
	}

	lifecycle.LogNodeDeleted(observer, name)
	return nil
}

// inventoryHas reports whether the inventory declares a node by name.
func inventoryHas(cfg *config.File, name string) bool {
	for _, entry := range cfg.Nodes {
		if entry.Name == name {
			return true
		}
	}
	return false
}
