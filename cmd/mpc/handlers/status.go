package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
	"github.com/yehuo/multipass-k3s-cli/internal/ui/tui"
)

// StatusOptions carries the status command's flag values.
type StatusOptions struct {
	ConfigPath string
	All        bool
	Controller bool
	Worker     bool
	Watch      bool
}

// roleFilter derives the name filter from the role flags.
func (o StatusOptions) roleFilter() (string, error) {
	switch {
	case o.Controller && o.Worker:
		return "", fmt.Errorf("--controller and --worker are mutually exclusive")
	case o.All && (o.Controller || o.Worker):
		return "", fmt.Errorf("--all cannot be combined with a role filter")
	case o.Controller:
		return "controller", nil
	case o.Worker:
		return "worker", nil
	default:
		return "", nil
	}
}

// runWatch starts the live dashboard. Factory function variable - can be
// replaced in tests.
var runWatch = tui.RunStatusTUI

// Status handles the status command.
//
// State is queried fresh from the backend on every call; nothing is
// cached across runs. The cluster configuration is consulted only for
// the cluster name and the ROLE column, and is optional: without it,
// machines show "-" for their role.
func Status(ctx context.Context, opts StatusOptions, g Globals) error {
	filter, err := opts.roleFilter()
	if err != nil {
		return err
	}

	clusterName, roles := inventoryRoles(opts.ConfigPath)

	var q multipass.Querier = newGateway(g)
	if filter != "" {
		q = filteredQuerier{q: q, filter: filter}
	}

	if opts.Watch {
		return runWatch(ctx, q, tui.WatchOptions{
			ClusterName: clusterName,
			Roles:       roles,
		})
	}

	states, err := q.Query(ctx, nil)
	if err != nil {
		return err
	}

	fmt.Print(tui.RenderStatusOnce(clusterName, roles, states))
	return nil
}

// inventoryRoles loads the node role map for display. Status works
// without a configuration file; an unreadable one just leaves all roles
// unknown.
func inventoryRoles(configPath string) (string, map[string]string) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return "", nil
	}

	roles := make(map[string]string, len(cfg.Nodes))
	for _, entry := range cfg.Nodes {
		roles[entry.Name] = entry.Role
	}
	return cfg.ClusterName, roles
}

// filteredQuerier narrows a Querier to machines whose name contains the
// filter. Backend-reported order is preserved.
type filteredQuerier struct {
	q      multipass.Querier
	filter string
}

func (f filteredQuerier) Query(ctx context.Context, names []string) ([]multipass.VMState, error) {
	states, err := f.q.Query(ctx, names)
	if err != nil {
		return nil, err
	}
	return filterVMs(states, f.filter), nil
}

// filterVMs keeps machines whose name contains filter, compared
// case-insensitively, so "worker" matches "Worker-01". An empty filter
// keeps everything.
func filterVMs(states []multipass.VMState, filter string) []multipass.VMState {
	if filter == "" {
		return states
	}

	needle := strings.ToLower(filter)
	var kept []multipass.VMState
	for _, vm := range states {
		if strings.Contains(strings.ToLower(vm.Name), needle) {
			kept = append(kept, vm)
		}
	}
	return kept
}
