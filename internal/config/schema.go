package config

import (
	"errors"
	"fmt"
)

// File is the on-disk cluster configuration: cluster-wide defaults, per-role
// defaults, and the ordered node inventory.
type File struct {
	// ClusterName identifies the cluster in output and generated files.
	ClusterName string `yaml:"cluster_name"`

	// Defaults apply to every node before the role and node layers.
	Defaults Tree `yaml:"defaults,omitempty"`

	// Roles holds per-role default trees layered over Defaults.
	Roles RoleDefaults `yaml:"roles,omitempty"`

	// Nodes is the inventory. Declaration order fixes the order in which
	// nodes appear within their role group during lifecycle operations.
	Nodes []NodeEntry `yaml:"nodes"`
}

// RoleDefaults carries the role-level configuration layers.
type RoleDefaults struct {
	Controller Tree `yaml:"controller,omitempty"`
	Worker     Tree `yaml:"worker,omitempty"`
}

// ForRole returns the default tree for a role name, nil if the role has none.
func (r RoleDefaults) ForRole(role string) Tree {
	switch role {
	case NodeRoleController:
		return r.Controller
	case NodeRoleWorker:
		return r.Worker
	default:
		return nil
	}
}

// NodeEntry is one inventory row: the node identity plus its override layer,
// given either inline or as a separate file.
type NodeEntry struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`

	// ConfigPath points at a YAML file holding the node override tree.
	ConfigPath string `yaml:"config,omitempty"`

	// Overrides is the inline override tree. Mutually exclusive with ConfigPath.
	Overrides Tree `yaml:"overrides,omitempty"`
}

// Role names accepted in an inventory. They mirror the cluster model's
// role partition.
const (
	NodeRoleController = "controller"
	NodeRoleWorker     = "worker"
)

// ValidNodeRoles returns all accepted role names.
func ValidNodeRoles() []string {
	return []string{NodeRoleController, NodeRoleWorker}
}

func validNodeRole(role string) bool {
	switch role {
	case NodeRoleController, NodeRoleWorker:
		return true
	default:
		return false
	}
}

// Validate checks the file for structural problems. All findings are joined
// so the user sees every issue at once.
func (f *File) Validate() error {
	var errs []error

	if f.ClusterName == "" {
		errs = append(errs, errors.New("cluster_name is required"))
	} else if !isValidName(f.ClusterName) {
		errs = append(errs, fmt.Errorf("cluster_name %q must be lowercase alphanumeric with hyphens and start with a letter", f.ClusterName))
	}

	if len(f.Nodes) == 0 {
		errs = append(errs, errors.New("nodes inventory is empty"))
	}

	seen := make(map[string]bool, len(f.Nodes))
	for i, entry := range f.Nodes {
		subject := entry.Name
		if subject == "" {
			subject = fmt.Sprintf("nodes[%d]", i)
		}

		switch {
		case entry.Name == "":
			errs = append(errs, fmt.Errorf("%s: name is required", subject))
		case !isValidName(entry.Name):
			errs = append(errs, fmt.Errorf("node %s: name must be lowercase alphanumeric with hyphens and start with a letter", entry.Name))
		case seen[entry.Name]:
			errs = append(errs, fmt.Errorf("node %s: duplicate name in inventory", entry.Name))
		}
		seen[entry.Name] = true

		if !validNodeRole(entry.Role) {
			errs = append(errs, fmt.Errorf("node %s: role must be one of %v, got %q", subject, ValidNodeRoles(), entry.Role))
		}

		if entry.ConfigPath != "" && len(entry.Overrides) > 0 {
			errs = append(errs, fmt.Errorf("node %s: config and overrides are mutually exclusive", subject))
		}
	}

	return errors.Join(errs...)
}

// isValidName checks that a name is usable as a VM hostname.
// Must be lowercase, alphanumeric with hyphens, start with a letter,
// end with a letter or digit, max 63 chars.
func isValidName(name string) bool {
	if len(name) == 0 || len(name) > 63 {
		return false
	}
	if name[0] < 'a' || name[0] > 'z' {
		return false
	}
	last := name[len(name)-1]
	if (last < 'a' || last > 'z') && (last < '0' || last > '9') {
		return false
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}
