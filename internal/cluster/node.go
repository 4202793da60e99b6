package cluster

import (
	"fmt"

	"github.com/yehuo/multipass-k3s-cli/internal/config"
	"github.com/yehuo/multipass-k3s-cli/internal/resource"
)

// Role classifies a node within the cluster. The role decides which
// lifecycle group a node belongs to and which role-default layer applies
// during resolution.
type Role string

const (
	// RoleController marks nodes that run the cluster control plane.
	RoleController Role = config.NodeRoleController
	// RoleWorker marks nodes that run workloads.
	RoleWorker Role = config.NodeRoleWorker
)

// ValidRoles returns all known roles.
func ValidRoles() []Role {
	return []Role{RoleController, RoleWorker}
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleController, RoleWorker:
		return true
	default:
		return false
	}
}

// String returns the role name as it appears in inventories.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts an inventory role name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q, must be one of %v", s, ValidRoles())
	}
	return r, nil
}

// Mount maps a host directory into a node.
type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

// Network holds a node's network attachment settings.
type Network struct {
	Bridged    bool
	Interfaces []string
}

// Node is one fully resolved virtual machine: identity plus the effective
// configuration projected from the cluster, role, and node layers. Nodes
// are built once by the resolver and treated as immutable afterwards.
type Node struct {
	Name  string
	Role  Role
	Image string

	CPUs   int
	Memory resource.Quantity
	Disk   resource.Quantity

	Network Network
	Mounts  []Mount

	// CloudInitPath points at a cloud-init user-data file passed to the
	// backend at launch. Empty means none.
	CloudInitPath string

	// PostCreationScripts are run inside the node, in order, once it
	// reaches the running state after launch.
	PostCreationScripts []string

	// ExtraOptions are appended verbatim to the backend launch command.
	ExtraOptions []string

	// Config is the effective merged tree the node was projected from,
	// kept for snapshot generation and display.
	Config config.Tree
}
