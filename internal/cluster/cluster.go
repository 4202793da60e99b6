package cluster

import (
	"errors"
	"fmt"

	"github.com/yehuo/multipass-k3s-cli/internal/resource"
)

// DuplicateNodeError reports an attempt to add a node whose name is
// already taken.
type DuplicateNodeError struct {
	Name string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node %s already exists in the cluster", e.Name)
}

// IsDuplicateNode reports whether err is a duplicate-name rejection.
func IsDuplicateNode(err error) bool {
	var dup *DuplicateNodeError
	return errors.As(err, &dup)
}

// UnknownNodeError reports an operation against a name that is not part
// of the cluster.
type UnknownNodeError struct {
	Name string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("node %s is not part of the cluster", e.Name)
}

// IsUnknownNode reports whether err is an unknown-name rejection.
func IsUnknownNode(err error) bool {
	var unknown *UnknownNodeError
	return errors.As(err, &unknown)
}

// Cluster is the in-memory model of the node fleet. Names are unique and
// the inventory declaration order is preserved: every listing, including
// the per-role partitions, walks nodes in the order they were added.
//
// The model is single-writer. Lifecycle runs read it; only resolution and
// explicit node removal mutate it.
type Cluster struct {
	name  string
	nodes map[string]Node
	order []string
}

// New creates an empty cluster model.
func New(name string) *Cluster {
	return &Cluster{
		name:  name,
		nodes: make(map[string]Node),
	}
}

// Name returns the cluster name from the configuration.
func (c *Cluster) Name() string {
	return c.name
}

// AddNode adds a node to the model. Adding a name that already exists
// returns *DuplicateNodeError and leaves the model unchanged.
func (c *Cluster) AddNode(n Node) error {
	if _, exists := c.nodes[n.Name]; exists {
		return &DuplicateNodeError{Name: n.Name}
	}
	c.nodes[n.Name] = n
	c.order = append(c.order, n.Name)
	return nil
}

// Get looks up a node by name. A miss is reported through the boolean,
// not an error.
func (c *Cluster) Get(name string) (Node, bool) {
	n, ok := c.nodes[name]
	return n, ok
}

// RemoveNode removes a node by name, returning *UnknownNodeError if the
// name is not in the model.
func (c *Cluster) RemoveNode(name string) error {
	if _, exists := c.nodes[name]; !exists {
		return &UnknownNodeError{Name: name}
	}
	delete(c.nodes, name)
	for i, existing := range c.order {
		if existing == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of nodes in the model.
func (c *Cluster) Len() int {
	return len(c.order)
}

// Names returns all node names in inventory order.
func (c *Cluster) Names() []string {
	return append([]string(nil), c.order...)
}

// Nodes returns all nodes in inventory order.
func (c *Cluster) Nodes() []Node {
	out := make([]Node, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.nodes[name])
	}
	return out
}

// NodesByRole returns the nodes holding a role, in inventory order. The
// controller and worker partitions are disjoint and together cover the
// whole node set.
func (c *Cluster) NodesByRole(role Role) []Node {
	var out []Node
	for _, name := range c.order {
		if n := c.nodes[name]; n.Role == role {
			out = append(out, n)
		}
	}
	return out
}

// Totals is the cluster-wide resource footprint.
type Totals struct {
	Nodes  int
	CPUs   int
	Memory resource.Quantity
	Disk   resource.Quantity
}

// AggregateResources sums CPU, memory, and disk over the current node
// set. The result is recomputed from the live nodes on every call, so
// additions and removals are always reflected.
func (c *Cluster) AggregateResources() Totals {
	totals := Totals{Nodes: len(c.order)}
	memory := make([]resource.Quantity, 0, len(c.order))
	disk := make([]resource.Quantity, 0, len(c.order))

	for _, name := range c.order {
		n := c.nodes[name]
		totals.CPUs += n.CPUs
		memory = append(memory, n.Memory)
		disk = append(disk, n.Disk)
	}

	totals.Memory = resource.Sum(memory...)
	totals.Disk = resource.Sum(disk...)
	return totals
}
