// Package cluster holds the in-memory model of the virtual machine fleet
// and the resolver that builds it from layered configuration.
//
// # Layered Resolution
//
// Every node's effective configuration is the merge of three layers, most
// specific last:
//
//  1. cluster-wide defaults
//  2. role defaults (controller or worker)
//  3. the per-node override, inline or from a separate file
//
// Precedence is applied as two sequential two-way merges, so a key set in
// the node override always beats the role layer, which always beats the
// cluster layer. The merged tree is validated and projected into a typed
// Node; a malformed value fails resolution of that node with a
// ResolutionError naming it, and never falls back to a default. Nodes
// that fail resolution do not block the rest of the inventory.
//
// # Role Partitions
//
// The Cluster model partitions nodes by role while preserving inventory
// declaration order. That order is load-bearing: lifecycle operations
// walk role groups in it. Aggregate resource totals are recomputed from
// the live node set on every call.
//
// # Example Usage
//
//	f, err := config.Load("cluster.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := cluster.BuildCluster(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, n := range c.NodesByRole(cluster.RoleController) {
//	    fmt.Println(n.Name, n.Memory)
//	}
package cluster
