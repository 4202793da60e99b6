// Package config loads and merges the layered cluster configuration.
//
// A cluster file declares three layers: cluster-wide defaults, per-role
// defaults, and per-node overrides (inline or in separate files). The
// [Tree] type is a tagged variant (scalar, sequence, or map) so that merge
// and validation are exhaustive rather than duck-typed. [Merge] applies
// override-wins deep-merge semantics; the three layers are combined by two
// sequential two-way merges so that node overrides always beat role
// defaults, which always beat cluster defaults.
//
// # File format
//
//	cluster_name: demo
//	defaults:
//	  image: 22.04
//	  resources: {cpus: 2, memory: 2G, disk: 20G}
//	roles:
//	  controller:
//	    resources: {memory: 4G}
//	  worker: {}
//	nodes:
//	  - name: controller-01
//	    role: controller
//	  - name: worker-01
//	    role: worker
//	    overrides:
//	      resources: {cpus: 4}
//
// Inventory order is significant: it fixes the order in which role groups
// are operated on during lifecycle runs.
package config
