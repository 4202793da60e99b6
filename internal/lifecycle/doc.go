// Package lifecycle coordinates cluster-wide power transitions.
//
// A lifecycle run applies one operation (start, suspend, or stop) to the
// whole cluster, one role group at a time. Ordering is fixed per
// operation: start brings controllers up before workers, while suspend
// and stop quiesce workers before the control plane. Each group reaches
// the backend as a single batch call.
//
// # Confirmation Gates
//
// Between dispatched groups the run pauses and asks its Confirmer whether
// to continue, giving the operator a checkpoint after the control plane
// settles. Declining aborts the run cleanly: groups already applied stay
// applied, later groups are never dispatched, and the result reports
// StateAborted without an error.
//
// # Failure Semantics
//
// Empty role groups are skipped outright, with no backend call and no
// confirmation gate on either side of them. A batch failure halts the run
// immediately in StateFailed; the orchestrator never continues past a
// group it could not fully apply.
package lifecycle
