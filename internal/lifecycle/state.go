package lifecycle

import "github.com/yehuo/multipass-k3s-cli/internal/cluster"

// State names a lifecycle run's position in its state machine.
type State string

const (
	// StateIdle is the initial state, before any group is dispatched.
	StateIdle State = "Idle"
	// StateGroupInFlight means a role group's batch is being applied.
	StateGroupInFlight State = "GroupInFlight"
	// StateAwaitingConfirmation means the run is paused at the gate
	// between two dispatched groups.
	StateAwaitingConfirmation State = "AwaitingConfirmation"
	// StateDone means every role group was applied or skipped.
	StateDone State = "Done"
	// StateAborted means the operator declined to continue. Groups
	// already applied stay applied.
	StateAborted State = "Aborted"
	// StateFailed means a group's batch did not fully apply and the run
	// halted.
	StateFailed State = "Failed"
)

// String returns the state name.
func (s State) String() string {
	return string(s)
}

// Terminal reports whether the run has finished.
func (s State) Terminal() bool {
	switch s {
	case StateDone, StateAborted, StateFailed:
		return true
	default:
		return false
	}
}

// GroupStatus classifies one role group's outcome within a run.
type GroupStatus string

const (
	// GroupApplied means the batch reached every node in the group.
	GroupApplied GroupStatus = "applied"
	// GroupSkipped means the group had no nodes, so nothing was
	// dispatched for it.
	GroupSkipped GroupStatus = "skipped"
	// GroupFailed means the batch was dispatched and did not fully
	// apply.
	GroupFailed GroupStatus = "failed"
)

// GroupResult records one role group's outcome. Groups the run never
// reached, because an earlier gate was declined or an earlier batch
// failed, do not appear in the result at all.
type GroupResult struct {
	Role   cluster.Role
	Names  []string
	Status GroupStatus
	Err    error
}

// Result is the terminal outcome of a lifecycle run.
type Result struct {
	Operation Operation
	State     State
	Groups    []GroupResult
	Message   string
}

// Applied returns the names of every node a batch reached, in dispatch
// order.
func (r *Result) Applied() []string {
	var names []string
	for _, g := range r.Groups {
		if g.Status == GroupApplied {
			names = append(names, g.Names...)
		}
	}
	return names
}
