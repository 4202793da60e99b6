package lifecycle

import (
	"fmt"
	"strings"

	"github.com/yehuo/multipass-k3s-cli/internal/cluster"
	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
)

// Operation is a cluster-wide power transition.
type Operation string

const (
	// OpStart powers the cluster on, control plane first.
	OpStart Operation = "start"
	// OpSuspend suspends the cluster to memory, workers first.
	OpSuspend Operation = "suspend"
	// OpStop shuts the cluster down, workers first.
	OpStop Operation = "stop"
)

// ValidOperations returns all supported operations.
func ValidOperations() []Operation {
	return []Operation{OpStart, OpSuspend, OpStop}
}

// IsValid reports whether the operation is supported.
func (op Operation) IsValid() bool {
	switch op {
	case OpStart, OpSuspend, OpStop:
		return true
	default:
		return false
	}
}

// String returns the operation name.
func (op Operation) String() string {
	return string(op)
}

// ParseOperation converts a string into an Operation, case-insensitively.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	if !op.IsValid() {
		valid := make([]string, 0, len(ValidOperations()))
		for _, v := range ValidOperations() {
			valid = append(valid, v.String())
		}
		return "", fmt.Errorf("unknown operation %q, valid operations are: %s", s, strings.Join(valid, ", "))
	}
	return op, nil
}

// Target returns the backend power target the operation applies.
func (op Operation) Target() multipass.PowerTarget {
	switch op {
	case OpStart:
		return multipass.PowerOn
	case OpSuspend:
		return multipass.PowerSuspend
	case OpStop:
		return multipass.PowerOff
	default:
		return ""
	}
}

// GroupOrder returns the role groups in dispatch order. Start brings the
// control plane up before workers join it; suspend and stop drain workers
// before the control plane goes away underneath them.
func (op Operation) GroupOrder() []cluster.Role {
	switch op {
	case OpStart:
		return []cluster.Role{cluster.RoleController, cluster.RoleWorker}
	case OpSuspend, OpStop:
		return []cluster.Role{cluster.RoleWorker, cluster.RoleController}
	default:
		return nil
	}
}

// Progressive returns the operation's in-progress form for prompts.
func (op Operation) Progressive() string {
	switch op {
	case OpStart:
		return "starting"
	case OpSuspend:
		return "suspending"
	case OpStop:
		return "stopping"
	default:
		return string(op)
	}
}

// Past returns the operation's completed form for prompts.
func (op Operation) Past() string {
	switch op {
	case OpStart:
		return "started"
	case OpSuspend:
		return "suspended"
	case OpStop:
		return "stopped"
	default:
		return string(op)
	}
}
