package multipass

import "strings"

// State is a backend-reported machine lifecycle state.
type State string

const (
	StateRunning   State = "Running"
	StateStopped   State = "Stopped"
	StateSuspended State = "Suspended"
	StateDeleted   State = "Deleted"
	StateUnknown   State = "Unknown"
)

// ParseState maps backend state text onto a State. Text outside the known
// set maps to StateUnknown; keep the raw text alongside for display.
func ParseState(s string) State {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "running":
		return StateRunning
	case "stopped":
		return StateStopped
	case "suspended":
		return StateSuspended
	case "deleted":
		return StateDeleted
	default:
		return StateUnknown
	}
}

// String returns the canonical state label.
func (s State) String() string {
	return string(s)
}

// VMState is one machine's observed state. It is a point-in-time snapshot:
// two consecutive queries may disagree.
type VMState struct {
	Name  string
	State State
	// Raw is the backend's state text before parsing, kept for display so
	// transitional states ("Starting") remain visible.
	Raw   string
	IPv4  []string
	Image string
}

// PowerTarget names a power transition the backend can apply.
type PowerTarget string

const (
	PowerOn      PowerTarget = "start"
	PowerOff     PowerTarget = "stop"
	PowerSuspend PowerTarget = "suspend"
)

// IsValid reports whether the target is one of the known transitions.
func (t PowerTarget) IsValid() bool {
	switch t {
	case PowerOn, PowerOff, PowerSuspend:
		return true
	default:
		return false
	}
}

// Command returns the backend subcommand that applies the target.
func (t PowerTarget) Command() string {
	return string(t)
}

// Desired returns the state a machine settles in once the target applies.
func (t PowerTarget) Desired() State {
	switch t {
	case PowerOn:
		return StateRunning
	case PowerOff:
		return StateStopped
	case PowerSuspend:
		return StateSuspended
	default:
		return StateUnknown
	}
}

// MountSpec maps a host path into a machine at launch.
type MountSpec struct {
	Source   string
	Target   string
	ReadOnly bool
}

// LaunchSpec holds everything the backend needs to create one machine.
// Quantity fields carry backend-ready text ("4G"), already validated by
// the resolver.
type LaunchSpec struct {
	Name         string
	Image        string
	CPUs         int
	Memory       string
	Disk         string
	Bridged      bool
	Interfaces   []string
	Mounts       []MountSpec
	CloudInit    string
	ExtraOptions []string
}

// LaunchResult reports a successful launch.
type LaunchResult struct {
	Name string
	// Message is the backend's own success output, e.g. "Launched: ctrl-1".
	Message string
}

// PowerResult attributes a batch power transition to individual names.
type PowerResult struct {
	Target  PowerTarget
	Applied []string
	Failed  map[string]error
}

// OK reports whether every name in the batch was applied.
func (r PowerResult) OK() bool {
	return len(r.Failed) == 0
}

// ExecResult is the outcome of running a command inside a machine. A
// remote command failing is a result (OK=false, ExitCode set), not a
// transport error.
type ExecResult struct {
	OK       bool
	ExitCode int
	Stdout   string
	Stderr   string
}
