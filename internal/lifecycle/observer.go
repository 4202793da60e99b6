package lifecycle

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yehuo/multipass-k3s-cli/internal/cluster"
)

// Logger emits freeform progress lines.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during
// cluster operations.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress through a multi-step operation
	Progress(step string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured cluster operation event.
type Event struct {
	Type      EventType         // Type of event
	Operation Operation         // Lifecycle operation, if applicable
	Role      cluster.Role      // Role group the event concerns, if applicable
	Node      string            // Node name, if applicable
	Message   string            // Human-readable message
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of cluster operation event.
type EventType string

const (
	// EventGroupStarted indicates a role group's batch is going out.
	EventGroupStarted EventType = "group.started"
	// EventGroupCompleted indicates a role group's batch fully applied.
	EventGroupCompleted EventType = "group.completed"
	// EventGroupSkipped indicates a role group had no nodes.
	EventGroupSkipped EventType = "group.skipped"
	// EventGroupFailed indicates a role group's batch did not fully apply.
	EventGroupFailed EventType = "group.failed"

	// EventConfirmRequested indicates the run paused at a confirmation gate.
	EventConfirmRequested EventType = "confirm.requested"

	// EventRunCompleted indicates a lifecycle run finished in StateDone.
	EventRunCompleted EventType = "run.completed"
	// EventRunAborted indicates the operator declined a gate.
	EventRunAborted EventType = "run.aborted"
	// EventRunFailed indicates a lifecycle run halted in StateFailed.
	EventRunFailed EventType = "run.failed"

	// EventNodeCreating indicates a node is being launched.
	EventNodeCreating EventType = "node.creating"
	// EventNodeCreated indicates a node launched and settled.
	EventNodeCreated EventType = "node.created"
	// EventNodeFailed indicates node creation or deletion failed.
	EventNodeFailed EventType = "node.failed"
	// EventNodeDeleting indicates a node is being deleted.
	EventNodeDeleting EventType = "node.deleting"
	// EventNodeDeleted indicates a node was deleted.
	EventNodeDeleted EventType = "node.deleted"

	// EventProgress indicates progress in a multi-step operation.
	EventProgress EventType = "progress"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements the Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	log.Print(o.formatEvent(event))
}

// Progress implements the Observer interface.
func (o *ConsoleObserver) Progress(step string, current, total int) {
	if total == 0 {
		log.Printf("[%s] Progress: %d/%d", step, current, total)
		return
	}
	percentage := (current * 100) / total
	log.Printf("[%s] Progress: %d/%d (%d%%)", step, current, total, percentage)
}

// WithFields implements the Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		contextFields: newFields,
	}
}

// formatEvent formats an event for console output.
func (o *ConsoleObserver) formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Operation != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Operation))
	}
	if event.Role != "" {
		parts = append(parts, fmt.Sprintf("role=%s", event.Role))
	}
	if event.Node != "" {
		parts = append(parts, fmt.Sprintf("node=%s", event.Node))
	}

	if event.Message != "" {
		parts = append(parts, event.Message)
	}

	if len(event.Fields) > 0 {
		fieldParts := make([]string, 0, len(event.Fields))
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// NopObserver discards everything it receives. It is the orchestrator's
// default when no observer is injected.
type NopObserver struct{}

// Printf implements the Logger interface.
func (NopObserver) Printf(string, ...interface{}) {}

// Event implements the Observer interface.
func (NopObserver) Event(Event) {}

// Progress implements the Observer interface.
func (NopObserver) Progress(string, int, int) {}

// WithFields implements the Observer interface.
func (o NopObserver) WithFields(map[string]string) Observer { return o }

// Helper functions for common events

// LogGroupStart logs a role group dispatch event.
func LogGroupStart(observer Observer, op Operation, role cluster.Role, names []string) {
	observer.Event(Event{
		Type:      EventGroupStarted,
		Operation: op,
		Role:      role,
		Message:   strings.Join(names, ","),
	})
}

// LogGroupComplete logs a role group completion event.
func LogGroupComplete(observer Observer, op Operation, role cluster.Role, duration time.Duration) {
	observer.Event(Event{
		Type:      EventGroupCompleted,
		Operation: op,
		Role:      role,
		Message:   fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogGroupSkipped logs an empty role group.
func LogGroupSkipped(observer Observer, op Operation, role cluster.Role) {
	observer.Event(Event{
		Type:      EventGroupSkipped,
		Operation: op,
		Role:      role,
		Message:   "no nodes",
	})
}

// LogGroupFailed logs a role group failure event.
func LogGroupFailed(observer Observer, op Operation, role cluster.Role, err error) {
	observer.Event(Event{
		Type:      EventGroupFailed,
		Operation: op,
		Role:      role,
		Message:   fmt.Sprintf("failed: %v", err),
	})
}

// LogNodeCreating logs a node launch start event.
func LogNodeCreating(observer Observer, node, image string) {
	observer.Event(Event{
		Type:    EventNodeCreating,
		Node:    node,
		Message: "launching",
		Fields: map[string]string{
			"image": image,
		},
	})
}

// LogNodeCreated logs a successful node launch event.
func LogNodeCreated(observer Observer, node string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventNodeCreated,
		Node:    node,
		Message: fmt.Sprintf("ready in %v", duration.Round(time.Millisecond)),
	})
}

// LogNodeFailed logs a node operation failure event.
func LogNodeFailed(observer Observer, node string, err error) {
	observer.Event(Event{
		Type:    EventNodeFailed,
		Node:    node,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogNodeDeleting logs a node deletion start event.
func LogNodeDeleting(observer Observer, node string) {
	observer.Event(Event{
		Type:    EventNodeDeleting,
		Node:    node,
		Message: "deleting",
	})
}

// LogNodeDeleted logs a successful node deletion event.
func LogNodeDeleted(observer Observer, node string) {
	observer.Event(Event{
		Type:    EventNodeDeleted,
		Node:    node,
		Message: "deleted",
	})
}
