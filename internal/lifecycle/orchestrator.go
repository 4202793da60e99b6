package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yehuo/multipass-k3s-cli/internal/cluster"
	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
)

// Orchestrator drives cluster-wide power transitions, one role group at
// a time.
type Orchestrator struct {
	gateway  multipass.PowerManager
	confirm  Confirmer
	observer Observer
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithConfirmer gates continuation between dispatched groups through c.
func WithConfirmer(c Confirmer) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.confirm = c
		}
	}
}

// WithObserver reports run progress through obs.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// NewOrchestrator creates an Orchestrator around the given power gateway.
// Without options, gates auto-approve and progress goes unreported.
func NewOrchestrator(gateway multipass.PowerManager, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gateway:  gateway,
		confirm:  AutoApprove(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run applies op to every node of c, one role group at a time in the
// operation's fixed order. Groups with no nodes are recorded as skipped
// and never reach the backend or raise a confirmation gate. Once a group
// has been dispatched, each following non-empty group asks the Confirmer
// before its batch goes out; declining aborts the run, leaving applied
// groups applied and dispatching nothing further.
//
// An aborted run is a clean outcome: Run returns a Result in
// StateAborted and a nil error. Only StateFailed, raised when a batch
// does not fully apply, comes back with a non-nil error.
func (o *Orchestrator) Run(ctx context.Context, c *cluster.Cluster, op Operation) (*Result, error) {
	if !op.IsValid() {
		return nil, fmt.Errorf("unknown operation %q", op)
	}

	result := &Result{Operation: op, State: StateIdle}
	start := time.Now()

	o.observer.Printf("%s cluster %s...", sentence(op.Progressive()), c.Name())

	var lastApplied cluster.Role
	dispatched := false

	for _, role := range op.GroupOrder() {
		names := nodeNames(c.NodesByRole(role))

		if len(names) == 0 {
			result.Groups = append(result.Groups, GroupResult{Role: role, Status: GroupSkipped})
			LogGroupSkipped(o.observer, op, role)
			continue
		}

		if dispatched {
			result.State = StateAwaitingConfirmation
			prompt := confirmPrompt(op, lastApplied, role)
			o.observer.Event(Event{Type: EventConfirmRequested, Operation: op, Role: role, Message: prompt})

			approved, err := o.confirm.Confirm(ctx, prompt)
			if err != nil {
				// No answer counts as no.
				result.Message = fmt.Sprintf("confirmation unavailable: %v", err)
				approved = false
			}
			if !approved {
				result.State = StateAborted
				if result.Message == "" {
					result.Message = fmt.Sprintf("cancelled before %s nodes", role)
				}
				o.observer.Event(Event{Type: EventRunAborted, Operation: op, Role: role, Message: result.Message})
				return result, nil
			}
		}

		result.State = StateGroupInFlight
		groupStart := time.Now()
		LogGroupStart(o.observer, op, role, names)

		res, err := o.gateway.SetPowerState(ctx, names, op.Target())
		if err == nil && !res.OK() {
			err = failureByName(res.Failed)
		}
		if err != nil {
			result.State = StateFailed
			result.Groups = append(result.Groups, GroupResult{Role: role, Names: names, Status: GroupFailed, Err: err})
			LogGroupFailed(o.observer, op, role, err)
			o.observer.Event(Event{Type: EventRunFailed, Operation: op, Role: role, Message: err.Error()})
			return result, fmt.Errorf("%s %s nodes: %w", op, role, err)
		}

		result.Groups = append(result.Groups, GroupResult{Role: role, Names: names, Status: GroupApplied})
		LogGroupComplete(o.observer, op, role, time.Since(groupStart))
		lastApplied = role
		dispatched = true
	}

	result.State = StateDone
	o.observer.Event(Event{
		Type:      EventRunCompleted,
		Operation: op,
		Message:   fmt.Sprintf("completed in %v", time.Since(start).Round(time.Millisecond)),
	})
	return result, nil
}

// confirmPrompt phrases the gate between two role groups, naming what
// just happened and what comes next.
func confirmPrompt(op Operation, applied, next cluster.Role) string {
	return fmt.Sprintf("%s nodes are %s. Continue %s %s nodes?",
		sentence(string(applied)), op.Past(), op.Progressive(), next)
}

// failureByName folds a per-name failure map into one deterministic error.
func failureByName(failed map[string]error) error {
	names := make([]string, 0, len(failed))
	for name := range failed {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]error, 0, len(names))
	for _, name := range names {
		errs = append(errs, fmt.Errorf("%s: %w", name, failed[name]))
	}
	return errors.Join(errs...)
}

func nodeNames(nodes []cluster.Node) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	return names
}

// sentence uppercases the first letter for prompt-leading words.
func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
