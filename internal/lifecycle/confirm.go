package lifecycle

import "context"

// Confirmer answers the gate between two dispatched role groups. Implementations
// range from an interactive terminal prompt to the auto-approval used by
// non-interactive runs.
type Confirmer interface {
	// Confirm reports whether the operator approved continuing. An error
	// means no answer could be obtained; the orchestrator treats that as
	// a decline, never as approval.
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AutoApprove returns a Confirmer that approves every gate without
// asking. Used for --yes runs and as the orchestrator's default.
func AutoApprove() Confirmer {
	return ConfirmerFunc(func(context.Context, string) (bool, error) {
		return true, nil
	})
}
