package handlers

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/yehuo/multipass-k3s-cli/internal/lifecycle"
)

// newConfirmer picks the confirmation strategy. --yes approves every
// gate without asking. Without a terminal there is nobody to ask, so
// the confirmer reports an error, which callers treat as a decline.
// Factory function variable - can be replaced in tests.
var newConfirmer = func(yes bool) lifecycle.Confirmer {
	if yes {
		return lifecycle.AutoApprove()
	}
	if !isInteractive() {
		return lifecycle.ConfirmerFunc(func(context.Context, string) (bool, error) {
			return false, errors.New("stdout is not a terminal, pass --yes to skip confirmation")
		})
	}
	return lifecycle.ConfirmerFunc(promptConfirm)
}

// isInteractive reports whether stdout is attached to a terminal.
// Variable so tests can force either mode.
var isInteractive = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// promptConfirm shows a yes/no form for one confirmation gate.
func promptConfirm(ctx context.Context, prompt string) (bool, error) {
	var approved bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Value(&approved),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return approved, nil
}
