// Package tui provides a Bubble Tea-based live dashboard for cluster status.
package tui

import "github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"

// StatusMsg carries the latest machine states observed from the backend.
// FetchErr is set instead of VMs when the refresh failed; the dashboard
// keeps showing the last good snapshot.
type StatusMsg struct {
	VMs      []multipass.VMState
	FetchErr string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that watching should end.
type DoneMsg struct{}
