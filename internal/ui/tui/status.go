package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
)

// DefaultWatchInterval is how often the dashboard polls the backend.
const DefaultWatchInterval = 2 * time.Second

// WatchOptions configure the live status dashboard.
type WatchOptions struct {
	ClusterName string
	// Names restricts the watch to specific machines; empty watches
	// everything the backend reports.
	Names []string
	// Roles maps node names to their role label for the ROLE column.
	Roles map[string]string
	// Interval is the backend poll cadence; zero means DefaultWatchInterval.
	Interval time.Duration
}

// RunStatusTUI renders a live status dashboard until the user quits or
// ctx is cancelled. The backend is polled in the background; a failed
// refresh keeps the last good snapshot on screen.
func RunStatusTUI(ctx context.Context, q multipass.Querier, opts WatchOptions) error {
	if opts.Interval <= 0 {
		opts.Interval = DefaultWatchInterval
	}

	m := NewStatusModel(opts.ClusterName, opts.Roles)

	p := tea.NewProgram(m, tea.WithAltScreen())

	go pollStatus(ctx, p, q, opts)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}

// pollStatus queries the backend on a fixed cadence and feeds snapshots
// to the running program.
func pollStatus(ctx context.Context, p *tea.Program, q multipass.Querier, opts WatchOptions) {
	fetch := func() {
		states, err := q.Query(ctx, opts.Names)
		if err != nil {
			p.Send(StatusMsg{FetchErr: err.Error()})
			return
		}
		p.Send(StatusMsg{VMs: states})
	}

	// Prime the display before the first tick.
	fetch()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Send(DoneMsg{})
			return
		case <-ticker.C:
			fetch()
		}
	}
}

// RenderStatusOnce renders the status table once using lipgloss
// (non-watch mode).
func RenderStatusOnce(clusterName string, roles map[string]string, vms []multipass.VMState) string {
	m := NewStatusModel(clusterName, roles)
	m.Watching = false
	m.updateStatus(StatusMsg{VMs: vms})
	return renderView(m)
}
