package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderNodes(&b, m)
	renderSummary(&b, m)

	if m.FetchErr != "" {
		fmt.Fprintf(&b, "  %s %s\n",
			failedStyle.Render(crossMark), dimStyle.Render("refresh failed: "+m.FetchErr))
	}

	if m.Watching {
		renderFooter(&b, m)
	}

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := "mpc"
	if m.ClusterName != "" {
		title += fmt.Sprintf(": %s", m.ClusterName)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Watching && !m.Primed:
		status += dimStyle.Render(currentSpinner(m.SpinnerFrame) + " querying backend...")
	case m.Watching:
		status += dimStyle.Render(currentSpinner(m.SpinnerFrame) + " watching")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderNodes(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Nodes"))
	b.WriteString("\n")

	if m.Primed && len(m.VMs) == 0 {
		b.WriteString(dimStyle.Render("    no virtual machines found"))
		b.WriteString("\n")
		return
	}

	fmt.Fprintf(b, "    %s %s\n", strings.Repeat(" ", len(pending)),
		dimStyle.Render(fmt.Sprintf("%-16s %-12s %-11s %-18s %s", "NAME", "ROLE", "STATE", "IPV4", "IMAGE")))

	for _, vm := range m.VMs {
		icon, style := stateIcon(vm.State, m.SpinnerFrame)

		role := m.Roles[vm.Name]
		if role == "" {
			role = "-"
		}

		fmt.Fprintf(b, "    %s %-16s %-12s %s %-18s %s\n",
			style(icon),
			vm.Name,
			role,
			style(fmt.Sprintf("%-11s", stateText(vm))),
			formatIPs(vm.IPv4),
			dimStyle.Render(vm.Image))
	}
}

func renderSummary(b *strings.Builder, m Model) {
	if !m.Primed {
		return
	}

	counts := make(map[multipass.State]int, len(m.VMs))
	for _, vm := range m.VMs {
		counts[vm.State]++
	}

	var parts []string
	for _, s := range []multipass.State{
		multipass.StateRunning,
		multipass.StateStopped,
		multipass.StateSuspended,
		multipass.StateDeleted,
		multipass.StateUnknown,
	} {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(s.String())))
		}
	}

	total := fmt.Sprintf("  Total: %d virtual machine(s)", len(m.VMs))
	if len(parts) > 0 {
		total += dimStyle.Render(fmt.Sprintf(" (%s)", strings.Join(parts, ", ")))
	}
	b.WriteString("\n")
	b.WriteString(total)
	b.WriteString("\n")
}

func renderFooter(b *strings.Builder, m Model) {
	parts := []string{fmt.Sprintf("elapsed: %s", formatDuration(time.Since(m.StartTime)))}
	if !m.Refreshed.IsZero() {
		parts = append(parts, fmt.Sprintf("refreshed %s ago", formatDuration(time.Since(m.Refreshed))))
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s  |  q: quit", strings.Join(parts, "  |  "))))
	b.WriteString("\n")
}

// Helper functions

// stateText prefers the backend's raw label so transitional states like
// "Starting" stay visible instead of flattening to Unknown.
func stateText(vm multipass.VMState) string {
	if vm.State == multipass.StateUnknown && vm.Raw != "" {
		return vm.Raw
	}
	return vm.State.String()
}

func stateIcon(state multipass.State, frame int) (string, styleFunc) {
	switch state {
	case multipass.StateRunning:
		return checkMark, sf(runningStyle)
	case multipass.StateStopped:
		return pending, sf(dimStyle)
	case multipass.StateSuspended:
		return warnMark, sf(suspendedStyle)
	case multipass.StateDeleted:
		return crossMark, sf(failedStyle)
	default:
		// Transitional states keep spinning.
		return currentSpinner(frame), sf(activeStyle)
	}
}

func formatIPs(ips []string) string {
	if len(ips) == 0 {
		return "--"
	}
	if len(ips) > 1 {
		return fmt.Sprintf("%s (+%d more)", ips[0], len(ips)-1)
	}
	return ips[0]
}

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
