package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
)

func sampleVMs() []multipass.VMState {
	return []multipass.VMState{
		{Name: "ctrl-1", State: multipass.StateRunning, Raw: "Running", IPv4: []string{"192.168.64.2"}, Image: "Ubuntu 22.04 LTS"},
		{Name: "work-1", State: multipass.StateStopped, Raw: "Stopped", Image: "Ubuntu 22.04 LTS"},
		{Name: "work-2", State: multipass.StateUnknown, Raw: "Starting", IPv4: []string{"192.168.64.4", "10.0.0.4", "10.0.1.4"}, Image: "Ubuntu 22.04 LTS"},
	}
}

func sampleRoles() map[string]string {
	return map[string]string{
		"ctrl-1": "controller",
		"work-1": "worker",
		"work-2": "worker",
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m30s"},
		{3600 * time.Second, "1h0m"},
		{3661 * time.Second, "1h1m"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatIPs(t *testing.T) {
	tests := []struct {
		ips  []string
		want string
	}{
		{nil, "--"},
		{[]string{"192.168.64.2"}, "192.168.64.2"},
		{[]string{"192.168.64.2", "10.0.0.2"}, "192.168.64.2 (+1 more)"},
		{[]string{"192.168.64.2", "10.0.0.2", "10.0.1.2"}, "192.168.64.2 (+2 more)"},
	}
	for _, tt := range tests {
		got := formatIPs(tt.ips)
		if got != tt.want {
			t.Errorf("formatIPs(%v) = %q, want %q", tt.ips, got, tt.want)
		}
	}
}

func TestStateText_PrefersRawForTransitionalStates(t *testing.T) {
	vm := multipass.VMState{State: multipass.StateUnknown, Raw: "Starting"}
	if got := stateText(vm); got != "Starting" {
		t.Errorf("stateText = %q, want Starting", got)
	}

	vm = multipass.VMState{State: multipass.StateRunning, Raw: "Running"}
	if got := stateText(vm); got != "Running" {
		t.Errorf("stateText = %q, want Running", got)
	}
}

func TestStateIcon(t *testing.T) {
	tests := []struct {
		state multipass.State
		icon  string
	}{
		{multipass.StateRunning, checkMark},
		{multipass.StateStopped, pending},
		{multipass.StateSuspended, warnMark},
		{multipass.StateDeleted, crossMark},
	}
	for _, tt := range tests {
		icon, _ := stateIcon(tt.state, 0)
		if icon != tt.icon {
			t.Errorf("stateIcon(%v) = %q, want %q", tt.state, icon, tt.icon)
		}
	}

	// Transitional states animate instead of using a fixed mark.
	icon, _ := stateIcon(multipass.StateUnknown, 1)
	if icon != spinnerFrames[1%len(spinnerFrames)] {
		t.Errorf("expected spinner frame for unknown state, got %q", icon)
	}
}

func TestCurrentSpinner_Wraps(t *testing.T) {
	a := currentSpinner(0)
	b := currentSpinner(len(spinnerFrames))
	if a != b {
		t.Errorf("spinner did not wrap: %q vs %q", a, b)
	}
}

func TestModelUpdateStatus(t *testing.T) {
	m := NewStatusModel("demo", sampleRoles())

	m.updateStatus(StatusMsg{VMs: sampleVMs()})
	if !m.Primed {
		t.Error("expected model to be primed after first snapshot")
	}
	if len(m.VMs) != 3 {
		t.Errorf("expected 3 VMs, got %d", len(m.VMs))
	}
	if m.Refreshed.IsZero() {
		t.Error("expected refresh timestamp to be set")
	}
}

func TestModelUpdateStatus_FetchErrorKeepsSnapshot(t *testing.T) {
	m := NewStatusModel("demo", nil)
	m.updateStatus(StatusMsg{VMs: sampleVMs()})

	m.updateStatus(StatusMsg{FetchErr: "cannot connect to the multipass socket"})

	if len(m.VMs) != 3 {
		t.Error("a failed refresh must keep the last good snapshot")
	}
	if m.FetchErr == "" {
		t.Error("expected fetch error to be recorded")
	}

	// A following good refresh clears the error.
	m.updateStatus(StatusMsg{VMs: sampleVMs()[:1]})
	if m.FetchErr != "" {
		t.Error("expected fetch error to clear on a good refresh")
	}
	if len(m.VMs) != 1 {
		t.Errorf("expected 1 VM after refresh, got %d", len(m.VMs))
	}
}

func TestModelUpdate_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		m := NewStatusModel("demo", nil)
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected QuitMsg for %q", key.String())
		}
	}
}

func TestModelUpdate_TickAdvancesSpinner(t *testing.T) {
	m := NewStatusModel("demo", nil)

	updated, cmd := m.Update(TickMsg{})
	um := updated.(Model)
	if um.SpinnerFrame != 1 {
		t.Errorf("expected spinner frame 1, got %d", um.SpinnerFrame)
	}
	if cmd == nil {
		t.Error("expected tick to schedule the next tick")
	}
}

func TestModelUpdate_DoneQuits(t *testing.T) {
	m := NewStatusModel("demo", nil)

	updated, cmd := m.Update(DoneMsg{})
	if !updated.(Model).Done {
		t.Error("expected Done to be set")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestRenderView_Table(t *testing.T) {
	m := NewStatusModel("demo", sampleRoles())
	m.updateStatus(StatusMsg{VMs: sampleVMs()})

	output := renderView(m)

	for _, want := range []string{"demo", "ctrl-1", "work-1", "work-2", "controller", "worker"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if !strings.Contains(output, "Running") {
		t.Error("expected running state in output")
	}
	if !strings.Contains(output, "Starting") {
		t.Error("expected transitional raw state in output")
	}
	if !strings.Contains(output, "192.168.64.4 (+2 more)") {
		t.Error("expected folded IP list in output")
	}
}

func TestRenderView_Summary(t *testing.T) {
	m := NewStatusModel("demo", nil)
	m.updateStatus(StatusMsg{VMs: sampleVMs()})

	output := renderView(m)

	if !strings.Contains(output, "Total: 3 virtual machine(s)") {
		t.Error("expected total count in output")
	}
	if !strings.Contains(output, "1 running") {
		t.Error("expected running count in output")
	}
	if !strings.Contains(output, "1 stopped") {
		t.Error("expected stopped count in output")
	}
}

func TestRenderView_EmptyCluster(t *testing.T) {
	m := NewStatusModel("demo", nil)
	m.updateStatus(StatusMsg{VMs: nil})

	output := renderView(m)

	if !strings.Contains(output, "no virtual machines found") {
		t.Error("expected empty-cluster notice in output")
	}
	if !strings.Contains(output, "Total: 0 virtual machine(s)") {
		t.Error("expected zero total in output")
	}
}

func TestRenderView_FetchError(t *testing.T) {
	m := NewStatusModel("demo", nil)
	m.updateStatus(StatusMsg{VMs: sampleVMs()})
	m.updateStatus(StatusMsg{FetchErr: "cannot connect"})

	output := renderView(m)

	if !strings.Contains(output, "refresh failed: cannot connect") {
		t.Error("expected fetch error in output")
	}
	if !strings.Contains(output, "ctrl-1") {
		t.Error("expected stale snapshot to remain visible")
	}
}

func TestRenderView_WatchFooter(t *testing.T) {
	m := NewStatusModel("demo", nil)
	m.updateStatus(StatusMsg{VMs: sampleVMs()})

	if !strings.Contains(renderView(m), "q: quit") {
		t.Error("expected quit hint while watching")
	}
}

func TestRenderStatusOnce_NoFooter(t *testing.T) {
	output := RenderStatusOnce("demo", sampleRoles(), sampleVMs())

	if strings.Contains(output, "q: quit") {
		t.Error("one-shot rendering must not show the watch footer")
	}
	if !strings.Contains(output, "ctrl-1") {
		t.Error("expected node rows in one-shot output")
	}
	if !strings.Contains(output, "Total: 3 virtual machine(s)") {
		t.Error("expected summary in one-shot output")
	}
}
