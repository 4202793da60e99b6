package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yehuo/multipass-k3s-cli/internal/platform/multipass"
)

// Model is the Bubble Tea model for the status dashboard.
type Model struct {
	// Cluster info
	ClusterName string
	Roles       map[string]string // node name -> role label, from the inventory

	// Backend-sourced state
	VMs       []multipass.VMState
	FetchErr  string
	Refreshed time.Time
	Primed    bool // first snapshot received

	// Animation
	SpinnerFrame int
	StartTime    time.Time

	// UI state
	Width    int
	Height   int
	Err      error
	Done     bool
	Watching bool
}

// NewStatusModel creates a model for the live status dashboard.
func NewStatusModel(clusterName string, roles map[string]string) Model {
	return Model{
		ClusterName: clusterName,
		Roles:       roles,
		StartTime:   time.Now(),
		Watching:    true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StatusMsg:
		m.updateStatus(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateStatus(msg StatusMsg) {
	m.Refreshed = time.Now()
	if msg.FetchErr != "" {
		// Keep the last good snapshot on screen alongside the failure.
		m.FetchErr = msg.FetchErr
		return
	}
	m.FetchErr = ""
	m.VMs = msg.VMs
	m.Primed = true
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
