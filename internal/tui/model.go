// Package tui renders the orchestrator's stage transitions as a live
// progress display for interactive terminals.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/weave/internal/orchestrator"
)

// StageMsg reports that the run has entered a new stage.
type StageMsg orchestrator.State

// DoneMsg carries the final result once the run has returned.
type DoneMsg struct {
	Result orchestrator.Result
}

// Model is the Bubbletea state for the build pipeline's progress view.
type Model struct {
	bar      progress.Model
	current  orchestrator.State
	reached  int
	result   *orchestrator.Result
	quitting bool
}

// NewModel constructs a fresh, unstarted progress model.
func NewModel() Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return Model{bar: bar, current: orchestrator.StateIdle, reached: -1}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StageMsg:
		m.current = orchestrator.State(msg)
		if idx := stageIndex(m.current); idx > m.reached {
			m.reached = idx
		}
		return m, nil
	case DoneMsg:
		m.result = &msg.Result
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	ratio := 0.0
	if len(stageOrder) > 0 {
		ratio = float64(m.reached+1) / float64(len(stageOrder))
	}
	label := lipgloss.NewStyle().Bold(true).Render(string(m.current))
	line := lipgloss.JoinHorizontal(lipgloss.Left, m.bar.ViewAs(ratio), " ", label)
	if m.quitting && m.result != nil {
		status := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("done")
		if m.result.State == orchestrator.StateFailed {
			status = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("failed")
		}
		return line + "\n" + status + "\n"
	}
	return line + "\n"
}
