package spinner

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type doneMsg struct{ err error }

type model struct {
	spinner  spinner.Model
	quitting bool
	message  string
	task     func() error
	err      error
	done     bool
}

func InitialModel(message string, task func() error) model {
	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6"))
	return model{
		spinner: s,
		message: message,
		task:    task,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m model) run() tea.Msg {
	if m.task == nil {
		return doneMsg{}
	}
	return doneMsg{err: m.task()}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		default:
			return m, nil
		}

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m model) View() string {
	if m.done {
		return ""
	}
	str := fmt.Sprintf("%s %s", m.spinner.View(), m.message)
	if m.quitting {
		return str + "\n"
	}
	return str
}

// Run shows a spinner with message while task runs and returns task's error.
func Run(message string, task func() error) error {
	p := tea.NewProgram(InitialModel(message, task))
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running spinner: %w", err)
	}

	final := finalModel.(model)
	if final.quitting && !final.done {
		return fmt.Errorf("interrupted")
	}
	return final.err
}
