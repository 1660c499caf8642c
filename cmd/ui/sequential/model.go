// Package sequential runs a short series of questions, one screen per step,
// with the ability to step back and revise earlier answers.
package sequential

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Background(lipgloss.Color("#01FAC6")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#01FAC6")).Padding(0, 1).Width(50)
)

var errRequired = errors.New("this field is required")

type StepType string

const (
	StepTypeText   StepType = "text"
	StepTypeChoice StepType = "choice"
)

// Step is one question. Choice steps cycle through Options; text steps are
// edited through a text input.
type Step struct {
	ID          string
	Title       string
	Description string
	Type        StepType
	Value       string
	Placeholder string
	Required    bool
	Validate    func(string) error
	Options     []string
}

// FlowModel is the bubbletea model driving a flow.
type FlowModel struct {
	Title       string
	Steps       []Step
	CurrentStep int
	History     []int
	Completed   bool
	Cancelled   bool
	Error       error

	input textinput.Model
}

func NewFlow(title string, steps []Step) *FlowModel {
	input := textinput.New()
	input.Prompt = ""

	m := &FlowModel{
		Title: title,
		Steps: append([]Step(nil), steps...),
		input: input,
	}
	if len(m.Steps) > 0 {
		m.load()
	}
	return m
}

// load points the text input at the current step.
func (m *FlowModel) load() {
	step := m.Steps[m.CurrentStep]
	m.input.Placeholder = step.Placeholder
	m.input.SetValue(step.Value)
	if step.Type == StepTypeText {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m FlowModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FlowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.Steps) == 0 {
		m.Completed = true
		return m, tea.Quit
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.Cancelled = true
		return m, tea.Quit
	case "enter":
		return m.next()
	case "shift+tab":
		return m.back()
	}

	if m.Steps[m.CurrentStep].Type == StepTypeChoice {
		switch key.String() {
		case "left":
			return m.back()
		case "right", "tab", " ":
			return m.cycle()
		}
		return m, nil
	}

	if key.Type == tea.KeyBackspace && m.input.Value() == "" {
		return m.back()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.Steps[m.CurrentStep].Value = m.input.Value()
	m.Error = nil
	return m, cmd
}

func (m FlowModel) next() (FlowModel, tea.Cmd) {
	step := m.Steps[m.CurrentStep]

	if step.Required && strings.TrimSpace(step.Value) == "" {
		m.Error = errRequired
		return m, nil
	}
	if step.Validate != nil {
		if err := step.Validate(step.Value); err != nil {
			m.Error = err
			return m, nil
		}
	}
	m.Error = nil

	if m.CurrentStep == len(m.Steps)-1 {
		m.Completed = true
		return m, tea.Quit
	}

	m.History = append(m.History, m.CurrentStep)
	m.CurrentStep++
	m.load()
	return m, nil
}

func (m FlowModel) back() (FlowModel, tea.Cmd) {
	if len(m.History) == 0 {
		return m, nil
	}

	m.CurrentStep = m.History[len(m.History)-1]
	m.History = m.History[:len(m.History)-1]
	m.Error = nil
	m.load()
	return m, nil
}

func (m FlowModel) cycle() (FlowModel, tea.Cmd) {
	step := &m.Steps[m.CurrentStep]
	if len(step.Options) == 0 {
		return m, nil
	}

	next := 0
	for i, option := range step.Options {
		if option == step.Value {
			next = (i + 1) % len(step.Options)
			break
		}
	}
	step.Value = step.Options[next]
	return m, nil
}

func (m FlowModel) View() string {
	switch {
	case m.Cancelled:
		return "Configuration cancelled.\n"
	case m.Completed:
		return titleStyle.Render("✅ "+m.Title) + "\n\n"
	case len(m.Steps) == 0:
		return ""
	}

	step := m.Steps[m.CurrentStep]

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title) + "\n\n")
	b.WriteString(m.progress() + "\n\n")
	b.WriteString(focusedStyle.Render(step.Title) + "\n")
	if step.Description != "" {
		b.WriteString(step.Description + "\n")
	}
	b.WriteString("\n")

	if step.Type == StepTypeChoice {
		b.WriteString(renderChoices(step))
	} else {
		b.WriteString(inputBoxStyle.Render(m.input.View()))
	}
	b.WriteString("\n\n")

	if m.Error != nil {
		b.WriteString(errorStyle.Render("Error: "+m.Error.Error()) + "\n\n")
	}

	b.WriteString(m.help(step))
	return b.String()
}

func renderChoices(step Step) string {
	parts := make([]string, 0, len(step.Options))
	for _, option := range step.Options {
		if option == step.Value {
			parts = append(parts, focusedStyle.Render("(•) "+option))
		} else {
			parts = append(parts, dimStyle.Render("( ) "+option))
		}
	}
	return strings.Join(parts, "  ")
}

func (m FlowModel) progress() string {
	dots := make([]string, len(m.Steps))
	for i := range m.Steps {
		switch {
		case i < m.CurrentStep:
			dots[i] = completedStyle.Render("●")
		case i == m.CurrentStep:
			dots[i] = focusedStyle.Render("●")
		default:
			dots[i] = dimStyle.Render("○")
		}
	}
	counter := fmt.Sprintf("Step %d of %d", m.CurrentStep+1, len(m.Steps))
	return dimStyle.Render(counter) + "  " + strings.Join(dots, " ")
}

func (m FlowModel) help(step Step) string {
	keys := []string{"Enter: Next"}
	if step.Type == StepTypeChoice {
		keys = append(keys, "Tab/Space: Change")
	}
	if len(m.History) > 0 {
		keys = append(keys, "Shift+Tab: Previous")
	}
	keys = append(keys, "Esc: Cancel")
	return helpStyle.Render(strings.Join(keys, " • "))
}

// GetResults returns every step's current value keyed by step ID.
func (m FlowModel) GetResults() map[string]string {
	results := make(map[string]string, len(m.Steps))
	for _, step := range m.Steps {
		results[step.ID] = step.Value
	}
	return results
}
