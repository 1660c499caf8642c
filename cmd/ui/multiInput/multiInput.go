package multiInput

import (
	"fmt"

	"docksmith/cmd/steps"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	titleStyle            = lipgloss.NewStyle().Background(lipgloss.Color("#01FAC6")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	selectedItemStyle     = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	selectedItemDescStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170"))
	descriptionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
)

// ErrCancelled is returned when the user leaves the menu without choosing.
var ErrCancelled = fmt.Errorf("selection cancelled")

type Selection struct {
	Choice string
}

func (s *Selection) Update(value string) {
	s.Choice = value
}

type model struct {
	cursor  int
	choices []steps.Item
	choice  *Selection
	header  string
	exit    *bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func InitialModel(choices []steps.Item, selection *Selection, header string, exitPtr *bool) model {
	return model{
		choices: choices,
		choice:  selection,
		header:  titleStyle.Render(header),
		exit:    exitPtr,
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.exit != nil {
				*m.exit = true
			}
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter", "y":
			if len(m.choices) == 0 {
				return m, nil
			}
			m.choice.Update(m.choices[m.cursor].Flag)
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	s := m.header + "\n\n"

	for i, choice := range m.choices {
		cursor := " "
		checked := " "
		if m.cursor == i {
			cursor = focusedStyle.Render(">")
			checked = focusedStyle.Render("X")
			choice.Title = selectedItemStyle.Render(choice.Title)
			choice.Desc = selectedItemDescStyle.Render(choice.Desc)
		}

		title := focusedStyle.Render(choice.Title)
		description := descriptionStyle.Render(choice.Desc)

		s += fmt.Sprintf("%s [%s] %s\n%s\n\n", cursor, checked, title, description)
	}

	s += fmt.Sprintf("Press %s to confirm choice, %s to exit.\n\n",
		focusedStyle.Render("enter"), focusedStyle.Render("esc/q"))
	return s
}

// ShowMenu runs the menu and returns the Flag of the chosen item.
func ShowMenu(choices []steps.Item, header string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("nothing to choose from")
	}

	selection := &Selection{}
	exit := false

	m := InitialModel(choices, selection, header, &exit)

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running menu: %w", err)
	}

	final := finalModel.(model)
	if exit && final.choice.Choice == "" {
		return "", ErrCancelled
	}

	return final.choice.Choice, nil
}
