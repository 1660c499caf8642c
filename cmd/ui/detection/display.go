package detection

import (
	"fmt"
	"strings"

	"docksmith/pkg/detector"
	"docksmith/pkg/detector/packagemanagers"
	"docksmith/pkg/runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle        = lipgloss.NewStyle().Background(lipgloss.Color("#01FAC6")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	descriptionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
)

type model struct {
	detection detector.Detection
	runtime   runtime.Candidate
	confirmed bool
	quitting  bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "y", "Y", "enter":
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit
		case "n", "N", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// Summary renders the detection box without the prompt.
func Summary(det detector.Detection, rt runtime.Candidate) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#01FAC6")).
		Padding(1, 2).
		Width(60)

	var content strings.Builder
	row := func(label, value string) {
		content.WriteString(focusedStyle.Render(label + ": "))
		content.WriteString(selectedItemStyle.Render(value))
		content.WriteString("\n")
	}

	row("Framework", det.Framework)
	if det.Language != "" {
		row("Language", det.Language)
	}
	row("Confidence", fmt.Sprintf("%.1f", det.Confidence))
	if det.PackageManager != "" {
		row("Package manager", det.PackageManager)
		if install := packagemanagers.InstallCommand(det.PackageManager); install != "" {
			row("Install", install)
		}
	}
	if rt.Runtime != "" {
		version := rt.Version
		if version == "" {
			version = "unknown version"
		}
		row("Runtime", fmt.Sprintf("%s (%s)", rt.Runtime, version))
	}

	if len(det.Signals) > 0 {
		content.WriteString("\n")
		content.WriteString(focusedStyle.Render("Detection signals:"))
		content.WriteString("\n")
		for _, signal := range det.Signals {
			content.WriteString(successStyle.Render("  ✓ "))
			content.WriteString(descriptionStyle.Render(signal))
			content.WriteString("\n")
		}
	}

	return box.Render(strings.TrimRight(content.String(), "\n"))
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Detection Results"))
	s.WriteString("\n\n")
	s.WriteString(Summary(m.detection, m.runtime))
	s.WriteString("\n\n")

	s.WriteString(focusedStyle.Render("Generate container configuration for this project?"))
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press "))
	s.WriteString(focusedStyle.Render("y"))
	s.WriteString(helpStyle.Render(" to continue, "))
	s.WriteString(focusedStyle.Render("n"))
	s.WriteString(helpStyle.Render(" to skip, or "))
	s.WriteString(focusedStyle.Render("q"))
	s.WriteString(helpStyle.Render(" to quit"))

	return s.String()
}

// ShowDetectionResults displays the detection results and asks whether to
// generate configuration
func ShowDetectionResults(det detector.Detection, rt runtime.Candidate) (bool, error) {
	m := model{
		detection: det,
		runtime:   rt,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("error showing detection results: %w", err)
	}

	final := finalModel.(model)
	return final.confirmed, nil
}
