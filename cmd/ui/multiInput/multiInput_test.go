package multiInput

import (
	"testing"

	"docksmith/cmd/steps"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

var items = []steps.Item{
	{Flag: "nextjs", Title: "nextjs", Desc: "JavaScript/TypeScript"},
	{Flag: "flask", Title: "flask", Desc: "Python"},
}

func TestMenu_SelectSecond(t *testing.T) {
	sel := &Selection{}
	exit := false
	var m tea.Model = InitialModel(items, sel, "Pick", &exit)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.NotNil(t, cmd)
	assert.Equal(t, "flask", sel.Choice)
	assert.False(t, exit)
}

func TestMenu_Cancel(t *testing.T) {
	sel := &Selection{}
	exit := false
	var m tea.Model = InitialModel(items, sel, "Pick", &exit)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, exit)
	assert.Empty(t, sel.Choice)
}

func TestMenu_ViewListsChoices(t *testing.T) {
	view := InitialModel(items, &Selection{}, "Pick", nil).View()

	assert.Contains(t, view, "nextjs")
	assert.Contains(t, view, "Python")
}
