package sequential

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m FlowModel, keys ...tea.KeyMsg) FlowModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(FlowModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
	tab       = tea.KeyMsg{Type: tea.KeyTab}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestInitFlow_AcceptDefaults(t *testing.T) {
	m := press(t, *CreateInitFlow("express", 3000, false), enter, enter)

	require.True(t, m.Completed)
	answers, err := ParseInitResults(m.GetResults())
	require.NoError(t, err)
	assert.Equal(t, InitAnswers{Port: 3000, Development: false}, answers)
}

func TestInitFlow_EditPortAndMode(t *testing.T) {
	m := press(t, *CreateInitFlow("flask", 3000, false),
		backspace, backspace, backspace, backspace,
		runes("8"), runes("0"), runes("8"), runes("0"),
		enter,
		tab,
		enter,
	)

	require.True(t, m.Completed)
	answers, err := ParseInitResults(m.GetResults())
	require.NoError(t, err)
	assert.Equal(t, InitAnswers{Port: 8080, Development: true}, answers)
}

func TestInitFlow_RejectsInvalidPort(t *testing.T) {
	m := press(t, *CreateInitFlow("flask", 3000, false),
		backspace, backspace, backspace, backspace,
		runes("0"),
		enter,
	)

	assert.False(t, m.Completed)
	assert.Equal(t, 0, m.CurrentStep)
	assert.Error(t, m.Error)
}

func TestInitFlow_Cancel(t *testing.T) {
	m := press(t, *CreateInitFlow("flask", 3000, true), esc)
	assert.True(t, m.Cancelled)
}

func TestInitFlow_GoBackKeepsValues(t *testing.T) {
	m := press(t, *CreateInitFlow("django", 5000, true), enter)
	require.Equal(t, 1, m.CurrentStep)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.CurrentStep)
	assert.Equal(t, "5000", m.GetResults()["port"])
	assert.Equal(t, "development", m.GetResults()["mode"])
}

func TestParseInitResults_Invalid(t *testing.T) {
	_, err := ParseInitResults(map[string]string{"port": "abc"})
	assert.Error(t, err)
}
