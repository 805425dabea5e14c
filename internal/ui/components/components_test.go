package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenu_NavigationSkipsDisabled(t *testing.T) {
	var picked string
	pick := func(s string) func() tea.Cmd {
		return func() tea.Cmd { picked = s; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b", Action: pick("b")},
		{Label: "c", Disabled: true},
		{Label: "d", Action: pick("d")},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)

	m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "b", picked)

	m, _ = m.Update(keyPress('4'))
	assert.Equal(t, 3, m.Selected)
	assert.Equal(t, "d", picked)

	m, _ = m.Update(keyPress('3'))
	assert.Equal(t, 3, m.Selected, "disabled item cannot be jumped to")
	assert.Contains(t, m.View(), "▸ d")
}

func TestMultiChoice(t *testing.T) {
	mc := NewMultiChoice([]int{12, 9, 15, 11})

	mc, done := mc.Update(specialKey(tea.KeyDown))
	assert.False(t, done)
	assert.Equal(t, "9", mc.Value())

	mc, done = mc.Update(keyPress('3'))
	assert.True(t, done)
	assert.Equal(t, "15", mc.Value())

	_, done = mc.Update(keyPress('1'))
	assert.False(t, done, "no changes after submit")

	mc = NewMultiChoice([]int{1, 2})
	_, done = mc.Update(keyPress('4'))
	assert.False(t, done, "out of range digit")
	assert.True(t, strings.Contains(mc.View(), "2)"))

	mc = NewMultiChoice([]int{2, 4, 1, 3})
	mc, done = mc.Update(keyPress('3'))
	assert.True(t, done)
	assert.Equal(t, "1", mc.Value(), "option 3 submits its value")
}

func TestAnswerInput_DigitsOnly(t *testing.T) {
	in := NewAnswerInput("?", 3)
	for _, r := range "1a2-" {
		in, _ = in.Update(keyPress(r))
	}
	assert.Equal(t, "12", in.Value())

	in.Reset()
	assert.Empty(t, in.Value())
}

func TestProgressBar(t *testing.T) {
	bar := NewProgressBar("Time", 0.5, true, 30)
	v := bar.View()
	assert.Contains(t, v, "Time")
	assert.Contains(t, v, "50%")
}
