package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// AnswerInput is a digits-only answer field.
type AnswerInput struct {
	Model textinput.Model
}

// NewAnswerInput creates a focused answer field of at most maxDigits.
func NewAnswerInput(placeholder string, maxDigits int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = maxDigits
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the cursor blink command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards msg to the field, dropping non-digit characters.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return a, nil
		}
		if key == "space" {
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the field.
func (a AnswerInput) View() string {
	return a.Model.View()
}

// Value returns what was typed.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Reset clears the field.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
}
