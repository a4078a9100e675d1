// Package components provides reusable TUI components for todos.
package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/todos/internal/tui/styles"
)

// TextInput wraps the bubbles textinput with focus and disabled states. It
// backs both the new-todo field and the in-place editor.
type TextInput struct {
	model    textinput.Model
	focused  bool
	disabled bool
	width    int
}

// NewTextInput creates a new TextInput with the given placeholder.
func NewTextInput(placeholder string) *TextInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40

	return &TextInput{model: ti}
}

// Focus focuses the text input.
func (t *TextInput) Focus() tea.Cmd {
	t.focused = true
	return t.model.Focus()
}

// Blur removes focus from the text input.
func (t *TextInput) Blur() {
	t.focused = false
	t.model.Blur()
}

// Focused returns whether the text input is focused.
func (t *TextInput) Focused() bool {
	return t.focused
}

// SetDisabled makes the input ignore typing, e.g. while an add is in flight.
func (t *TextInput) SetDisabled(disabled bool) {
	t.disabled = disabled
}

// Disabled reports whether typing is ignored.
func (t *TextInput) Disabled() bool {
	return t.disabled
}

// SetValue sets the text input value and moves the cursor to the end.
func (t *TextInput) SetValue(value string) {
	t.model.SetValue(value)
	t.model.CursorEnd()
}

// Value returns the current text input value.
func (t *TextInput) Value() string {
	return t.model.Value()
}

// SetPlaceholder sets the placeholder text.
func (t *TextInput) SetPlaceholder(placeholder string) {
	t.model.Placeholder = placeholder
}

// SetWidth sets the width of the text input.
func (t *TextInput) SetWidth(width int) {
	t.width = width
	t.model.Width = width - 4
	if t.model.Width < 10 {
		t.model.Width = 10
	}
}

// Update handles messages for the text input.
func (t *TextInput) Update(msg tea.Msg) (*TextInput, tea.Cmd) {
	if !t.focused || t.disabled {
		return t, nil
	}

	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t *TextInput) View() string {
	switch {
	case t.disabled:
		return styles.InputDisabledStyle.Render(t.model.View())
	case t.focused:
		return styles.InputFocusedStyle.Render(t.model.View())
	default:
		return styles.InputStyle.Render(t.model.View())
	}
}

// Reset clears the text input value.
func (t *TextInput) Reset() {
	t.model.Reset()
}
