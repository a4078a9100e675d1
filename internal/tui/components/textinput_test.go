package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(ti *TextInput, s string) {
	for _, r := range s {
		ti.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewTextInput(t *testing.T) {
	ti := NewTextInput("What needs to be done?")

	if ti.Focused() {
		t.Error("TextInput should not be focused by default")
	}
	if ti.Disabled() {
		t.Error("TextInput should not be disabled by default")
	}
	if ti.Value() != "" {
		t.Errorf("Value should be empty, got %q", ti.Value())
	}
}

func TestTextInputSetValue(t *testing.T) {
	ti := NewTextInput("")
	ti.SetValue("buy milk")

	if ti.Value() != "buy milk" {
		t.Errorf("Expected 'buy milk', got %q", ti.Value())
	}
}

func TestTextInputFocus(t *testing.T) {
	ti := NewTextInput("")

	ti.Focus()
	if !ti.Focused() {
		t.Error("Focus should focus the input")
	}

	ti.Blur()
	if ti.Focused() {
		t.Error("Blur should unfocus the input")
	}
}

func TestTextInputUpdate(t *testing.T) {
	ti := NewTextInput("")

	// Unfocused input ignores typing
	typeRunes(ti, "ab")
	if ti.Value() != "" {
		t.Errorf("Unfocused input should ignore keys, got %q", ti.Value())
	}

	ti.Focus()
	typeRunes(ti, "ab")
	if ti.Value() != "ab" {
		t.Errorf("Expected 'ab', got %q", ti.Value())
	}
}

func TestTextInputDisabledIgnoresKeys(t *testing.T) {
	ti := NewTextInput("")
	ti.Focus()
	ti.SetValue("keep")
	ti.SetDisabled(true)

	_, cmd := ti.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd != nil {
		t.Error("Disabled input should return nil cmd")
	}
	if ti.Value() != "keep" {
		t.Errorf("Disabled input should keep its value, got %q", ti.Value())
	}

	ti.SetDisabled(false)
	typeRunes(ti, "s")
	if ti.Value() != "keeps" {
		t.Errorf("Expected 'keeps', got %q", ti.Value())
	}
}

func TestTextInputPlaceholder(t *testing.T) {
	ti := NewTextInput("What needs to be done?")

	if !strings.Contains(ti.View(), "What needs") {
		t.Error("View should show the placeholder")
	}

	ti.SetPlaceholder("Edit title")
	if !strings.Contains(ti.View(), "Edit title") {
		t.Error("View should show the new placeholder")
	}
}

func TestTextInputSetWidth(t *testing.T) {
	ti := NewTextInput("")

	ti.SetWidth(4)
	if ti.model.Width != 10 {
		t.Errorf("Width should be clamped to 10, got %d", ti.model.Width)
	}

	ti.SetWidth(60)
	if ti.model.Width != 56 {
		t.Errorf("Width should be 56, got %d", ti.model.Width)
	}
}

func TestTextInputReset(t *testing.T) {
	ti := NewTextInput("")
	ti.SetValue("some value")

	ti.Reset()
	if ti.Value() != "" {
		t.Errorf("Value should be empty after Reset, got %q", ti.Value())
	}
}
