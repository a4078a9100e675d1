package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewConfirmDialog(t *testing.T) {
	c := NewConfirmDialog()

	if c.IsVisible() {
		t.Error("ConfirmDialog should be hidden by default")
	}
	if c.width != 50 {
		t.Errorf("Default width should be 50, got %d", c.width)
	}
}

func TestConfirmDialogShowQuit(t *testing.T) {
	c := NewConfirmDialog()

	c.ShowQuit("An add")

	if !c.IsVisible() {
		t.Error("ShowQuit should make dialog visible")
	}
	if c.Action() != ConfirmActionQuit {
		t.Errorf("Action should be quit, got %s", c.Action())
	}
	if !c.destructive {
		t.Error("Quit should be destructive")
	}
	if !strings.Contains(c.message, "An add is still in progress") {
		t.Errorf("Message should name the pending work, got %q", c.message)
	}
}

func TestConfirmDialogHide(t *testing.T) {
	c := NewConfirmDialog()
	c.ShowQuit("Loading")

	c.Hide()
	if c.IsVisible() {
		t.Error("Hide should make dialog hidden")
	}
}

func TestConfirmDialogUpdateWhenHidden(t *testing.T) {
	c := NewConfirmDialog()

	cmd := c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd != nil {
		t.Error("Update when hidden should return nil")
	}
}

func TestConfirmDialogKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		yes  bool
	}{
		{"y", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, true},
		{"Y", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Y'}}, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"n", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfirmDialog()
			c.ShowQuit("Loading")

			cmd := c.Update(tt.msg)
			if cmd == nil {
				t.Fatal("Expected a command")
			}
			if c.IsVisible() {
				t.Error("Dialog should hide after answering")
			}

			switch msg := cmd().(type) {
			case ConfirmYesMsg:
				if !tt.yes {
					t.Error("Expected ConfirmNoMsg")
				}
				if msg.Action != ConfirmActionQuit {
					t.Errorf("Action should be quit, got %s", msg.Action)
				}
			case ConfirmNoMsg:
				if tt.yes {
					t.Error("Expected ConfirmYesMsg")
				}
			default:
				t.Errorf("Unexpected message %T", msg)
			}
		})
	}
}

func TestConfirmDialogIgnoresOtherKeys(t *testing.T) {
	c := NewConfirmDialog()
	c.ShowQuit("Loading")

	if cmd := c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}); cmd != nil {
		t.Error("Unbound key should return nil")
	}
	if !c.IsVisible() {
		t.Error("Unbound key should keep the dialog open")
	}
}

func TestConfirmDialogView(t *testing.T) {
	c := NewConfirmDialog()

	if c.View() != "" {
		t.Error("View should be empty when hidden")
	}

	c.ShowQuit("Loading")
	view := c.View()
	if !strings.Contains(view, "Quit todos?") {
		t.Error("View should contain the title")
	}
	if !strings.Contains(view, "[Y]es") || !strings.Contains(view, "[N]o") {
		t.Error("View should contain both answers")
	}
}
