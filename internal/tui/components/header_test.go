package components

import (
	"strings"
	"testing"
)

func TestHeaderView(t *testing.T) {
	h := NewHeader()

	view := h.View("INPUT")
	if !strings.Contains(view, "todos") {
		t.Error("Header should contain the title")
	}
	if !strings.Contains(view, "INPUT") {
		t.Error("Header should contain the input view")
	}
}

func TestHeaderToggleHiddenWhenEmpty(t *testing.T) {
	h := NewHeader()

	h.SetToggle(false, true)
	if strings.Contains(h.View(""), "❯") {
		t.Error("Toggle-all should be hidden")
	}

	h.SetToggle(true, false)
	if !strings.Contains(h.View(""), "❯") {
		t.Error("Toggle-all should be shown")
	}
}

func TestHeaderBusy(t *testing.T) {
	h := NewHeader()

	h.SetBusy(" syncing")
	if !strings.Contains(h.View(""), "syncing") {
		t.Error("Header should show the busy label")
	}

	h.SetBusy("")
	if strings.Contains(h.View(""), "syncing") {
		t.Error("Header should hide the busy label")
	}
}

func TestHeaderSetWidth(t *testing.T) {
	h := NewHeader()
	h.SetWidth(80)

	if h.width != 80 {
		t.Errorf("Width should be 80, got %d", h.width)
	}
	if h.View("") == "" {
		t.Error("View should not be empty")
	}
}
