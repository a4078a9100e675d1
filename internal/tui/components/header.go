package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/todos/internal/tui/styles"
)

// Header renders the title line and the new-todo row with its toggle-all
// control.
type Header struct {
	width        int
	showToggle   bool
	allCompleted bool
	busy         string
}

// NewHeader creates a new Header component.
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the width for the header.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetToggle configures the toggle-all control. It is hidden when show is
// false, which happens while the list is empty.
func (h *Header) SetToggle(show, allCompleted bool) {
	h.showToggle = show
	h.allCompleted = allCompleted
}

// SetBusy shows a short activity label (a spinner frame and text) next to the
// title. An empty string hides it.
func (h *Header) SetBusy(label string) {
	h.busy = label
}

// View renders the header around the given new-todo input view.
func (h *Header) View(input string) string {
	title := styles.TitleStyle.Render("todos")
	if h.busy != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, styles.MutedTextStyle.Render(h.busy))
	}

	toggle := "  "
	if h.showToggle {
		if h.allCompleted {
			toggle = styles.ToggleAllActiveStyle.Render("❯ ")
		} else {
			toggle = styles.ToggleAllStyle.Render("❯ ")
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, " ", toggle, input)

	style := lipgloss.NewStyle()
	if h.width > 0 {
		style = style.Width(h.width)
	}
	return style.Render(title + "\n" + row)
}
