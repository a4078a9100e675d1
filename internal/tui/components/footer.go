package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/todos/internal/todo"
	"github.com/wexinc/todos/internal/tui/styles"
)

// Footer shows the remaining count, the filter links and the clear-completed
// action.
type Footer struct {
	width     int
	remaining int
	filter    todo.Filter
	canClear  bool
}

// NewFooter creates a new Footer component.
func NewFooter() *Footer {
	return &Footer{filter: todo.FilterAll}
}

// SetWidth sets the footer width.
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetState updates what the footer shows. canClear is false when nothing is
// completed or a clear is already running.
func (f *Footer) SetState(remaining int, filter todo.Filter, canClear bool) {
	f.remaining = remaining
	f.filter = filter
	f.canClear = canClear
}

// View renders the footer.
func (f *Footer) View() string {
	count := styles.FooterStyle.Render(todo.ItemsLeft(f.remaining))

	links := make([]string, 0, len(todo.Filters))
	for _, mode := range todo.Filters {
		if mode == f.filter {
			links = append(links, styles.FilterSelectedStyle.Render(mode.String()))
		} else {
			links = append(links, styles.FilterStyle.Render(mode.String()))
		}
	}
	filters := lipgloss.JoinHorizontal(lipgloss.Bottom, links...)

	clearStyle := styles.ClearDisabledStyle
	if f.canClear {
		clearStyle = styles.ClearStyle
	}
	clear := clearStyle.Render("Clear completed")

	if f.width <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Bottom, count, "  ", filters, "  ", clear)
	}

	used := lipgloss.Width(count) + lipgloss.Width(filters) + lipgloss.Width(clear)
	gap := f.width - used
	if gap < 2 {
		gap = 2
	}
	left := gap / 2
	right := gap - left

	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		count,
		strings.Repeat(" ", left),
		filters,
		strings.Repeat(" ", right),
		clear,
	)
}
