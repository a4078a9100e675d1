package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/todos/internal/app"
	"github.com/wexinc/todos/internal/todo"
	"github.com/wexinc/todos/internal/tui/styles"
)

// TodoList is a scrollable list of todos with in-place editing. The
// placeholder of an optimistic add is drawn after the rows and cannot be
// selected.
type TodoList struct {
	rows        []app.Row
	placeholder *todo.Task
	selected    int
	height      int
	width       int
	scrollStart int
	focused     bool
	frame       string
	emptyText   string

	editingID int
	editor    *TextInput
}

// NewTodoList creates a new TodoList component.
func NewTodoList() *TodoList {
	return &TodoList{
		height:    10,
		frame:     "…",
		emptyText: "Nothing to do",
		editor:    NewTextInput(""),
	}
}

// SetRows replaces the rows, keeping the cursor on the same todo when it is
// still visible.
func (l *TodoList) SetRows(rows []app.Row, placeholder *todo.Task) {
	var selectedID int
	if r := l.SelectedRow(); r != nil {
		selectedID = r.ID
	}

	l.rows = rows
	l.placeholder = placeholder

	for i, r := range rows {
		if r.ID == selectedID {
			l.selected = i
			l.updateScroll()
			return
		}
	}
	l.clampSelection()
}

// SetEmptyText sets what is shown when no rows match.
func (l *TodoList) SetEmptyText(text string) {
	l.emptyText = text
}

// SetFrame sets the spinner frame drawn on loading rows.
func (l *TodoList) SetFrame(frame string) {
	l.frame = frame
}

// SetFocused sets whether the list has keyboard focus.
func (l *TodoList) SetFocused(focused bool) {
	l.focused = focused
}

// SetSize sets both width and height.
func (l *TodoList) SetSize(width, height int) {
	l.width = width
	l.height = height
	if l.height < 1 {
		l.height = 1
	}
	l.editor.SetWidth(width - 8)
	l.updateScroll()
}

// Len returns the number of selectable rows.
func (l *TodoList) Len() int {
	return len(l.rows)
}

// Selected returns the cursor index.
func (l *TodoList) Selected() int {
	return l.selected
}

// SelectedRow returns the row under the cursor, or nil if the list is empty.
func (l *TodoList) SelectedRow() *app.Row {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return nil
	}
	return &l.rows[l.selected]
}

// MoveUp moves selection up.
func (l *TodoList) MoveUp() {
	if l.selected > 0 {
		l.selected--
		l.updateScroll()
	}
}

// MoveDown moves selection down.
func (l *TodoList) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
		l.updateScroll()
	}
}

// GoToTop moves selection to the first row.
func (l *TodoList) GoToTop() {
	l.selected = 0
	l.updateScroll()
}

// GoToBottom moves selection to the last row.
func (l *TodoList) GoToBottom() {
	if len(l.rows) > 0 {
		l.selected = len(l.rows) - 1
		l.updateScroll()
	}
}

// StartEdit opens the editor on the selected row, prefilled with its title.
func (l *TodoList) StartEdit() tea.Cmd {
	r := l.SelectedRow()
	if r == nil {
		return nil
	}
	l.editingID = r.ID
	l.editor.SetValue(r.Title)
	return l.editor.Focus()
}

// StopEdit closes the editor without committing.
func (l *TodoList) StopEdit() {
	l.editingID = 0
	l.editor.Blur()
	l.editor.Reset()
}

// IsEditing reports whether the editor is open.
func (l *TodoList) IsEditing() bool {
	return l.editingID != 0
}

// EditingID returns the id of the todo being edited, or 0.
func (l *TodoList) EditingID() int {
	return l.editingID
}

// EditValue returns the editor's current text.
func (l *TodoList) EditValue() string {
	return l.editor.Value()
}

// SetEditValue replaces the editor's text.
func (l *TodoList) SetEditValue(value string) {
	l.editor.SetValue(value)
}

// Update forwards input to the editor while it is open.
func (l *TodoList) Update(msg tea.Msg) tea.Cmd {
	if !l.IsEditing() {
		return nil
	}
	var cmd tea.Cmd
	l.editor, cmd = l.editor.Update(msg)
	return cmd
}

func (l *TodoList) clampSelection() {
	if l.selected >= len(l.rows) {
		l.selected = len(l.rows) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
	l.updateScroll()
}

// updateScroll ensures the selected row is visible.
func (l *TodoList) updateScroll() {
	if l.selected < l.scrollStart {
		l.scrollStart = l.selected
	}
	if l.selected >= l.scrollStart+l.height {
		l.scrollStart = l.selected - l.height + 1
	}
	if l.scrollStart < 0 {
		l.scrollStart = 0
	}
}

// View renders the list.
func (l *TodoList) View() string {
	if len(l.rows) == 0 && l.placeholder == nil {
		return lipgloss.NewStyle().
			Foreground(styles.Muted).
			Italic(true).
			Padding(0, 2).
			Render(l.emptyText)
	}

	endIndex := l.scrollStart + l.height
	if endIndex > len(l.rows) {
		endIndex = len(l.rows)
	}

	var lines []string
	if l.scrollStart > 0 {
		lines = append(lines, styles.MutedTextStyle.Render("  ↑ more above"))
	}
	for i := l.scrollStart; i < endIndex; i++ {
		lines = append(lines, l.renderRow(l.rows[i], i == l.selected))
	}
	if endIndex < len(l.rows) {
		lines = append(lines, styles.MutedTextStyle.Render("  ↓ more below"))
	}
	if l.placeholder != nil {
		lines = append(lines, l.renderPlaceholder(*l.placeholder))
	}

	return strings.Join(lines, "\n")
}

func (l *TodoList) renderRow(r app.Row, isSelected bool) string {
	cursor := " "
	if isSelected && l.focused {
		cursor = styles.CursorStyle.Render("▶")
	}

	icon := styles.CheckOpen
	if r.Completed {
		icon = styles.CheckDone
	}

	var title string
	if r.ID == l.editingID {
		title = l.editor.View()
	} else if r.Completed {
		title = styles.TitleDoneStyle.Render(r.Title)
	} else {
		title = styles.TitleActiveStyle.Render(r.Title)
	}

	status := ""
	if r.Loading {
		status = " " + styles.MutedTextStyle.Render(l.frame)
	}

	line := cursor + " " + icon + " " + title + status

	lineStyle := lipgloss.NewStyle()
	if isSelected && l.focused && r.ID != l.editingID {
		lineStyle = styles.SelectedRowStyle
	}
	if l.width > 0 {
		lineStyle = lineStyle.Width(l.width)
	}
	return lineStyle.Render(line)
}

func (l *TodoList) renderPlaceholder(t todo.Task) string {
	line := "  " + styles.CheckOpen + " " + styles.TitlePendingStyle.Render(t.Title) +
		" " + styles.MutedTextStyle.Render(l.frame)
	if l.width > 0 {
		return lipgloss.NewStyle().Width(l.width).Render(line)
	}
	return line
}
