package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/todos/internal/app"
	"github.com/wexinc/todos/internal/logging"
	"github.com/wexinc/todos/internal/todo"
	"github.com/wexinc/todos/internal/tui/components"
	"github.com/wexinc/todos/internal/tui/styles"
)

// Focus indicates which area receives keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusList
)

// Model is the Bubble Tea model for the todos TUI. It renders a session
// snapshot and turns keys into session operations that run as commands.
type Model struct {
	ctx     context.Context
	session *app.Session

	// Components
	header    *components.Header
	input     *components.TextInput
	list      *components.TodoList
	footer    *components.Footer
	banner    *components.NoticeBanner
	shortcuts *components.ShortcutBar
	help      *components.HelpOverlay
	confirm   *components.ConfirmDialog
	spinner   *components.Spinner

	state    app.State
	focus    Focus
	width    int
	height   int
	quitting bool
}

// New creates a new TUI model for session.
func New(ctx context.Context, session *app.Session) *Model {
	m := &Model{
		ctx:       ctx,
		session:   session,
		header:    components.NewHeader(),
		input:     components.NewTextInput("What needs to be done?"),
		list:      components.NewTodoList(),
		footer:    components.NewFooter(),
		banner:    components.NewNoticeBanner(),
		shortcuts: components.NewShortcutBar(components.InputShortcuts...),
		help:      components.NewHelpOverlay(),
		confirm:   components.NewConfirmDialog(),
		spinner:   components.NewSpinner(),
		focus:     FocusInput,
	}
	m.refresh()
	return m
}

// Init focuses the new-todo input and loads the list.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), m.loadCmd(), m.spin())
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Overlays capture input while visible
	if _, isKey := msg.(tea.KeyMsg); isKey {
		if m.confirm.IsVisible() {
			return m, m.confirm.Update(msg)
		}
		if m.help.IsVisible() {
			return m, m.help.Update(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		return m, m.spinner.Update(msg)

	case StateChangedMsg:
		m.refresh()
		return m, m.spin()

	case LoadDoneMsg:
		m.refresh()
		return m, m.spin()

	case AddDoneMsg:
		if msg.Err == nil {
			m.input.Reset()
		}
		m.refresh()
		return m, m.spin()

	case RenameDoneMsg:
		if msg.Err == nil && m.list.EditingID() == msg.TodoID {
			m.list.StopEdit()
			m.shortcuts.SetShortcuts(components.ListShortcuts...)
		}
		m.refresh()
		return m, m.spin()

	case OpDoneMsg:
		m.refresh()
		return m, m.spin()

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case components.ConfirmYesMsg:
		if msg.Action == components.ConfirmActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case components.ConfirmNoMsg, components.HelpClosedMsg:
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.list.IsEditing() {
		return m.handleEditKey(msg)
	}
	if m.focus == FocusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.state.Submitting {
			return m, nil
		}
		return m, m.addCmd(m.input.Value())

	case "tab", "down":
		m.setFocus(FocusList)
		return m, nil

	case "ctrl+a":
		return m, m.toggleAllCmd()

	case "esc":
		if m.banner.IsVisible() {
			m.session.Dismiss()
			m.refresh()
			return m, nil
		}
		m.setFocus(FocusList)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if pending := m.pendingLabel(); pending != "" {
			m.confirm.ShowQuit(pending)
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.help.Toggle()
		return m, nil

	case "j", "down":
		m.list.MoveDown()
	case "k", "up":
		if m.list.Selected() == 0 {
			m.setFocus(FocusInput)
			return m, m.input.Focus()
		}
		m.list.MoveUp()
	case "g", "home":
		m.list.GoToTop()
	case "G", "end":
		m.list.GoToBottom()

	case " ", "x":
		if r := m.list.SelectedRow(); r != nil && !r.Loading {
			return m, m.toggleCmd(r.ID)
		}
	case "enter", "e":
		m.shortcuts.SetShortcuts(components.EditShortcuts...)
		return m, m.list.StartEdit()
	case "d", "delete", "backspace":
		if r := m.list.SelectedRow(); r != nil {
			return m, m.deleteCmd(r.ID)
		}
	case "a":
		return m, m.toggleAllCmd()
	case "c":
		if m.state.CanClearCompleted() {
			return m, m.clearCmd()
		}

	case "f":
		m.setFilter(m.state.Filter.Next())
	case "1":
		m.setFilter(todo.FilterAll)
	case "2":
		m.setFilter(todo.FilterActive)
	case "3":
		m.setFilter(todo.FilterCompleted)

	case "r":
		return m, tea.Batch(m.loadCmd(), m.spin())

	case "n", "i", "tab":
		m.setFocus(FocusInput)
		return m, m.input.Focus()

	case "esc":
		m.session.Dismiss()
		m.refresh()
	}
	return m, nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab":
		return m, m.renameCmd(m.list.EditingID(), m.list.EditValue())
	case "esc":
		m.list.StopEdit()
		m.shortcuts.SetShortcuts(components.ListShortcuts...)
		return m, nil
	}
	return m, m.list.Update(msg)
}

func (m *Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil || msg.Config == nil {
		logging.Warn("ignoring config reload", "error", msg.Err)
		return m, nil
	}
	m.session.SetNoticeDelay(msg.Config.UI.ErrorTimeout)
	if msg.Config.UI.DefaultFilter.IsValid() {
		m.setFilter(msg.Config.UI.DefaultFilter)
	}
	logging.Info("config reloaded")
	return m, nil
}

func (m *Model) setFilter(f todo.Filter) {
	if err := m.session.SetFilter(f); err != nil {
		logging.Warn("failed to set filter", "filter", string(f), "error", err)
	}
	m.refresh()
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.list.SetFocused(false)
		m.shortcuts.SetShortcuts(components.InputShortcuts...)
		return
	}
	m.input.Blur()
	m.list.SetFocused(true)
	m.shortcuts.SetShortcuts(components.ListShortcuts...)
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.input.SetWidth(width - 4)
	m.banner.SetWidth(width)
	m.footer.SetWidth(width)
	m.shortcuts.SetWidth(width)
	m.list.SetSize(width, height-9)
	m.help.SetSize(60, 30)
	m.confirm.SetSize(50)
}

// refresh copies the session snapshot into the components.
func (m *Model) refresh() {
	m.state = m.session.Snapshot()
	st := m.state

	m.header.SetToggle(st.HasTasks(), st.AllCompleted)
	m.input.SetDisabled(st.Submitting)
	m.list.SetRows(st.Rows, st.Placeholder)
	m.footer.SetState(st.Remaining, st.Filter, st.CanClearCompleted())
	m.banner.SetNotice(st.Notice)

	switch {
	case st.Loading && !st.Loaded:
		m.list.SetEmptyText("Loading todos…")
	case st.HasTasks():
		m.list.SetEmptyText("No " + strings.ToLower(st.Filter.String()) + " todos")
	default:
		m.list.SetEmptyText("Nothing to do")
	}

	if id := m.list.EditingID(); id != 0 && todo.IndexOf(st.Tasks, id) < 0 {
		m.list.StopEdit()
		m.shortcuts.SetShortcuts(components.ListShortcuts...)
	}
}

// busy reports whether any call is in flight.
func (m *Model) busy() bool {
	return m.pendingLabel() != ""
}

// pendingLabel names the kind of call in flight, or "" if none is.
func (m *Model) pendingLabel() string {
	st := m.state
	switch {
	case st.Submitting:
		return "An add"
	case st.Clearing:
		return "Clearing completed todos"
	case st.TogglingAll:
		return "Toggling all todos"
	case st.Loading:
		return "Loading"
	}
	for _, r := range st.Rows {
		if r.Loading {
			return "An update"
		}
	}
	return ""
}

// spin starts or stops the spinner to match the pending state.
func (m *Model) spin() tea.Cmd {
	if m.busy() {
		return m.spinner.Start()
	}
	m.spinner.Stop()
	return nil
}

// Session operations as commands.

func (m *Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return LoadDoneMsg{Err: m.session.Load(m.ctx)}
	}
}

func (m *Model) addCmd(title string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.session.Add(m.ctx, title)
		return AddDoneMsg{Title: title, Err: err}
	}
}

func (m *Model) toggleCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return OpDoneMsg{Op: "toggle", TodoID: id, Err: m.session.Toggle(m.ctx, id)}
	}
}

func (m *Model) renameCmd(id int, title string) tea.Cmd {
	return func() tea.Msg {
		return RenameDoneMsg{TodoID: id, Err: m.session.Rename(m.ctx, id, title)}
	}
}

func (m *Model) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return OpDoneMsg{Op: "delete", TodoID: id, Err: m.session.Delete(m.ctx, id)}
	}
}

func (m *Model) toggleAllCmd() tea.Cmd {
	return func() tea.Msg {
		return OpDoneMsg{Op: "toggle_all", Err: m.session.ToggleAll(m.ctx)}
	}
}

func (m *Model) clearCmd() tea.Cmd {
	return func() tea.Msg {
		return OpDoneMsg{Op: "clear_completed", Err: m.session.ClearCompleted(m.ctx)}
	}
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.confirm.IsVisible() {
		return m.place(m.confirm.View())
	}
	if m.help.IsVisible() {
		return m.place(m.help.View())
	}

	frame := m.spinner.Frame()
	m.list.SetFrame(frame)
	if m.state.Loading {
		m.header.SetBusy(" " + frame + " syncing")
	} else {
		m.header.SetBusy("")
	}

	var b strings.Builder
	b.WriteString(m.header.View(m.input.View()))
	b.WriteString("\n")
	if m.banner.IsVisible() {
		b.WriteString(m.banner.View())
		b.WriteString("\n")
	}
	b.WriteString(m.divider())
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")
	if m.state.HasTasks() {
		b.WriteString(m.divider())
		b.WriteString("\n")
		b.WriteString(m.footer.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.shortcuts.View())

	return b.String()
}

func (m *Model) divider() string {
	width := m.width
	if width <= 0 {
		width = 40
	}
	return lipgloss.NewStyle().
		Foreground(styles.BorderColor).
		Render(strings.Repeat("─", width))
}

// place centers an overlay in the window.
func (m *Model) place(overlay string) string {
	if m.width <= 0 || m.height <= 0 {
		return overlay
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}

// State returns the last snapshot the model rendered.
func (m *Model) State() app.State {
	return m.state
}

// Focus returns the focused area.
func (m *Model) Focus() Focus {
	return m.focus
}
