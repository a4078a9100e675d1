package app

import "github.com/wexinc/todos/internal/todo"

// Row is a visible todo and whether a call affecting it is in flight.
type Row struct {
	todo.Task
	Loading bool
}

// State is a point-in-time copy of the session for rendering.
type State struct {
	// Tasks is the full known-good list.
	Tasks []todo.Task
	// Rows are the tasks matching Filter, in list order.
	Rows []Row
	// Placeholder is the optimistic todo being created, if any. It is
	// always loading.
	Placeholder *todo.Task
	Filter      todo.Filter
	Notice      Notice

	Remaining      int
	CompletedCount int
	AllCompleted   bool

	Submitting  bool
	Clearing    bool
	TogglingAll bool
	Loading     bool
	Loaded      bool
}

// HasTasks reports whether the list is non-empty. The toggle-all control and
// the footer are only shown when it is.
func (st State) HasTasks() bool {
	return len(st.Tasks) > 0
}

// ItemsLeft is the footer counter label.
func (st State) ItemsLeft() string {
	return todo.ItemsLeft(st.Remaining)
}

// CanClearCompleted reports whether clear-completed has anything to do.
func (st State) CanClearCompleted() bool {
	return st.CompletedCount > 0 && !st.Clearing
}

// Snapshot returns a copy of the current state with derived values filled in.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := todo.Clone(s.tasks)
	visible := todo.Visible(tasks, s.filter)

	rows := make([]Row, len(visible))
	for i, t := range visible {
		rows[i] = Row{Task: t, Loading: s.rowLoadingLocked(t)}
	}

	var placeholder *todo.Task
	if s.placeholder != nil {
		p := *s.placeholder
		placeholder = &p
	}

	return State{
		Tasks:          tasks,
		Rows:           rows,
		Placeholder:    placeholder,
		Filter:         s.filter,
		Notice:         s.notices.Current(),
		Remaining:      todo.Remaining(tasks),
		CompletedCount: todo.CompletedCount(tasks),
		AllCompleted:   todo.AllCompleted(tasks),
		Submitting:     s.submitting,
		Clearing:       s.clearing,
		TogglingAll:    s.toggleAllTarget != nil,
		Loading:        s.loading,
		Loaded:         s.loaded,
	}
}

// rowLoadingLocked reports whether t is affected by a pending call: its own
// update or delete, a clear of completed todos, or a toggle-all flipping
// todos in its state.
func (s *Session) rowLoadingLocked(t todo.Task) bool {
	if s.updating[t.ID] > 0 {
		return true
	}
	if s.clearing && t.Completed {
		return true
	}
	if s.toggleAllTarget != nil && *s.toggleAllTarget == t.Completed {
		return true
	}
	return false
}
