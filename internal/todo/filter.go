package todo

import (
	"fmt"
	"strings"
)

// Filter selects which todos are visible.
type Filter string

const (
	// FilterAll shows every todo.
	FilterAll Filter = "all"
	// FilterActive shows todos that are not completed.
	FilterActive Filter = "active"
	// FilterCompleted shows completed todos.
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// IsValid returns true if f is a known filter.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// String returns the display label of the filter.
func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Matches reports whether t is visible under f.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// ParseFilter parses a filter name case-insensitively. An empty string is FilterAll.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FilterAll, nil
	}
	if !f.IsValid() {
		return FilterAll, fmt.Errorf("unknown filter %q (want all, active or completed)", s)
	}
	return f, nil
}

// Visible returns the todos matching f in their original order.
// The input slice is never modified.
func Visible(tasks []Task, f Filter) []Task {
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

// Remaining counts the todos that are not completed.
func Remaining(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CompletedCount counts the completed todos.
func CompletedCount(tasks []Task) int {
	return len(tasks) - Remaining(tasks)
}

// AllCompleted reports whether every todo is completed. It is true for an empty list.
func AllCompleted(tasks []Task) bool {
	return Remaining(tasks) == 0
}

// ItemsLeft renders the remaining-count label.
func ItemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

// Clone returns a copy of tasks that shares no backing array with the input.
func Clone(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// IndexOf returns the position of the todo with id, or -1.
func IndexOf(tasks []Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
