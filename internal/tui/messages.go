// Package tui provides the terminal user interface for todos.
package tui

import (
	"github.com/wexinc/todos/internal/app"
	"github.com/wexinc/todos/internal/config"
)

// Message types for TUI state updates.

// StateChangedMsg is sent for every session event. The model re-reads the
// session snapshot when it arrives.
type StateChangedMsg struct {
	Event app.Event
}

// LoadDoneMsg is sent when a (re)load finishes.
type LoadDoneMsg struct {
	Err error
}

// AddDoneMsg is sent when an add finishes. The input is cleared only when
// Err is nil.
type AddDoneMsg struct {
	Title string
	Err   error
}

// RenameDoneMsg is sent when an edit is committed. The editor stays open
// when Err is non-nil.
type RenameDoneMsg struct {
	TodoID int
	Err    error
}

// OpDoneMsg is sent when a toggle, delete or bulk operation finishes.
type OpDoneMsg struct {
	Op     string
	TodoID int
	Err    error
}

// ConfigReloadedMsg is sent when the config file changes on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
