package app

import "time"

// EventType identifies a session state change.
type EventType string

const (
	EventLoadStarted      EventType = "load_started"
	EventLoaded           EventType = "loaded"
	EventLoadFailed       EventType = "load_failed"
	EventAddStarted       EventType = "add_started"
	EventAdded            EventType = "added"
	EventAddFailed        EventType = "add_failed"
	EventUpdateStarted    EventType = "update_started"
	EventUpdated          EventType = "updated"
	EventUpdateFailed     EventType = "update_failed"
	EventDeleteStarted    EventType = "delete_started"
	EventDeleted          EventType = "deleted"
	EventDeleteFailed     EventType = "delete_failed"
	EventToggleAllStarted EventType = "toggle_all_started"
	EventToggleAllEnded   EventType = "toggle_all_ended"
	EventClearStarted     EventType = "clear_started"
	EventClearEnded       EventType = "clear_ended"
	EventFilterChanged    EventType = "filter_changed"
	EventNoticeChanged    EventType = "notice_changed"
)

// Event describes a state change for observers (TUI, verbose CLI output).
type Event struct {
	Type      EventType
	TodoID    int
	Notice    Notice
	Error     error
	Timestamp time.Time
}

// EventHandler is a callback for session events.
type EventHandler func(event Event)
