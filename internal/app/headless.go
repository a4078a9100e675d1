package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/wexinc/todos/internal/todo"
)

// OutputFormat defines the output format for headless commands.
type OutputFormat string

const (
	// OutputFormatText is the default human-readable text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON produces structured JSON output.
	OutputFormatJSON OutputFormat = "json"
)

// ParseOutputFormat converts a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputFormatText:
		return OutputFormatText, nil
	case OutputFormatJSON:
		return OutputFormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// HeadlessConfig configures headless output.
type HeadlessConfig struct {
	// OutputFormat is the format for output (text or json).
	OutputFormat OutputFormat
	// Writer receives the command result.
	Writer io.Writer
	// ErrorWriter receives event progress lines in verbose mode.
	ErrorWriter io.Writer
	// Verbose prints every session event as it happens.
	Verbose bool
}

// Headless renders session state and events for the one-shot commands.
type Headless struct {
	config    *HeadlessConfig
	startTime time.Time

	mu         sync.Mutex
	jsonEvents []JSONEvent
}

// NewHeadless creates a headless renderer.
func NewHeadless(config *HeadlessConfig) *Headless {
	if config == nil {
		config = &HeadlessConfig{OutputFormat: OutputFormatText}
	}
	return &Headless{
		config:     config,
		startTime:  time.Now(),
		jsonEvents: []JSONEvent{},
	}
}

// JSONEvent is a single event in JSON output.
type JSONEvent struct {
	Timestamp string    `json:"timestamp"`
	Type      EventType `json:"type"`
	TodoID    int       `json:"todo_id,omitempty"`
	Notice    string    `json:"notice,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// JSONOutput is the complete JSON document written by a headless command.
type JSONOutput struct {
	Filter    todo.Filter `json:"filter"`
	Total     int         `json:"total"`
	Remaining int         `json:"remaining"`
	Completed int         `json:"completed"`
	Todos     []todo.Task `json:"todos"`
	Result    *todo.Task  `json:"result,omitempty"`
	Notice    string      `json:"notice,omitempty"`
	Events    []JSONEvent `json:"events,omitempty"`
}

// HandleEvent records or prints a session event.
// It is meant to be passed to Session.Subscribe and may be called from the
// notice timer goroutine.
func (h *Headless) HandleEvent(event Event) {
	if !h.config.Verbose {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.config.OutputFormat == OutputFormatJSON {
		h.handleEventJSON(event)
		return
	}
	h.handleEventText(event)
}

func (h *Headless) handleEventText(event Event) {
	w := h.config.ErrorWriter
	if w == nil {
		return
	}

	prefix := fmt.Sprintf("[%s]", formatElapsed(time.Since(h.startTime)))
	var message string
	switch event.Type {
	case EventLoaded:
		message = "loaded todos"
	case EventAdded:
		message = fmt.Sprintf("added #%d", event.TodoID)
	case EventUpdated:
		message = fmt.Sprintf("updated #%d", event.TodoID)
	case EventDeleted:
		message = fmt.Sprintf("deleted #%d", event.TodoID)
	case EventLoadFailed, EventAddFailed, EventUpdateFailed, EventDeleteFailed:
		message = fmt.Sprintf("%s: %s", event.Notice, errorStr(event.Error))
	case EventNoticeChanged:
		return
	default:
		message = string(event.Type)
		if event.TodoID != 0 {
			message += fmt.Sprintf(" #%d", event.TodoID)
		}
	}
	fmt.Fprintf(w, "%s %s\n", prefix, message)
}

func (h *Headless) handleEventJSON(event Event) {
	jsonEvent := JSONEvent{
		Timestamp: event.Timestamp.Format(time.RFC3339),
		Type:      event.Type,
		TodoID:    event.TodoID,
		Notice:    event.Notice.String(),
	}
	if event.Error != nil {
		jsonEvent.Error = event.Error.Error()
	}
	h.jsonEvents = append(h.jsonEvents, jsonEvent)
}

func (h *Headless) events() []JSONEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]JSONEvent{}, h.jsonEvents...)
}

// WriteState writes the visible list with its footer. result, when non-nil,
// is the todo the command acted on.
func (h *Headless) WriteState(st State, result *todo.Task) error {
	w := h.config.Writer
	if w == nil {
		return nil
	}

	if h.config.OutputFormat == OutputFormatJSON {
		visible := make([]todo.Task, len(st.Rows))
		for i, r := range st.Rows {
			visible[i] = r.Task
		}
		out := JSONOutput{
			Filter:    st.Filter,
			Total:     len(st.Tasks),
			Remaining: st.Remaining,
			Completed: st.CompletedCount,
			Todos:     visible,
			Result:    result,
			Notice:    st.Notice.String(),
			Events:    h.events(),
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	if result != nil {
		fmt.Fprintf(w, "%s #%d %s\n", checkbox(result.Completed), result.ID, result.Title)
		return nil
	}

	if !st.HasTasks() {
		fmt.Fprintln(w, "No todos yet. Add one with: todos add <title>")
		return nil
	}
	for _, r := range st.Rows {
		fmt.Fprintf(w, "%s %4d  %s\n", checkbox(r.Completed), r.ID, r.Title)
	}
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%s · %s", st.ItemsLeft(), st.Filter)
	if st.CompletedCount > 0 {
		fmt.Fprintf(w, " · %d completed", st.CompletedCount)
	}
	fmt.Fprintln(w)
	return nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func errorStr(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// formatElapsed formats duration as MM:SS.mmm.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Millisecond)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d.%03d", m, s, ms)
}
