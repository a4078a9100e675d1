// Package app implements the todo application behavior shared by the TUI and
// the headless commands: optimistic adds, per-row updates, bulk toggle and
// clear, filtering and auto-dismissing notices.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wexinc/todos/internal/api"
	"github.com/wexinc/todos/internal/errors"
	"github.com/wexinc/todos/internal/logging"
	"github.com/wexinc/todos/internal/todo"
)

// DefaultNoticeDelay is how long a notice stays up when Options leaves it unset.
const DefaultNoticeDelay = 3 * time.Second

// DefaultMaxConcurrency bounds bulk operations when Options leaves it unset.
const DefaultMaxConcurrency = 8

var (
	// ErrEmptyTitle is returned by Add for a blank title.
	ErrEmptyTitle = errors.New(errors.ErrValidation, "title should not be empty")
	// ErrBusy is returned by Add while another add is in flight.
	ErrBusy = errors.New(errors.ErrValidation, "a todo is already being added")
	// ErrPending is returned by Toggle for a todo whose row is still loading.
	ErrPending = errors.New(errors.ErrValidation, "todo has a change in flight")
)

// Options configures a Session.
type Options struct {
	// Client is the remote todo API.
	Client api.Client
	// Owner is the user id new todos are created for.
	Owner int
	// Filter is the initial filter mode.
	Filter todo.Filter
	// NoticeDelay is how long a notice stays before it is dismissed.
	NoticeDelay time.Duration
	// MaxConcurrency bounds the calls a bulk operation runs at once.
	MaxConcurrency int
	// Logger receives operation logs. Defaults to the global logger.
	Logger *logging.Logger
	// AfterFunc schedules notice expiry; tests substitute a manual clock.
	AfterFunc AfterFunc
}

// Session is the application state for one owner's todo list. It is safe for
// concurrent use. Results of remote calls are applied to the current state by
// id, so overlapping operations do not overwrite each other.
type Session struct {
	client         api.Client
	owner          int
	maxConcurrency int
	logger         *logging.Logger
	notices        *Notifier

	mu              sync.Mutex
	tasks           []todo.Task
	placeholder     *todo.Task
	filter          todo.Filter
	updating        map[int]int
	toggleAllTarget *bool
	clearing        bool
	submitting      bool
	loading         bool
	loaded          bool

	handlersMu  sync.RWMutex
	handlers    map[int]EventHandler
	nextHandler int
}

// NewSession creates a session. Nothing is fetched until Load is called.
func NewSession(opts Options) *Session {
	filter := opts.Filter
	if !filter.IsValid() {
		filter = todo.FilterAll
	}
	delay := opts.NoticeDelay
	if delay <= 0 {
		delay = DefaultNoticeDelay
	}
	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Global()
	}

	s := &Session{
		client:         opts.Client,
		owner:          opts.Owner,
		maxConcurrency: maxConcurrency,
		logger:         logger.With("component", "app"),
		filter:         filter,
		updating:       make(map[int]int),
		handlers:       make(map[int]EventHandler),
	}
	s.notices = NewNotifier(delay, opts.AfterFunc, func(n Notice) {
		s.emit(Event{Type: EventNoticeChanged, Notice: n})
	})
	return s
}

// Subscribe registers handler for every state change and returns a function
// that removes it.
func (s *Session) Subscribe(handler EventHandler) func() {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()

	id := s.nextHandler
	s.nextHandler++
	s.handlers[id] = handler

	return func() {
		s.handlersMu.Lock()
		defer s.handlersMu.Unlock()
		delete(s.handlers, id)
	}
}

// emit sends an event to all subscribers. It must not be called with s.mu held.
func (s *Session) emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	s.handlersMu.RLock()
	handlers := make([]EventHandler, 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.handlersMu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// Close stops the notice timer.
func (s *Session) Close() {
	s.notices.Stop()
}

// Notice returns the notice being shown.
func (s *Session) Notice() Notice {
	return s.notices.Current()
}

// Dismiss hides the current notice.
func (s *Session) Dismiss() {
	s.notices.Dismiss()
}

// SetNoticeDelay changes how long future notices stay up.
func (s *Session) SetNoticeDelay(d time.Duration) {
	if d <= 0 {
		d = DefaultNoticeDelay
	}
	s.notices.SetDelay(d)
}

// SetFilter changes the filter mode.
func (s *Session) SetFilter(f todo.Filter) error {
	if !f.IsValid() {
		return errors.New(errors.ErrValidation, fmt.Sprintf("unknown filter %q", string(f)))
	}

	s.mu.Lock()
	changed := s.filter != f
	s.filter = f
	s.mu.Unlock()

	if changed {
		s.emit(Event{Type: EventFilterChanged})
	}
	return nil
}

// fail raises notice, logs err and reports the failure to observers.
func (s *Session) fail(ctx context.Context, eventType EventType, id int, notice Notice, err error) {
	s.logger.WithContext(ctx).Warn("operation failed",
		"event", string(eventType),
		"todo_id", id,
		"error", err,
	)
	s.notices.Raise(notice)
	s.emit(Event{Type: eventType, TodoID: id, Notice: notice, Error: err})
}

// Load fetches the list and replaces the known-good state on success.
func (s *Session) Load(ctx context.Context) error {
	s.notices.Dismiss()

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.emit(Event{Type: EventLoadStarted})

	tasks, err := s.client.List(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.tasks = todo.Clone(tasks)
		s.loaded = true
	}
	s.mu.Unlock()

	if err != nil {
		s.fail(ctx, EventLoadFailed, 0, NoticeUnableToLoad, err)
		return err
	}

	s.logger.Info("todos loaded", "count", len(tasks))
	s.emit(Event{Type: EventLoaded})
	return nil
}

// Add creates a todo optimistically. A placeholder is visible while the
// create call runs and is removed when it returns. A nil error means the
// todo was created and the caller may clear its input.
func (s *Session) Add(ctx context.Context, title string) (todo.Task, error) {
	s.mu.Lock()
	busy := s.submitting
	s.mu.Unlock()
	if busy {
		return todo.Task{}, ErrBusy
	}

	s.notices.Dismiss()

	title = strings.TrimSpace(title)
	if title == "" {
		s.notices.Raise(NoticeEmptyTitle)
		return todo.Task{}, ErrEmptyTitle
	}

	placeholder, err := todo.NewTask(s.owner, title)
	if err != nil {
		verr := errors.Wrap(err, errors.ErrValidation, "invalid todo")
		s.fail(ctx, EventAddFailed, 0, NoticeUnableToAdd, verr)
		return todo.Task{}, verr
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return todo.Task{}, ErrBusy
	}
	s.submitting = true
	s.placeholder = &placeholder
	s.mu.Unlock()
	s.emit(Event{Type: EventAddStarted})

	created, err := s.client.Create(ctx, s.owner, placeholder.Title, false)

	s.mu.Lock()
	s.submitting = false
	s.placeholder = nil
	if err == nil {
		s.tasks = append(s.tasks, created)
	}
	s.mu.Unlock()

	if err != nil {
		s.fail(ctx, EventAddFailed, 0, NoticeUnableToAdd, err)
		return todo.Task{}, err
	}

	s.logger.Info("todo added", "todo_id", created.ID)
	s.emit(Event{Type: EventAdded, TodoID: created.ID})
	return created, nil
}

// Toggle flips the completed flag of the todo with the given id. A todo whose
// row is loading is left alone and ErrPending is returned.
func (s *Session) Toggle(ctx context.Context, id int) error {
	s.notices.Dismiss()

	s.mu.Lock()
	i := todo.IndexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return errors.TodoNotFound(id)
	}
	if s.rowLoadingLocked(s.tasks[i]) {
		s.mu.Unlock()
		return ErrPending
	}
	target := !s.tasks[i].Completed
	s.mu.Unlock()

	return s.update(ctx, id, todo.CompletedPatch(target))
}

// Rename commits an edit. A blank title deletes the todo and an unchanged
// title does nothing.
func (s *Session) Rename(ctx context.Context, id int, title string) error {
	title = strings.TrimSpace(title)

	s.mu.Lock()
	i := todo.IndexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return errors.TodoNotFound(id)
	}
	current := s.tasks[i].Title
	s.mu.Unlock()

	if title == "" {
		return s.Delete(ctx, id)
	}
	if title == current {
		return nil
	}

	s.notices.Dismiss()
	return s.update(ctx, id, todo.TitlePatch(title))
}

func (s *Session) update(ctx context.Context, id int, patch todo.Patch) error {
	ctx = logging.WithTodoID(ctx, id)
	s.markUpdating(id)
	s.emit(Event{Type: EventUpdateStarted, TodoID: id})

	err := s.client.Update(ctx, id, patch)

	s.mu.Lock()
	s.unmarkUpdatingLocked(id)
	if err == nil {
		if i := todo.IndexOf(s.tasks, id); i >= 0 {
			s.tasks[i] = patch.Apply(s.tasks[i])
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.fail(ctx, EventUpdateFailed, id, NoticeUnableToUpdate, err)
		return err
	}

	s.logger.WithContext(ctx).Debug("todo updated")
	s.emit(Event{Type: EventUpdated, TodoID: id})
	return nil
}

// Delete removes the todo with the given id.
func (s *Session) Delete(ctx context.Context, id int) error {
	s.notices.Dismiss()

	s.mu.Lock()
	if todo.IndexOf(s.tasks, id) < 0 {
		s.mu.Unlock()
		return errors.TodoNotFound(id)
	}
	s.mu.Unlock()

	ctx = logging.WithTodoID(ctx, id)
	s.markUpdating(id)
	s.emit(Event{Type: EventDeleteStarted, TodoID: id})

	err := s.client.Delete(ctx, id)

	s.mu.Lock()
	s.unmarkUpdatingLocked(id)
	if err == nil {
		s.removeLocked(id)
	}
	s.mu.Unlock()

	if err != nil {
		s.fail(ctx, EventDeleteFailed, id, NoticeUnableToDelete, err)
		return err
	}

	s.logger.WithContext(ctx).Info("todo deleted")
	s.emit(Event{Type: EventDeleted, TodoID: id})
	return nil
}

// ToggleAll completes every incomplete todo, or un-completes all of them when
// every todo is already completed. If any call fails the list keeps its last
// known-good state and a single notice is raised.
func (s *Session) ToggleAll(ctx context.Context) error {
	s.notices.Dismiss()

	s.mu.Lock()
	if len(s.tasks) == 0 || s.toggleAllTarget != nil {
		s.mu.Unlock()
		return nil
	}
	allCompleted := todo.AllCompleted(s.tasks)
	target := !allCompleted
	var ids []int
	for _, t := range s.tasks {
		if t.Completed != target {
			ids = append(ids, t.ID)
		}
	}
	flipping := allCompleted
	s.toggleAllTarget = &flipping
	s.mu.Unlock()
	s.emit(Event{Type: EventToggleAllStarted})

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			return s.client.Update(logging.WithTodoID(ctx, id), id, todo.CompletedPatch(target))
		})
	}
	err := g.Wait()

	s.mu.Lock()
	s.toggleAllTarget = nil
	if err == nil {
		for _, id := range ids {
			if i := todo.IndexOf(s.tasks, id); i >= 0 {
				s.tasks[i].Completed = target
			}
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.fail(ctx, EventUpdateFailed, 0, NoticeUnableToUpdate, err)
		s.emit(Event{Type: EventToggleAllEnded, Error: err})
		return err
	}

	s.logger.Info("toggled all todos", "count", len(ids), "completed", target)
	s.emit(Event{Type: EventToggleAllEnded})
	return nil
}

// ClearCompleted deletes every completed todo. Todos whose delete succeeded
// are removed; the rest stay and one notice covers all failures.
func (s *Session) ClearCompleted(ctx context.Context) error {
	s.notices.Dismiss()

	s.mu.Lock()
	if s.clearing {
		s.mu.Unlock()
		return nil
	}
	var ids []int
	for _, t := range s.tasks {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.clearing = true
	s.mu.Unlock()
	s.emit(Event{Type: EventClearStarted})

	results := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = s.client.Delete(logging.WithTodoID(ctx, id), id)
			return results[i]
		})
	}
	err := g.Wait()

	var failed int
	s.mu.Lock()
	s.clearing = false
	for i, id := range ids {
		if results[i] == nil {
			s.removeLocked(id)
		} else {
			failed++
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.fail(ctx, EventDeleteFailed, 0, NoticeUnableToDelete, err)
		s.emit(Event{Type: EventClearEnded, Error: err})
		return errors.Wrap(err, errors.ErrNetwork, "failed to clear completed todos").
			WithDetails("failed", strconv.Itoa(failed)).
			WithDetails("total", strconv.Itoa(len(ids)))
	}

	s.logger.Info("cleared completed todos", "count", len(ids))
	s.emit(Event{Type: EventClearEnded})
	return nil
}

func (s *Session) markUpdating(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating[id]++
}

func (s *Session) unmarkUpdatingLocked(id int) {
	if s.updating[id] <= 1 {
		delete(s.updating, id)
		return
	}
	s.updating[id]--
}

func (s *Session) removeLocked(id int) {
	if i := todo.IndexOf(s.tasks, id); i >= 0 {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	}
}
