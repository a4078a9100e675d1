package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/wexinc/todos/internal/errors"
	"github.com/wexinc/todos/internal/todo"
)

// Memory is an in-process Client. Failures can be injected per operation or
// per todo id, and a hook observes every call before it runs.
type Memory struct {
	mu     sync.Mutex
	owner  int
	tasks  []todo.Task
	nextID int
	failOp map[Op]error
	failID map[Op]map[int]error
	calls  map[Op]int
	hook   func(ctx context.Context, op Op, id int)
}

var _ Client = (*Memory)(nil)

// NewMemory creates a Memory client listing owner's todos, seeded with tasks.
func NewMemory(owner int, tasks ...todo.Task) *Memory {
	m := &Memory{
		owner:  owner,
		nextID: 1,
		failOp: make(map[Op]error),
		failID: make(map[Op]map[int]error),
		calls:  make(map[Op]int),
	}
	for _, t := range tasks {
		m.tasks = append(m.tasks, t)
		if t.ID >= m.nextID {
			m.nextID = t.ID + 1
		}
	}
	return m
}

// DemoTasks is the seed data for offline mode.
func DemoTasks(owner int) []todo.Task {
	return []todo.Task{
		{ID: 1, UserID: owner, Title: "Read the README", Completed: true},
		{ID: 2, UserID: owner, Title: "Try editing a todo", Completed: false},
		{ID: 3, UserID: owner, Title: "Clear completed todos", Completed: false},
	}
}

// Fail makes every call of op return err. A nil err clears the failure.
func (m *Memory) Fail(op Op, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failOp, op)
		return
	}
	m.failOp[op] = err
}

// FailID makes op return err for the todo with the given id.
func (m *Memory) FailID(op Op, id int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failID[op] == nil {
		m.failID[op] = make(map[int]error)
	}
	if err == nil {
		delete(m.failID[op], id)
		return
	}
	m.failID[op][id] = err
}

// SetHook installs fn to run at the start of every call, outside the lock.
// Tests use it to block a call or observe state mid-flight.
func (m *Memory) SetHook(fn func(ctx context.Context, op Op, id int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hook = fn
}

// Calls returns how many times op was invoked.
func (m *Memory) Calls(op Op) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// Tasks returns a copy of everything stored, regardless of owner.
func (m *Memory) Tasks() []todo.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return todo.Clone(m.tasks)
}

// List returns the owner's todos.
func (m *Memory) List(ctx context.Context) ([]todo.Task, error) {
	if err := m.begin(ctx, OpList, 0); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]todo.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.UserID == m.owner {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create stores a new todo with the next id.
func (m *Memory) Create(ctx context.Context, owner int, title string, completed bool) (todo.Task, error) {
	if err := m.begin(ctx, OpCreate, 0); err != nil {
		return todo.Task{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t := todo.Task{ID: m.nextID, UserID: owner, Title: title, Completed: completed}
	if strings.TrimSpace(title) == "" || owner <= 0 {
		return todo.Task{}, errors.RequestFailed(http.MethodPost, "/todos", http.StatusBadRequest)
	}
	m.nextID++
	m.tasks = append(m.tasks, t)
	return t, nil
}

// Update patches a stored todo.
func (m *Memory) Update(ctx context.Context, id int, patch todo.Patch) error {
	if err := m.begin(ctx, OpUpdate, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := todo.IndexOf(m.tasks, id)
	if i < 0 {
		return errors.RequestFailed(http.MethodPatch, fmt.Sprintf("/todos/%d", id), http.StatusNotFound)
	}
	m.tasks[i] = patch.Apply(m.tasks[i])
	return nil
}

// Delete removes a stored todo.
func (m *Memory) Delete(ctx context.Context, id int) error {
	if err := m.begin(ctx, OpDelete, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := todo.IndexOf(m.tasks, id)
	if i < 0 {
		return errors.RequestFailed(http.MethodDelete, fmt.Sprintf("/todos/%d", id), http.StatusNotFound)
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return nil
}

// begin records the call, runs the hook and reports any injected failure.
func (m *Memory) begin(ctx context.Context, op Op, id int) error {
	m.mu.Lock()
	m.calls[op]++
	hook := m.hook
	m.mu.Unlock()

	if hook != nil {
		hook(ctx, op, id)
	}
	if err := ctx.Err(); err != nil {
		return errors.FromTransport("memory", 0, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOp[op]; err != nil {
		return err
	}
	if err := m.failID[op][id]; err != nil {
		return err
	}
	return nil
}
