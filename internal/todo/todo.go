// Package todo provides the todo data model and the derived view state
// computed from a list of todos.
package todo

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PlaceholderID is the id carried by an optimistic todo that the server has
// not assigned an id to yet.
const PlaceholderID = 0

var validate = validator.New(validator.WithRequiredStructEnabled())

// Task is a single todo as stored by the remote API.
type Task struct {
	// ID is assigned by the server; PlaceholderID until then.
	ID int `json:"id" validate:"gte=0"`
	// UserID is the owner of the todo.
	UserID int `json:"userId" validate:"gt=0"`
	// Title is the trimmed, non-empty todo text.
	Title string `json:"title" validate:"required"`
	// Completed reports whether the todo is done.
	Completed bool `json:"completed"`
}

// NewTask builds a not-yet-created todo for owner with a trimmed title.
// It fails when the title is blank or the owner is not positive.
func NewTask(owner int, title string) (Task, error) {
	t := Task{
		ID:     PlaceholderID,
		UserID: owner,
		Title:  strings.TrimSpace(title),
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Validate checks the struct tags on t.
func (t Task) Validate() error {
	if err := validate.Struct(t); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fmt.Errorf("invalid todo: %s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid todo: %w", err)
	}
	return nil
}

// IsPlaceholder reports whether t is an optimistic todo awaiting its server id.
func (t Task) IsPlaceholder() bool {
	return t.ID == PlaceholderID
}

// Patch is a partial update. Only non-nil fields are sent.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TitlePatch returns a Patch that sets only the title.
func TitlePatch(title string) Patch {
	return Patch{Title: &title}
}

// CompletedPatch returns a Patch that sets only the completed flag.
func CompletedPatch(completed bool) Patch {
	return Patch{Completed: &completed}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// Apply returns t with the patch applied.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
