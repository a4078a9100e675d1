// Package api talks to the remote todos REST resource.
//
// Client is the contract the application layer depends on. HTTP is the real
// implementation; Memory keeps todos in process for tests and offline use.
package api

import (
	"context"

	"github.com/wexinc/todos/internal/todo"
)

// Client is the remote todo collaborator.
type Client interface {
	// List returns the configured owner's todos in server order.
	List(ctx context.Context) ([]todo.Task, error)
	// Create stores a new todo and returns it with its server-assigned id.
	Create(ctx context.Context, owner int, title string, completed bool) (todo.Task, error)
	// Update applies a partial change to the todo with the given id.
	Update(ctx context.Context, id int, patch todo.Patch) error
	// Delete removes the todo with the given id.
	Delete(ctx context.Context, id int) error
}

// Op names a Client operation.
type Op string

// Client operations.
const (
	OpList   Op = "list"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)
