// Package service defines the backend-agnostic types and interfaces for task operations.
package service

import "context"

// Store is the local task list.
// Commands never touch the save file directly; they go through this interface.
type Store interface {
	// Add creates a pending task and returns its id.
	// dueDate must be in DateLayout form and strictly in the future.
	Add(description, dueDate string) (int, error)

	// List returns all tasks in insertion order.
	// ok is false when the store holds no tasks.
	List() (tasks []Task, ok bool)

	// Get returns the task with the given id.
	Get(id int) (Task, error)

	// Find returns tasks whose description contains query, ignoring case.
	Find(query string) []Task

	// Complete marks a task completed. Completing twice is not an error.
	Complete(id int) error

	// Reopen marks a completed task pending again.
	Reopen(id int) error

	// Delete removes a task. Its id is never reused.
	Delete(id int) error

	// Save writes every task to path, replacing any existing file.
	Save(ctx context.Context, path string) error

	// Load replaces the in-memory tasks with the contents of path.
	Load(ctx context.Context, path string) error
}

// Remote defines the operations needed to export tasks to an external service.
// All Google Tasks API calls go through this interface.
type Remote interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateList creates a new task list and returns it.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// CreateTask creates a copy of task in the specified list.
	CreateTask(ctx context.Context, listID string, task Task) error
}
