// Package service defines the backend-agnostic types and interfaces for task operations.
package service

import "time"

// DateLayout is the on-disk and command-line form of a due date.
const DateLayout = "2006-01-02"

// Task represents a single to-do item.
type Task struct {
	ID          int       `validate:"gt=0"`
	Description string    `validate:"required,max=255,savable"`
	DueDate     time.Time `validate:"required"`
	Completed   bool
}

// Overdue reports whether a pending task's due date has passed.
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && !t.DueDate.After(now)
}

// Due returns the due date in DateLayout form.
func (t Task) Due() string {
	return t.DueDate.Format(DateLayout)
}

// TaskList represents a remote task list that tasks can be pushed to.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
