package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"

	"todo/internal/store"
)

// TasksPath is where NewStore keeps its save file.
const TasksPath = "/todo/tasks.txt"

// Now is the fixed clock used by NewStore.
var Now = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

// NewStore returns a store on an in-memory filesystem with a fixed clock.
// If content is non-empty it is written to TasksPath and loaded.
func NewStore(t *testing.T, content string) (*store.Store, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	s := store.New(fs, store.WithClock(func() time.Time { return Now }))
	if content == "" {
		return s, fs
	}
	if err := afero.WriteFile(fs, TasksPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write tasks file: %v", err)
	}
	if err := s.Load(context.Background(), TasksPath); err != nil {
		t.Fatalf("failed to load tasks file: %v", err)
	}
	return s, fs
}

// ReadTasks returns the save file contents, or "" if it does not exist.
func ReadTasks(t *testing.T, fs afero.Fs) string {
	t.Helper()

	data, err := afero.ReadFile(fs, TasksPath)
	if err != nil {
		return ""
	}
	return string(data)
}
