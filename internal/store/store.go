// Package store implements the file-backed task list.
//
// A Store owns an ordered slice of tasks and the next id to hand out.
// It is not safe for concurrent use.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"

	"todo/internal/service"
)

// Store implements service.Store on top of an afero filesystem.
type Store struct {
	fs      afero.Fs
	now     func() time.Time
	logger  *slog.Logger
	dirPerm os.FileMode // 0 leaves missing directories to fail Save

	tasks  []service.Task
	nextID int
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used to reject past due dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithCreateDirs makes Save create the destination's parent directories
// with perm. Loading never creates anything.
func WithCreateDirs(perm os.FileMode) Option {
	return func(s *Store) { s.dirPerm = perm }
}

// New creates an empty Store.
// Use afero.NewOsFs() for real files, or afero.NewMemMapFs() for testing.
func New(fs afero.Fs, opts ...Option) *Store {
	s := &Store{
		fs:     fs,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ service.Store = (*Store)(nil)

// Add implements service.Store.
func (s *Store) Add(description, dueDate string) (int, error) {
	description = strings.TrimSpace(description)
	if err := validate.StructPartial(service.Task{Description: description}, "Description"); err != nil {
		return 0, fmt.Errorf("%w: %q", service.ErrInvalidDescription, description)
	}

	now := s.now()
	due, err := parseDate(dueDate, now.Location())
	if err != nil {
		return 0, err
	}
	if !due.After(now) {
		return 0, fmt.Errorf("%w: %s", service.ErrPastDueDate, dueDate)
	}

	task := service.Task{
		ID:          s.nextID,
		Description: description,
		DueDate:     due,
	}
	s.tasks = append(s.tasks, task)
	s.nextID++
	return task.ID, nil
}

// List implements service.Store.
func (s *Store) List() ([]service.Task, bool) {
	if len(s.tasks) == 0 {
		return nil, false
	}
	return slices.Clone(s.tasks), true
}

// Get implements service.Store.
func (s *Store) Get(id int) (service.Task, error) {
	i, err := s.index(id)
	if err != nil {
		return service.Task{}, err
	}
	return s.tasks[i], nil
}

// Find implements service.Store.
// Matching uses Unicode case folding.
func (s *Store) Find(query string) []service.Task {
	fold := cases.Fold()
	query = fold.String(strings.TrimSpace(query))
	var matches []service.Task
	for _, t := range s.tasks {
		if strings.Contains(fold.String(t.Description), query) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Complete implements service.Store.
func (s *Store) Complete(id int) error {
	return s.setCompleted(id, true)
}

// Reopen implements service.Store.
func (s *Store) Reopen(id int) error {
	return s.setCompleted(id, false)
}

func (s *Store) setCompleted(id int, completed bool) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.tasks[i].Completed = completed
	return nil
}

// Delete implements service.Store.
func (s *Store) Delete(id int) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// NextID returns the id the next Add will assign.
func (s *Store) NextID() int { return s.nextID }

// index matches on the id field, never on position.
func (s *Store) index(id int) (int, error) {
	i := slices.IndexFunc(s.tasks, func(t service.Task) bool { return t.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("task %d: %w", id, service.ErrNotFound)
	}
	return i, nil
}

func parseDate(text string, loc *time.Location) (time.Time, error) {
	due, err := time.ParseInLocation(service.DateLayout, strings.TrimSpace(text), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", service.ErrInvalidDateFormat, text)
	}
	return due, nil
}
