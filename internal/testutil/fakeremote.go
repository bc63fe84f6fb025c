// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"todo/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeRemote is an in-memory implementation of service.Remote for testing.
type FakeRemote struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	pushed map[string][]service.Task // listID -> tasks

	// Error injection for testing
	DefaultListErr error
	ListListsErr   error
	CreateListErr  error
	CreateTaskErr  error

	// FailAfter makes CreateTask fail once this many tasks were accepted (0 = never).
	FailAfter int
}

// NewFakeRemote creates a new FakeRemote with a default list named "My Tasks".
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		lists:  []service.TaskList{{ID: DefaultListID, Title: "My Tasks", IsDefault: true}},
		pushed: make(map[string][]service.Task),
	}
}

// AddList adds a list to the fake remote.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
}

// Pushed returns the tasks created in a list, in creation order.
func (f *FakeRemote) Pushed(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.pushed[listID]...)
}

// DefaultList implements service.Remote.
func (f *FakeRemote) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ListLists implements service.Remote.
func (f *FakeRemote) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.TaskList(nil), f.lists...), nil
}

// ResolveList implements service.Remote.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	lists, err := f.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}

	name = strings.TrimSpace(name)
	var matches []service.TaskList
	for _, l := range lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("list not found: %s", name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("ambiguous list name: %s", name)
	}
}

// CreateList implements service.Remote.
func (f *FakeRemote) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	if f.CreateListErr != nil {
		return service.TaskList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	list := service.TaskList{ID: strings.ToLower(strings.ReplaceAll(name, " ", "-")), Title: name}
	f.lists = append(f.lists, list)
	return list, nil
}

// CreateTask implements service.Remote.
func (f *FakeRemote) CreateTask(ctx context.Context, listID string, task service.Task) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	known := false
	for _, l := range f.lists {
		if l.ID == listID {
			known = true
			break
		}
	}
	if !known {
		return errors.New("not found")
	}

	total := 0
	for _, ts := range f.pushed {
		total += len(ts)
	}
	if f.FailAfter > 0 && total >= f.FailAfter {
		return errors.New("quota exceeded")
	}

	f.pushed[listID] = append(f.pushed[listID], task)
	return nil
}
