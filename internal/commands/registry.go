package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	cmds    map[string]Command // primary name -> command
	aliases map[string]string  // alias -> primary name
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		cmds:    make(map[string]Command),
		aliases: make(map[string]string),
	}
}

// Register adds a command to the registry.
// Returns an error if the name or any alias is already taken by another
// command, either as a name or as an alias.
func (r *Registry) Register(c Command) error {
	name := strings.TrimSpace(c.Name())
	if name == "" {
		return errors.New("command name required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range append([]string{name}, c.Aliases()...) {
		if r.taken(n) {
			return fmt.Errorf("command name already registered: %s", n)
		}
	}

	r.cmds[name] = c
	for _, alias := range c.Aliases() {
		r.aliases[alias] = name
	}
	return nil
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.cmds[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if primary, ok := r.aliases[name]; ok {
		name = primary
	}
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns every registered command sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	slices.Sort(names)

	result := make([]Command, len(names))
	for i, name := range names {
		result[i] = r.cmds[name]
	}
	return result
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
// It panics on a name clash, which can only happen at init time.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
