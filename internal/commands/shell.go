package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ShellCmd{})
}

// Menu choices.
const (
	choiceAdd = iota + 1
	choiceView
	choiceComplete
	choiceDelete
	choiceExit
	choiceSave
	choiceLoad
)

const menuText = `
Options:
  1. Add a new task
  2. View all tasks
  3. Mark a task as complete
  4. Delete a task
  5. Exit
  6. Save tasks to file
  7. Load tasks from file
`

// ShellCmd implements the interactive menu.
type ShellCmd struct{}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return []string{"menu"} }
func (c *ShellCmd) Synopsis() string  { return "Interactive menu" }
func (c *ShellCmd) Usage() string     { return "todo shell" }
func (c *ShellCmd) NeedsStore() bool  { return true }
func (c *ShellCmd) NeedsAuth() bool   { return false }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	in := env.In
	if in == nil {
		in = os.Stdin
	}
	done := make(chan struct{})
	defer close(done)

	s := &shell{
		env:    env,
		lines:  readLines(in, done),
		out:    out,
		errOut: errOut,
	}
	return s.run(ctx)
}

// readLines feeds the lines of r into a channel that is closed at end of input.
// Sending stops once done is closed. A read already blocked on r is left
// behind; for stdin that only happens while the process is exiting.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

// shell holds the state of one interactive session.
type shell struct {
	env    *Env
	lines  <-chan string
	out    io.Writer
	errOut io.Writer
	dirty  bool // unsaved changes
}

func (s *shell) run(ctx context.Context) int {
	fmt.Fprintln(s.out, "Welcome to the to-do list!")

	for {
		fmt.Fprint(s.out, menuText)
		line, ok := s.prompt(ctx, "Enter your choice: ")
		if !ok {
			return s.stop(ctx)
		}

		choice, err := strconv.Atoi(line)
		if err != nil || choice < choiceAdd || choice > choiceLoad {
			fmt.Fprintln(s.out, "Please choose between 1 - 7")
			continue
		}

		switch choice {
		case choiceAdd:
			s.add(ctx)
		case choiceView:
			s.view()
		case choiceComplete:
			s.update(ctx, "mark as complete", s.env.Store.Complete, "marked complete")
		case choiceDelete:
			s.update(ctx, "delete", s.env.Store.Delete, "deleted")
		case choiceExit:
			s.exit()
			return exitcode.Success
		case choiceSave:
			s.save(ctx)
		case choiceLoad:
			s.load(ctx)
		}
		if ctx.Err() != nil {
			return s.stop(ctx)
		}
	}
}

// prompt prints label and reads one trimmed line.
// ok is false at end of input or once ctx is done.
func (s *shell) prompt(ctx context.Context, label string) (string, bool) {
	fmt.Fprint(s.out, label)
	select {
	case line, ok := <-s.lines:
		if !ok {
			fmt.Fprintln(s.out)
			return "", false
		}
		return strings.TrimSpace(line), true
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return "", false
	}
}

// stop ends the session after a prompt was abandoned.
// End of input exits like choice 5; cancellation is reported.
func (s *shell) stop(ctx context.Context) int {
	if ctx.Err() != nil {
		if s.dirty {
			fmt.Fprintln(s.errOut, "warning: unsaved changes were discarded")
		}
		fmt.Fprintln(s.errOut, "error: cancelled")
		return exitcode.UserError
	}
	s.exit()
	return exitcode.Success
}

// add re-prompts until a task is stored or input ends.
func (s *shell) add(ctx context.Context) {
	for {
		desc, ok := s.prompt(ctx, "Enter task description: ")
		if !ok {
			return
		}
		if desc == "" {
			fmt.Fprintln(s.out, "This field cannot be empty or whitespace.")
			continue
		}

		due, ok := s.prompt(ctx, "Enter due date (yyyy-mm-dd): ")
		if !ok {
			return
		}
		if due == "" {
			fmt.Fprintln(s.out, "This field cannot be empty or whitespace.")
			continue
		}

		id, err := s.env.Store.Add(desc, due)
		if err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
			continue
		}
		s.dirty = true
		fmt.Fprintf(s.out, "Task %d added.\n", id)
		return
	}
}

// view prints all tasks and reports whether there were any.
func (s *shell) view() bool {
	tasks, ok := s.env.Store.List()
	if !ok {
		fmt.Fprintln(s.out, "No tasks yet. Add one first.")
		return false
	}
	s.env.formatter().Tasks(s.out, tasks)
	return true
}

// update shows the list, asks for an id and applies op.
// It returns straight away when there is nothing to pick from.
func (s *shell) update(ctx context.Context, verb string, op func(id int) error, done string) {
	if !s.view() {
		return
	}
	for {
		line, ok := s.prompt(ctx, fmt.Sprintf("Enter the ID of the task to %s: ", verb))
		if !ok {
			return
		}
		id, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid input. Please enter the ID.")
			continue
		}
		if err := op(id); err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
			return
		}
		s.dirty = true
		fmt.Fprintf(s.out, "Task %d %s.\n", id, done)
		return
	}
}

func (s *shell) save(ctx context.Context) {
	path := s.env.Config.TasksPath()
	if err := s.env.Store.Save(ctx, path); err != nil {
		fmt.Fprintf(s.errOut, "error: failed to save tasks: %v\n", err)
		return
	}
	s.dirty = false
	fmt.Fprintf(s.out, "Tasks saved to %s.\n", path)
}

func (s *shell) load(ctx context.Context) {
	path := s.env.Config.TasksPath()
	err := s.env.Store.Load(ctx, path)
	switch {
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintln(s.out, "No task file found.")
	case err != nil:
		fmt.Fprintf(s.errOut, "error: failed to load tasks: %v\n", err)
	default:
		s.dirty = false
		fmt.Fprintf(s.out, "Tasks loaded from %s.\n", path)
	}
}

func (s *shell) exit() {
	if s.dirty {
		fmt.Fprintln(s.errOut, "warning: unsaved changes were discarded")
	}
	fmt.Fprintln(s.out, "Goodbye!")
}
