package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct {
	pending bool
	done    bool
}

// SetFilter selects pending-only or completed-only output (for testing).
func (c *ListCmd) SetFilter(pending, done bool) {
	c.pending = pending
	c.done = done
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list [--pending | --done]" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.pending, "pending", false, "")
	fs.BoolVar(&c.done, "done", false, "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.pending && c.done {
		fmt.Fprintln(errOut, "error: cannot use both --pending and --done")
		return exitcode.UserError
	}

	tasks, ok := env.Store.List()
	if !ok {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	if c.pending || c.done {
		tasks = filterCompleted(tasks, c.done)
		if len(tasks) == 0 {
			if !env.Config.Quiet {
				fmt.Fprintln(out, "no matching tasks")
			}
			return exitcode.Success
		}
	}

	env.formatter().Tasks(out, tasks)
	return exitcode.Success
}

func filterCompleted(tasks []service.Task, completed bool) []service.Task {
	var result []service.Task
	for _, t := range tasks {
		if t.Completed == completed {
			result = append(result, t)
		}
	}
	return result
}
