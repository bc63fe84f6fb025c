package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
// It copies local tasks into a Google Tasks list. Tasks are not
// de-duplicated against what the list already holds.
type PushCmd struct {
	listName    string
	pendingOnly bool
}

// SetListName sets the target list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetPendingOnly skips completed tasks (for testing).
func (c *PushCmd) SetPendingOnly(pending bool) {
	c.pendingOnly = pending
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>] [--pending]" }
func (c *PushCmd) NeedsStore() bool  { return true }
func (c *PushCmd) NeedsAuth() bool   { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.pendingOnly, "pending", false, "")
}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks, ok := env.Store.List()
	if c.pendingOnly {
		tasks = filterCompleted(tasks, false)
	}
	if !ok || len(tasks) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no tasks to push")
		}
		return exitcode.Success
	}

	name := strings.TrimSpace(c.listName)
	if name == "" {
		name = env.Config.RemoteList
	}
	list, code := resolvePushTarget(ctx, env, name, errOut)
	if code != exitcode.Success {
		return code
	}

	for i, task := range tasks {
		if err := env.Remote.CreateTask(ctx, list.ID, task); err != nil {
			fmt.Fprintf(errOut, "error: backend error: pushed %d of %d tasks: %v\n", i, len(tasks), err)
			return exitcode.BackendError
		}
		env.logger().Debug("pushed task", "id", task.ID, "list", list.Title)
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "pushed %d tasks to %s\n", len(tasks), list.Title)
	}
	return exitcode.Success
}

// resolvePushTarget returns the named list, creating it if it does not exist.
// An empty name selects the default list.
func resolvePushTarget(ctx context.Context, env *Env, name string, errOut io.Writer) (service.TaskList, int) {
	if name == "" {
		list, err := env.Remote.DefaultList(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return service.TaskList{}, exitcode.BackendError
		}
		return list, exitcode.Success
	}

	list, err := env.Remote.ResolveList(ctx, name)
	switch {
	case err == nil:
		return list, exitcode.Success
	case strings.Contains(err.Error(), "ambiguous"):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
		return service.TaskList{}, exitcode.UserError
	case !strings.Contains(err.Error(), "not found"):
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return service.TaskList{}, exitcode.BackendError
	}

	list, err = env.Remote.CreateList(ctx, name)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return service.TaskList{}, exitcode.BackendError
	}
	env.logger().Debug("created remote list", "title", list.Title, "id", list.ID)
	return list, exitcode.Success
}
