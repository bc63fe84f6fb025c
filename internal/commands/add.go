package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due string
}

// SetDue sets the due date (for testing).
func (c *AddCmd) SetDue(due string) {
	c.due = due
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todo add --due <YYYY-MM-DD> <description...>" }
func (c *AddCmd) NeedsStore() bool  { return true }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.due, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}
	if strings.TrimSpace(c.due) == "" {
		fmt.Fprintln(errOut, "error: due date required (--due YYYY-MM-DD)")
		return exitcode.UserError
	}

	id, err := env.Store.Add(description, c.due)
	if err != nil {
		return reportStoreError(errOut, err)
	}

	if code := saveTasks(ctx, env, errOut); code != exitcode.Success {
		return code
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "added %d\n", id)
	}
	return exitcode.Success
}
