package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string  { return "Mark tasks completed" }
func (c *DoneCmd) Usage() string     { return "todo done <id...>" }
func (c *DoneCmd) NeedsStore() bool  { return true }
func (c *DoneCmd) NeedsAuth() bool   { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runEach(ctx, env, args, env.Store.Complete, out, errOut)
}

// UndoCmd implements the undo command.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string  { return "Mark tasks pending again" }
func (c *UndoCmd) Usage() string     { return "todo undo <id...>" }
func (c *UndoCmd) NeedsStore() bool  { return true }
func (c *UndoCmd) NeedsAuth() bool   { return false }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runEach(ctx, env, args, env.Store.Reopen, out, errOut)
}

// runEach applies op to every id in args and saves once.
// Nothing is saved if any id fails, so the file changes all-or-nothing.
func runEach(ctx context.Context, env *Env, args []string, op func(id int) error, out, errOut io.Writer) int {
	ids, err := ParseTaskIDs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if _, ok := env.Store.List(); !ok {
		fmt.Fprintln(errOut, "error: no tasks found")
		return exitcode.UserError
	}

	for _, id := range ids {
		if err := op(id); err != nil {
			return reportStoreError(errOut, err)
		}
	}

	if code := saveTasks(ctx, env, errOut); code != exitcode.Success {
		return code
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
