package commands

import (
	"context"
	"flag"
	"io"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete tasks" }
func (c *RmCmd) Usage() string     { return "todo rm <id...>" }
func (c *RmCmd) NeedsStore() bool  { return true }
func (c *RmCmd) NeedsAuth() bool   { return false }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run deletes by id; ids of remaining tasks do not shift.
func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runEach(ctx, env, args, env.Store.Delete, out, errOut)
}
