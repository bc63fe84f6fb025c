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
	Register(&FindCmd{})
}

// FindCmd implements the find command.
type FindCmd struct{}

func (c *FindCmd) Name() string      { return "find" }
func (c *FindCmd) Aliases() []string { return []string{"search"} }
func (c *FindCmd) Synopsis() string  { return "Search task descriptions" }
func (c *FindCmd) Usage() string     { return "todo find <text...>" }
func (c *FindCmd) NeedsStore() bool  { return true }
func (c *FindCmd) NeedsAuth() bool   { return false }

func (c *FindCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *FindCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		fmt.Fprintln(errOut, "error: search text required")
		return exitcode.UserError
	}

	matches := env.Store.Find(query)
	if len(matches) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no matching tasks")
		}
		return exitcode.Success
	}

	env.formatter().Tasks(out, matches)
	return exitcode.Success
}
