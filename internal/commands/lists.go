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
	Register(&ListsCmd{})
}

// ListsCmd prints the Google Tasks lists that push can target.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print Google Tasks lists" }
func (c *ListsCmd) Usage() string     { return "todo lists [common flags]" }
func (c *ListsCmd) NeedsStore() bool  { return false }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	lists, err := env.Remote.ListLists(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	// Without remote_list, push targets the default list.
	target := strings.TrimSpace(env.Config.RemoteList)
	f := env.formatter()
	for _, list := range lists {
		isTarget := list.IsDefault && target == ""
		if target != "" {
			isTarget = strings.EqualFold(strings.TrimSpace(list.Title), target)
		}
		f.ListName(out, list, isTarget)
	}

	return exitcode.Success
}
