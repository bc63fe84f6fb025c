package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"todo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{registry: DefaultRegistry})
}

// HelpCmd implements the help command.
// The usage table is built from the registry it was registered into.
type HelpCmd struct {
	registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	registry := c.registry
	if registry == nil {
		registry = DefaultRegistry
	}

	fmt.Fprintln(out, "Usage:")
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  todo\tList all tasks\n")
	for _, cmd := range registry.All() {
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), synopsis)
	}
	tw.Flush()

	fmt.Fprint(out, commonFlagsText)
	return exitcode.Success
}

const commonFlagsText = `
Common flags:
  --config <dir>   Override config directory
  --file <path>    Override tasks file
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
