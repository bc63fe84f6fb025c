// Package cli parses common flags, builds the command environment and dispatches.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

// StoreFactory creates an empty task store for cfg.
type StoreFactory func(cfg *config.Config, logger *slog.Logger) (service.Store, error)

// RemoteFactory creates a Remote from config.
// Used to inject the backend during dispatch.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Remote, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	stores   StoreFactory
	remotes  RemoteFactory
}

// NewDispatcher creates a new dispatcher with the given registry and factories.
func NewDispatcher(registry *commands.Registry, stores StoreFactory, remotes RemoteFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		stores:   stores,
		remotes:  remotes,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, in, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], in, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, in, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var tasksFile string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&tasksFile, "file", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return reportFlagError(errOut, err)
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if tasksFile != "" {
		abs, err := filepath.Abs(tasksFile)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid --file: %s\n", err)
			return exitcode.UserError
		}
		cfg.TasksFile = abs
	}

	logger := newLogger(errOut, debug)
	logger.Debug("dispatch", "command", cmd.Name(), "config", cfg.Dir, "tasks", cfg.TasksPath())

	env := &commands.Env{
		Config: cfg,
		In:     in,
		Logger: logger,
		Styled: cfg.Color && isTerminal(out),
		Now:    time.Now,
	}

	if cmd.NeedsStore() {
		if code := d.loadStore(ctx, env, errOut); code != exitcode.Success {
			return code
		}
	}

	if cmd.NeedsAuth() {
		if d.remotes != nil {
			// Custom factory provided (e.g., tests with FakeRemote) - skip file checks,
			// let the factory handle auth
			remote, err := d.remotes(ctx, cfg)
			if err != nil {
				if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "auth") {
					fmt.Fprintf(errOut, "error: auth error: %s\n", err)
					return exitcode.AuthError
				}
				fmt.Fprintf(errOut, "error: backend error: %s\n", err)
				return exitcode.BackendError
			}
			env.Remote = remote
		} else {
			// No factory - check for required auth files and report user-friendly errors
			if !cfg.HasOAuthClient() {
				fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
				return exitcode.AuthError
			}
			if !cfg.HasToken() {
				fmt.Fprintf(errOut, "error: not logged in (run: todo login)\n")
				return exitcode.AuthError
			}
		}
	}

	return cmd.Run(ctx, env, positionalArgs, out, errOut)
}

// loadStore creates the store and loads the tasks file into it.
// A missing file leaves the store empty.
func (d *Dispatcher) loadStore(ctx context.Context, env *commands.Env, errOut io.Writer) int {
	if d.stores == nil {
		fmt.Fprintln(errOut, "error: no task store configured")
		return exitcode.StoreError
	}
	st, err := d.stores(env.Config, env.Logger)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to open tasks: %v\n", err)
		return exitcode.StoreError
	}

	path := env.Config.TasksPath()
	switch err := st.Load(ctx, path); {
	case err == nil:
	case errors.Is(err, service.ErrNotFound):
		env.Logger.Debug("no tasks file yet", "path", path)
	default:
		fmt.Fprintf(errOut, "error: failed to load tasks: %v\n", err)
		return exitcode.StoreError
	}

	env.Store = st
	return exitcode.Success
}

func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	// Check for missing flag value
	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		flagPart := strings.TrimSpace(parts[len(parts)-1])
		flagPart = strings.TrimPrefix(flagPart, "-")
		fmt.Fprintf(errOut, "error: flag needs an argument: -%s\n", flagPart)
		return exitcode.UserError
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}

func newLogger(errOut io.Writer, debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
