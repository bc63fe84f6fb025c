// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"time"

	"todo/internal/config"
	"todo/internal/output"
	"todo/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or writes the task list.
	NeedsStore() bool

	// NeedsAuth returns true if the command talks to Google Tasks.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command and returns the exit code.
	// args contains positional arguments after flag parsing.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// Env is what a command runs against.
type Env struct {
	// Config is always provided.
	Config *config.Config

	// Store is loaded from Config.TasksPath(); nil unless NeedsStore.
	Store service.Store

	// Remote is nil unless NeedsAuth.
	Remote service.Remote

	// In feeds interactive commands.
	In io.Reader

	// Logger is never nil.
	Logger *slog.Logger

	// Styled enables terminal colors on out.
	Styled bool

	// Now is the clock used for display.
	Now func() time.Time
}

func (e *Env) formatter() output.Formatter {
	f := output.Formatter{Styled: e.Styled}
	if e.Now != nil {
		f.Now = e.Now()
	}
	return f
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
