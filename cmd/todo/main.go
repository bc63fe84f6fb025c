// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"todo/internal/backend/googletasks"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/store"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Tasks live on the real filesystem; the directory is created on first save
	stores := func(cfg *config.Config, logger *slog.Logger) (service.Store, error) {
		return store.New(afero.NewOsFs(),
			store.WithLogger(logger),
			store.WithCreateDirs(0o700),
		), nil
	}

	remotes := func(ctx context.Context, cfg *config.Config) (service.Remote, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, stores, remotes)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}
