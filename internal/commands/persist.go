package commands

import (
	"context"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
)

// reportStoreError prints err and returns the matching exit code.
func reportStoreError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	if service.IsUserError(err) {
		return exitcode.UserError
	}
	return exitcode.StoreError
}

// saveTasks writes the store back to the configured file.
func saveTasks(ctx context.Context, env *Env, errOut io.Writer) int {
	path := env.Config.TasksPath()
	if err := env.Store.Save(ctx, path); err != nil {
		fmt.Fprintf(errOut, "error: failed to save tasks: %v\n", err)
		return exitcode.StoreError
	}
	env.logger().Debug("tasks saved", "path", path)
	return exitcode.Success
}
