// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad date, unknown task id).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a Google Tasks API or network error.
	BackendError = 3

	// StoreError indicates the save file could not be read, parsed or written.
	StoreError = 4
)
