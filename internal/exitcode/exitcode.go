// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, ambiguous ref).
	UserError = 1

	// StorageError indicates a config or storage backend error.
	StorageError = 2

	// Interrupted indicates the process was stopped by SIGINT.
	Interrupted = 130
)
