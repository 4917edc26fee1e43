// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task reference, empty text).
	UserError = 1

	// ConfigError indicates an unusable configuration (bad env file, unknown backend).
	ConfigError = 2

	// StorageError indicates the store could not be opened or a change was not saved.
	StorageError = 3
)
