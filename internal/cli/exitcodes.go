package cli

import (
	"errors"
	"io/fs"
)

// Exit codes for srcexcerpt, following sysexits.h.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that select an exit code.
var (
	// ErrUsage marks invalid arguments or flags.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded or validated.
	ErrConfig = errors.New("failed to load configuration")

	// ErrNoInput is returned when stdin is requested but is an interactive
	// terminal.
	ErrNoInput = errors.New("no input: stdin is a terminal")

	// ErrFilesFailed is returned when some files could not be ingested.
	ErrFilesFailed = errors.New("some files could not be read")
)

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrNoInput), errors.Is(err, ErrFilesFailed), errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
