package render

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures renderer behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized text output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Caret prints a caret line under exact-point highlights (text format).
	Caret bool

	// Compact disables JSON indentation.
	Compact bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatText,
		Color:  "auto",
	}
}
