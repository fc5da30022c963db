// Package runner ingests many files into source documents concurrently.
package runner

// DefaultChunkSize is the read size used when Options.ChunkSize is unset.
const DefaultChunkSize = 64 * 1024

// Options controls multi-file ingestion.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions restricts directory walks to these extensions (lowercase,
	// with leading dot). Empty means every file.
	Extensions []string

	// Languages restricts directory walks to files whose langdetect label,
	// derived from the path, is listed. Empty means every language.
	Languages []string

	// IncludeGlobs restrict directory walks to matching paths, relative to
	// WorkingDir. "*" stays within a path segment, "**" crosses segments.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// ChunkSize is the number of bytes fed to a document per read.
	ChunkSize int

	// ExpectedLength sizes each document's first arena chunk, in runes.
	// 0 uses the file size.
	ExpectedLength int

	// Markdown checkpoints block starts of Markdown files after ingestion.
	Markdown bool
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// effectiveChunkSize returns the chunk size, defaulting if unset.
func (o Options) effectiveChunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}
