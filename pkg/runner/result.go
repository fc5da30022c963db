package runner

import "github.com/yaklabco/srcexcerpt/pkg/source"

// FileOutcome is the ingestion result of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Document is the finished document. Nil when Error is set.
	Document *source.Document

	// Language is the langdetect label of the file.
	Language string

	// Bytes is the number of bytes read.
	Bytes int64

	// Checkpoints is the number of positions recorded by Markdown checkpointing.
	Checkpoints int

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully ingested.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// Lines is the total number of logical lines across all documents.
	Lines int

	// Bytes is the total number of bytes read.
	Bytes int64
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to ingest.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.Bytes += outcome.Bytes

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Document != nil {
		r.Stats.Lines += outcome.Document.LineCount()
	}
}
