// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldFormat     = "format"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Ingestion fields.
	FieldLines     = "lines"
	FieldChunkSize = "chunk_size"
	FieldJobs      = "jobs"
	FieldLanguage  = "language"

	// Query fields.
	FieldQuery       = "query"
	FieldLine        = "line"
	FieldColumn      = "column"
	FieldStart       = "start"
	FieldCheckpoints = "checkpoints"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
