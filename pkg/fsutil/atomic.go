// Package fsutil writes output files so that readers never observe a
// partially written result.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for created files.
const DefaultFileMode os.FileMode = 0o644

// ErrClosed is returned when writing to a committed or aborted file.
var ErrClosed = errors.New("atomic file closed")

// AtomicFile stages writes in a temp file beside the target. Commit
// replaces the target by rename; Abort discards the temp file and leaves
// the target untouched.
type AtomicFile struct {
	path   string
	mode   os.FileMode
	tmp    *os.File
	closed bool
}

// CreateAtomic starts an atomic write of path. If mode is 0,
// DefaultFileMode is used.
func CreateAtomic(path string, mode os.FileMode) (*AtomicFile, error) {
	if mode == 0 {
		mode = DefaultFileMode
	}

	// Same directory, so the rename never crosses filesystems.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &AtomicFile{path: path, mode: mode, tmp: tmp}, nil
}

// Path returns the target path.
func (f *AtomicFile) Path() string {
	return f.path
}

// Write implements io.Writer.
func (f *AtomicFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	n, err := f.tmp.Write(p)
	if err != nil {
		return n, fmt.Errorf("write temp file: %w", err)
	}
	return n, nil
}

// Commit syncs the staged content and renames it over the target. On
// failure the temp file is removed.
func (f *AtomicFile) Commit() error {
	if f.closed {
		return ErrClosed
	}
	f.closed = true

	tmpPath := f.tmp.Name()
	if err := f.finish(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (f *AtomicFile) finish() error {
	if err := f.tmp.Sync(); err != nil {
		_ = f.tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(f.tmp.Name(), f.mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	return nil
}

// Abort discards the staged content. It is a no-op after Commit.
func (f *AtomicFile) Abort() {
	if f.closed {
		return
	}
	f.closed = true
	_ = f.tmp.Close()
	_ = os.Remove(f.tmp.Name())
}
