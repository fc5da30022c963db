package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/srcexcerpt/pkg/langdetect"
)

// Discover expands opts.Paths into the files to ingest, as sorted absolute
// paths without duplicates. Directory walks skip hidden entries and apply
// every filter in opts. Files named explicitly are only checked against
// ExcludeGlobs.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	filter, err := newFileFilter(opts)
	if err != nil {
		return nil, err
	}

	found := make(map[string]struct{})
	walk := &walker{
		ctx:     ctx,
		workDir: workDir,
		filter:  filter,
		follow:  opts.FollowSymlinks,
		found:   found,
		visited: make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		target := input
		if !filepath.IsAbs(target) {
			target = filepath.Join(workDir, target)
		}
		target = filepath.Clean(target)

		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if !filter.excluded(relativeTo(workDir, target)) {
				found[target] = struct{}{}
			}
			continue
		}

		if err := walk.walk(target); err != nil {
			return nil, err
		}
	}

	return slices.Sorted(maps.Keys(found)), nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// relativeTo returns path relative to workDir in slash form, for matching.
func relativeTo(workDir, target string) string {
	rel, err := filepath.Rel(workDir, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

// walker collects matching files under one or more roots.
type walker struct {
	ctx     context.Context
	workDir string
	filter  *fileFilter
	follow  bool
	found   map[string]struct{}

	// visited holds resolved symlink targets already walked.
	visited map[string]struct{}
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(current string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if current != root && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel := relativeTo(w.workDir, current)
		switch {
		case entry.IsDir():
			if current != root && w.filter.excludedDir(rel) {
				return filepath.SkipDir
			}
		case entry.Type()&fs.ModeSymlink != 0:
			return w.symlink(current, rel)
		case w.filter.accepts(current, rel):
			w.found[current] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}

// symlink handles a link met during a walk. File links are filtered like
// regular files; directory links are walked through their target only when
// following is enabled, each target once.
func (w *walker) symlink(link, rel string) error {
	target, err := filepath.EvalSymlinks(link)
	if err != nil {
		return nil //nolint:nilerr // Broken links are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}

	if !info.IsDir() {
		if w.filter.accepts(link, rel) {
			w.found[link] = struct{}{}
		}
		return nil
	}

	if !w.follow || w.filter.excludedDir(rel) {
		return nil
	}
	if _, ok := w.visited[target]; ok {
		return nil
	}
	w.visited[target] = struct{}{}
	return w.walk(target)
}

// fileFilter decides which walked files are ingested.
type fileFilter struct {
	extensions map[string]struct{}
	languages  map[string]struct{}
	include    []glob.Glob
	exclude    []glob.Glob
}

func newFileFilter(opts Options) (*fileFilter, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	return &fileFilter{
		extensions: lowerSet(opts.Extensions),
		languages:  lowerSet(opts.Languages),
		include:    include,
		exclude:    exclude,
	}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		globs = append(globs, compiled)
	}
	return globs, nil
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[strings.ToLower(value)] = struct{}{}
	}
	return set
}

// matchAny matches rel, or its base name, against globs.
func matchAny(globs []glob.Glob, rel string) bool {
	base := path.Base(rel)
	for _, pattern := range globs {
		if pattern.Match(rel) || pattern.Match(base) {
			return true
		}
	}
	return false
}

func (f *fileFilter) excluded(rel string) bool {
	return matchAny(f.exclude, rel)
}

// excludedDir also tries rel with a trailing slash so "vendor/**" prunes
// the vendor directory itself.
func (f *fileFilter) excludedDir(rel string) bool {
	return f.excluded(rel) || matchAny(f.exclude, rel+"/")
}

// accepts applies the walk filters to a file. The language label is taken
// from the path alone, so discovery never reads file content.
func (f *fileFilter) accepts(file, rel string) bool {
	if len(f.extensions) > 0 {
		if _, ok := f.extensions[strings.ToLower(filepath.Ext(file))]; !ok {
			return false
		}
	}
	if f.excluded(rel) {
		return false
	}
	if len(f.include) > 0 && !matchAny(f.include, rel) {
		return false
	}
	if len(f.languages) > 0 {
		if _, ok := f.languages[langdetect.Detect(file, nil)]; !ok {
			return false
		}
	}
	return true
}
