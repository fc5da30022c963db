package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcexcerpt/internal/logging"
	"github.com/yaklabco/srcexcerpt/internal/ui/pretty"
	"github.com/yaklabco/srcexcerpt/pkg/config"
	"github.com/yaklabco/srcexcerpt/pkg/runner"
)

type linesFlags struct {
	commonFlags

	show       bool
	jobs       int
	extensions []string
	languages  []string
	exclude    []string
	follow     bool
}

func newLinesCommand() *cobra.Command {
	flags := &linesFlags{}

	cmd := &cobra.Command{
		Use:   "lines [paths...]",
		Short: "Report line counts and languages of files",
		Long:  linesLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLines(cmd, args, flags)
		},
	}

	addCommonFlags(cmd, &flags.commonFlags)
	cmd.Flags().BoolVar(&flags.show, "show", false, "print every line with its number")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "only walk files with these extensions (e.g. .go,.md)")
	cmd.Flags().StringSliceVar(&flags.languages, "lang", nil, "only walk files detected as these languages (e.g. go,python)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "traverse directory symlinks")

	return cmd
}

const linesLongDescription = `Ingest files concurrently and report each document's logical line
count and detected language.

By default, walks the current directory, skipping hidden files. Lines are
split on LF, CR, and CRLF; a final terminator does not start a new line.

Examples:
  srcexcerpt lines                   # Every file under the current directory
  srcexcerpt lines --ext .go,.md src # Only Go and Markdown files
  srcexcerpt lines --lang python     # Only files detected as Python
  srcexcerpt lines --show main.go    # Print numbered lines`

func runLines(cmd *cobra.Command, args []string, flags *linesFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{}
	flags.apply(cmd, cliCfg)
	if cmd.Flags().Changed("jobs") {
		cliCfg.Jobs = flags.jobs
	}

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	opts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     normalizeExtensions(flags.extensions),
		Languages:      normalizeLanguages(flags.languages),
		ExcludeGlobs:   flags.exclude,
		FollowSymlinks: flags.follow,
		Jobs:           cfg.Jobs,
		ChunkSize:      cfg.ChunkSize,
		ExpectedLength: cfg.ExpectedLength,
		Markdown:       cfg.MarkdownEnabled(),
	}

	logger.Debug("starting lines run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("lines run failed: %w", err)
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out))

	if err := writeLinesReport(out, cmd.ErrOrStderr(), styles, workDir, result, flags.show); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if result.HasFailures() {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	return nil
}

func writeLinesReport(out, errOut io.Writer, styles *pretty.Styles, workDir string, result *runner.Result, show bool) error {
	for _, outcome := range result.Files {
		display := displayPath(workDir, outcome.Path)

		if outcome.Error != nil {
			if _, err := io.WriteString(errOut, styles.FormatError(display, outcome.Error)); err != nil {
				return err
			}
			continue
		}

		doc := outcome.Document
		if _, err := io.WriteString(out, styles.FormatFileHeader(display, outcome.Language, doc.LineCount())); err != nil {
			return err
		}
		if !show {
			continue
		}

		width := pretty.DigitWidth(doc.LineCount())
		for idx := range doc.LineCount() {
			line := styles.FormatNumberedLine(idx+1, width, doc.Line(idx).String())
			if _, err := io.WriteString(out, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// displayPath shortens path relative to workDir when it lies inside it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// normalizeExtensions lowercases extensions and adds a missing leading dot.
func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		normalized = append(normalized, strings.ToLower(ext))
	}
	return normalized
}

// normalizeLanguages lowercases language labels and drops empty ones.
func normalizeLanguages(languages []string) []string {
	normalized := make([]string, 0, len(languages))
	for _, lang := range languages {
		if lang = strings.TrimSpace(lang); lang != "" {
			normalized = append(normalized, strings.ToLower(lang))
		}
	}
	return normalized
}
