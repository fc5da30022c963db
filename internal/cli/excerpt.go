package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/srcexcerpt/internal/logging"
	"github.com/yaklabco/srcexcerpt/pkg/config"
	"github.com/yaklabco/srcexcerpt/pkg/excerpt"
	"github.com/yaklabco/srcexcerpt/pkg/fsutil"
	"github.com/yaklabco/srcexcerpt/pkg/locator"
	"github.com/yaklabco/srcexcerpt/pkg/render"
	"github.com/yaklabco/srcexcerpt/pkg/runner"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

type excerptFlags struct {
	commonFlags

	format  string
	caret   bool
	compact bool
	script  string
	output  string

	pointBefore int
	pointAfter  int
	rangeBefore int
	rangeAfter  int
}

func newExcerptCommand() *cobra.Command {
	flags := &excerptFlags{}

	cmd := &cobra.Command{
		Use:   "excerpt FILE [QUERY...]",
		Short: "Print excerpts of a file around positions",
		Long:  excerptLongDescription,
		Args:  minArgs(1, "FILE argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExcerpt(cmd, args, flags)
		},
	}

	addExcerptFlags(cmd, flags)

	return cmd
}

const excerptLongDescription = `Ingest FILE and print one excerpt per query, in order.

FILE may be "-" to read standard input. Queries come from the arguments
and from --script, one per line; "#" starts a comment line.

Examples:
  srcexcerpt excerpt main.go point:12:5            # Highlight one character
  srcexcerpt excerpt main.go record:3:1 range:4:9  # Highlight 3:1 through 4:9
  srcexcerpt excerpt doc.md --markdown range:7:2   # Range from the block start
  srcexcerpt excerpt - line:1 < input.txt          # Read stdin
  srcexcerpt excerpt main.go --format json 2:3     # Structured output
  srcexcerpt excerpt main.go -o out.html --format html 2:3`

func addExcerptFlags(cmd *cobra.Command, flags *excerptFlags) {
	addCommonFlags(cmd, &flags.commonFlags)

	defaults := excerpt.DefaultWindow()

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, html, json, msgpack")
	cmd.Flags().BoolVar(&flags.caret, "caret", false, "print a caret under point highlights (text format)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "disable JSON indentation")
	cmd.Flags().StringVar(&flags.script, "script", "", "read queries from file, one per line")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write excerpts to file instead of stdout")
	cmd.Flags().IntVar(&flags.pointBefore, "point-before", defaults.PointBefore,
		"characters of context before a point")
	cmd.Flags().IntVar(&flags.pointAfter, "point-after", defaults.PointAfter,
		"characters of context after a point")
	cmd.Flags().IntVar(&flags.rangeBefore, "range-before", defaults.RangeBefore,
		"characters of context before a range")
	cmd.Flags().IntVar(&flags.rangeAfter, "range-after", defaults.RangeAfter,
		"characters of context after a range")
}

// cliConfig maps explicitly provided flags onto a config overlay.
func (f *excerptFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	f.apply(cmd, cfg)

	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("caret") {
		cfg.Caret = &f.caret
	}
	if changed("point-before") {
		cfg.Window.PointBefore = &f.pointBefore
	}
	if changed("point-after") {
		cfg.Window.PointAfter = &f.pointAfter
	}
	if changed("range-before") {
		cfg.Window.RangeBefore = &f.rangeBefore
	}
	if changed("range-after") {
		cfg.Window.RangeAfter = &f.rangeAfter
	}
	return cfg
}

func runExcerpt(cmd *cobra.Command, args []string, flags *excerptFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	queries, err := collectQueries(args[1:], flags.script)
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("%w: no queries given", ErrUsage)
	}

	cfg, _, err := loadConfig(ctx, cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	input, closeInput, err := openInput(cmd, args[0])
	if err != nil {
		return err
	}
	doc, capture, err := runner.IngestReader(input, cfg.ChunkSize, cfg.ExpectedLength, cfg.MarkdownEnabled())
	closeInput()
	if err != nil {
		return fmt.Errorf("ingest %s: %w", args[0], err)
	}

	logger.Debug("ingested",
		logging.FieldPath, args[0],
		logging.FieldLines, doc.LineCount(),
	)

	if cfg.MarkdownEnabled() {
		recorded := locator.CheckpointMarkdown(doc, capture.Bytes())
		logger.Debug("markdown checkpoints", logging.FieldCheckpoints, recorded)
	}

	var writer io.Writer = cmd.OutOrStdout()
	var outFile *fsutil.AtomicFile
	if flags.output != "" {
		outFile, err = fsutil.CreateAtomic(flags.output, 0)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer outFile.Abort()
		writer = outFile
	}

	renderer, err := render.New(render.Options{
		Writer:  writer,
		Format:  format,
		Color:   cfg.Color,
		Caret:   cfg.CaretEnabled(),
		Compact: flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	extractor := excerpt.New(doc, cfg.ExcerptWindow())
	runErr := locator.Run(ctx, extractor, queries, renderer)
	if flushErr := renderer.Flush(); flushErr != nil {
		runErr = errors.Join(runErr, fmt.Errorf("flush output: %w", flushErr))
	}
	if runErr != nil || outFile == nil {
		return runErr
	}

	if err := outFile.Commit(); err != nil {
		return fmt.Errorf("commit output: %w", err)
	}
	logger.Debug("wrote output", logging.FieldPath, outFile.Path())
	return nil
}

// collectQueries parses the query arguments followed by the script file, if any.
func collectQueries(args []string, scriptPath string) ([]locator.Query, error) {
	queries := make([]locator.Query, 0, len(args))
	for _, arg := range args {
		query, err := locator.ParseQuery(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		queries = append(queries, query)
	}

	if scriptPath == "" {
		return queries, nil
	}

	file, err := os.Open(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer file.Close()

	scripted, err := locator.ParseScript(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUsage, scriptPath, err)
	}
	return append(queries, scripted...), nil
}

// openInput opens path, or the command's stdin for "-". An interactive
// terminal on stdin is refused.
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path != stdinPath {
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", err)
		}
		return file, func() { _ = file.Close() }, nil
	}

	stdin := cmd.InOrStdin()
	if file, ok := stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return nil, nil, ErrNoInput
	}
	return stdin, func() {}, nil
}
