package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/srcexcerpt/internal/logging"
	"github.com/yaklabco/srcexcerpt/pkg/langdetect"
	"github.com/yaklabco/srcexcerpt/pkg/locator"
	"github.com/yaklabco/srcexcerpt/pkg/source"
)

// Run discovers files under opts.Paths and ingests each into its own
// document concurrently. Outcomes keep discovery order. Per-file failures are
// recorded on the outcome; only discovery errors and cancellation fail the
// run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger := logging.FromContext(ctx)
	logger.Debug("ingesting", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	// Each worker writes only its own slot.
	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[idx] = IngestFile(groupCtx, path, opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	return result, nil
}

// IngestFile reads path into a finished document.
func IngestFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	file, err := os.Open(path)
	if err != nil {
		outcome.Error = fmt.Errorf("open: %w", err)
		return outcome
	}
	defer file.Close()

	expected := opts.ExpectedLength
	if expected <= 0 {
		if info, statErr := file.Stat(); statErr == nil {
			if size, convErr := safecast.Conv[int](info.Size()); convErr == nil {
				expected = size
			}
		}
	}

	doc, capture, err := IngestReader(file, opts.effectiveChunkSize(), expected, opts.Markdown)
	outcome.Bytes = capture.Total()
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Document = doc
	outcome.Language = langdetect.Detect(path, capture.sample())

	if opts.Markdown && langdetect.IsMarkdown(outcome.Language) {
		outcome.Checkpoints = locator.CheckpointMarkdown(doc, capture.Bytes())
	}

	logging.FromContext(ctx).Debug("ingested",
		logging.FieldPath, path,
		logging.FieldLines, doc.LineCount(),
		logging.FieldLanguage, outcome.Language,
	)

	return outcome
}

// IngestReader streams r into a new finished document. The returned Capture
// holds the language sample, or the whole content when keepAll is set.
func IngestReader(r io.Reader, chunkSize, expectedLength int, keepAll bool) (*source.Document, *Capture, error) {
	capture := &Capture{keepAll: keepAll}
	doc := source.New()
	if err := doc.Ingest(io.TeeReader(r, capture), chunkSize, expectedLength); err != nil {
		return nil, capture, err
	}
	return doc, capture, nil
}

// Capture records what passed through an ingestion.
type Capture struct {
	buf     bytes.Buffer
	total   int64
	keepAll bool
}

// Write implements io.Writer.
func (c *Capture) Write(p []byte) (int, error) {
	c.total += int64(len(p))
	if c.keepAll {
		return c.buf.Write(p)
	}
	if room := langdetect.SampleSize - c.buf.Len(); room > 0 {
		c.buf.Write(p[:min(room, len(p))])
	}
	return len(p), nil
}

// Bytes returns the captured content.
func (c *Capture) Bytes() []byte {
	return c.buf.Bytes()
}

// Total returns the number of bytes that passed through.
func (c *Capture) Total() int64 {
	return c.total
}

func (c *Capture) sample() []byte {
	return langdetect.Sample(c.buf.Bytes())
}
