package excerpt

import (
	"context"

	"github.com/yaklabco/srcexcerpt/internal/logging"
	"github.com/yaklabco/srcexcerpt/pkg/source"
)

// Query kinds, used in log output.
const (
	kindExact = "exact"
	kindRange = "range"
	kindLine  = "line"
)

// Extractor answers excerpt queries against one finished document.
// Queries that reference positions outside the captured content emit nothing
// and return nil.
type Extractor struct {
	doc    *source.Document
	window Window
}

// New returns an Extractor over doc using window.
func New(doc *source.Document, window Window) *Extractor {
	return &Extractor{doc: doc, window: window}
}

// Document returns the document the extractor reads.
func (e *Extractor) Document() *source.Document {
	return e.doc
}

// Window returns the context window in use.
func (e *Extractor) Window() Window {
	return e.window
}

// Exact emits the character at the 1-based position, highlighted, with
// PointBefore characters of context before it and PointAfter after it.
// The position is recorded as an exact error even when nothing is emitted.
func (e *Extractor) Exact(ctx context.Context, line, column int, handler Handler) error {
	pos := source.FromOneBased(line, column)
	e.doc.Registry().AddExactError(pos)

	logger := logging.FromContext(ctx)
	if !e.doc.Contains(pos) {
		logger.Debug("excerpt skipped", logging.FieldQuery, kindExact,
			logging.FieldLine, line, logging.FieldColumn, column)
		return nil
	}

	start := e.doc.Move(pos, -e.window.PointBefore)
	end := e.doc.Move(pos, e.window.PointAfter)
	lineRunes := e.doc.Line(pos.Line).Runes()

	logger.Debug("excerpt", logging.FieldQuery, kindExact,
		logging.FieldLine, line, logging.FieldColumn, column)

	return bracket(handler, func() error {
		if err := e.Emit(start, pos, handler); err != nil {
			return err
		}
		if err := handler.BeginCharHighlight(line, column); err != nil {
			return err
		}
		if err := handler.Characters(lineRunes[pos.Column : pos.Column+1]); err != nil {
			return err
		}
		if err := handler.EndCharHighlight(); err != nil {
			return err
		}
		if pos.Column+1 == len(lineRunes) {
			if err := handler.LineBreak(); err != nil {
				return err
			}
		}
		return e.Emit(e.doc.Advance(pos), end, handler)
	})
}

// RangeEnd emits a highlighted range ending at the 1-based position,
// inclusive of the character there. The start is inferred as the nearest
// position seen before the end. The end is registered as seen and as a
// range end before anything is emitted.
//
// Only the line must exist. An end at or past the end of its line, such as
// on an empty line, closes the range at the end of that line.
func (e *Extractor) RangeEnd(ctx context.Context, line, column int, handler Handler) error {
	end := source.FromOneBased(line, column)
	registry := e.doc.Registry()
	start := registry.NearestPreceding(end)
	registry.AddRangeEnd(end)

	logger := logging.FromContext(ctx)
	if end.Line < 0 || end.Line >= e.doc.LineCount() {
		logger.Debug("excerpt skipped", logging.FieldQuery, kindRange,
			logging.FieldLine, line, logging.FieldColumn, column)
		return nil
	}

	start = e.doc.Clamp(start)
	endExclusive := e.doc.Clamp(end)
	if e.doc.Contains(end) {
		endExclusive = e.doc.Advance(end)
	}
	before := e.doc.Move(start, -e.window.RangeBefore)
	after := e.doc.Move(endExclusive, e.window.RangeAfter)

	logger.Debug("excerpt", logging.FieldQuery, kindRange,
		logging.FieldLine, line, logging.FieldColumn, column,
		logging.FieldStart, start.String())

	return bracket(handler, func() error {
		if err := e.Emit(before, start, handler); err != nil {
			return err
		}
		if err := handler.BeginRangeHighlight(line, column); err != nil {
			return err
		}
		if err := e.Emit(start, endExclusive, handler); err != nil {
			return err
		}
		if err := handler.EndRangeHighlight(); err != nil {
			return err
		}
		return e.Emit(endExclusive, after, handler)
	})
}

// Line emits the full content of the 1-based line with no context and no
// highlight.
func (e *Extractor) Line(ctx context.Context, line int, handler Handler) error {
	logger := logging.FromContext(ctx)
	if line < 1 || line > e.doc.LineCount() {
		logger.Debug("excerpt skipped", logging.FieldQuery, kindLine, logging.FieldLine, line)
		return nil
	}

	logger.Debug("excerpt", logging.FieldQuery, kindLine, logging.FieldLine, line)

	return bracket(handler, func() error {
		return characters(handler, e.doc.Line(line-1).Runes())
	})
}

// Emit pushes the content from from (inclusive) to until (exclusive).
// Line terminators are reported as LineBreak events, never as characters.
// An empty or inverted span emits nothing. Both positions are clamped to the
// document first.
func (e *Extractor) Emit(from, until source.Position, handler Handler) error {
	from = e.doc.Clamp(from)
	until = e.doc.Clamp(until)
	if from.Compare(until) >= 0 {
		return nil
	}

	first := e.doc.Line(from.Line).Runes()
	if from.Line == until.Line {
		return characters(handler, first[from.Column:until.Column])
	}

	if err := characters(handler, first[from.Column:]); err != nil {
		return err
	}
	if err := handler.LineBreak(); err != nil {
		return err
	}

	for idx := from.Line + 1; idx < until.Line; idx++ {
		if err := characters(handler, e.doc.Line(idx).Runes()); err != nil {
			return err
		}
		if err := handler.LineBreak(); err != nil {
			return err
		}
	}

	if until.Column > 0 {
		return characters(handler, e.doc.Line(until.Line).Runes()[:until.Column])
	}
	return nil
}

// characters skips empty runs.
func characters(handler Handler, text []rune) error {
	if len(text) == 0 {
		return nil
	}
	return handler.Characters(text)
}
