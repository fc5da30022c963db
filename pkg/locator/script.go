// Package locator feeds positions into a source.Document the way an
// upstream parser would: from a textual query script, or by checkpointing
// the block structure of a Markdown document.
package locator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/srcexcerpt/pkg/excerpt"
)

// Kind is the action a Query performs.
type Kind string

// Query kinds.
const (
	// KindRecord checkpoints a position without emitting anything.
	KindRecord Kind = "record"
	// KindPoint emits an exact-point excerpt.
	KindPoint Kind = "point"
	// KindRange emits a range excerpt ending at the position.
	KindRange Kind = "range"
	// KindLine emits a whole line.
	KindLine Kind = "line"
)

// ErrEmptyQuery is returned by ParseQuery for blank input.
var ErrEmptyQuery = errors.New("empty query")

// Query is one parsed locator instruction. Coordinates are 1-based; Column
// is zero for line queries.
type Query struct {
	Kind   Kind
	Line   int
	Column int
}

// String returns the query in script form.
func (q Query) String() string {
	if q.Kind == KindLine {
		return fmt.Sprintf("%s:%d", q.Kind, q.Line)
	}
	return fmt.Sprintf("%s:%d:%d", q.Kind, q.Line, q.Column)
}

// ParseQuery parses "record:L:C", "point:L:C", "range:L:C" or "line:L".
// A bare "L:C" is shorthand for "point:L:C".
func ParseQuery(input string) (Query, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}, ErrEmptyQuery
	}

	parts := strings.Split(input, ":")
	kind := KindPoint
	if _, err := strconv.Atoi(parts[0]); err != nil {
		kind = Kind(strings.ToLower(parts[0]))
		parts = parts[1:]
	}

	wantNumbers := 2
	switch kind {
	case KindRecord, KindPoint, KindRange:
	case KindLine:
		wantNumbers = 1
	default:
		return Query{}, fmt.Errorf("unknown query kind %q", kind)
	}

	if len(parts) != wantNumbers {
		return Query{}, fmt.Errorf("query %q: expected %d coordinate(s), got %d", input, wantNumbers, len(parts))
	}

	numbers := make([]int, 0, wantNumbers)
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Query{}, fmt.Errorf("query %q: invalid number %q", input, part)
		}
		if n < 1 {
			return Query{}, fmt.Errorf("query %q: coordinates are 1-based, got %d", input, n)
		}
		numbers = append(numbers, n)
	}

	query := Query{Kind: kind, Line: numbers[0]}
	if wantNumbers == 2 {
		query.Column = numbers[1]
	}
	return query, nil
}

// ParseScript reads one query per line. Blank lines and lines starting with
// '#' are skipped. Errors carry the 1-based script line.
func ParseScript(r io.Reader) ([]Query, error) {
	var queries []Query

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		query, err := ParseQuery(text)
		if err != nil {
			return nil, fmt.Errorf("script line %d: %w", lineNo, err)
		}
		queries = append(queries, query)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return queries, nil
}

// Run applies queries in order against ex, sending excerpts to handler.
// Record queries only update the registry. The first error stops the run.
func Run(ctx context.Context, ex *excerpt.Extractor, queries []Query, handler excerpt.Handler) error {
	for _, query := range queries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run queries: %w", err)
		}
		if err := Apply(ctx, ex, query, handler); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs a single query.
func Apply(ctx context.Context, ex *excerpt.Extractor, query Query, handler excerpt.Handler) error {
	switch query.Kind {
	case KindRecord:
		ex.Document().Record(query.Line, query.Column)
		return nil
	case KindPoint:
		return ex.Exact(ctx, query.Line, query.Column, handler)
	case KindRange:
		return ex.RangeEnd(ctx, query.Line, query.Column, handler)
	case KindLine:
		return ex.Line(ctx, query.Line, handler)
	default:
		return fmt.Errorf("unknown query kind %q", query.Kind)
	}
}
