package excerpt_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcexcerpt/pkg/excerpt"
	"github.com/yaklabco/srcexcerpt/pkg/source"
)

func newDocument(t *testing.T, content string) *source.Document {
	t.Helper()

	doc := source.New()
	doc.Begin(len(content))
	doc.FeedString(content)
	doc.Finish()
	return doc
}

func chars(text string) excerpt.Event {
	return excerpt.Event{Kind: excerpt.EventCharacters, Text: text}
}

var (
	begin     = excerpt.Event{Kind: excerpt.EventBegin}
	end       = excerpt.Event{Kind: excerpt.EventEnd}
	lineBreak = excerpt.Event{Kind: excerpt.EventLineBreak}
	endChar   = excerpt.Event{Kind: excerpt.EventEndCharHighlight}
	endRange  = excerpt.Event{Kind: excerpt.EventEndRangeHighlight}
)

func beginChar(line, column int) excerpt.Event {
	return excerpt.Event{Kind: excerpt.EventBeginCharHighlight, Line: line, Column: column}
}

func beginRange(line, column int) excerpt.Event {
	return excerpt.Event{Kind: excerpt.EventBeginRangeHighlight, Line: line, Column: column}
}

func TestExact_Example(t *testing.T) {
	t.Parallel()

	ex := excerpt.New(newDocument(t, "ab\r\ncd\nef"), excerpt.DefaultWindow())

	var rec excerpt.Recorder
	require.NoError(t, ex.Exact(context.Background(), 2, 1, &rec))

	assert.Equal(t, []excerpt.Event{
		begin,
		chars("ab"), lineBreak,
		beginChar(2, 1), chars("c"), endChar,
		chars("d"), lineBreak, chars("ef"),
		end,
	}, rec.Events)
	assert.True(t, ex.Document().Registry().IsExactError(source.Position{Line: 1, Column: 0}))
}

func TestExact_LastColumnEmitsSingleLineBreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		line, col int
		expected  []excerpt.Event
	}{
		{
			name: "end of middle line",
			line: 2, col: 2,
			expected: []excerpt.Event{
				begin,
				chars("ab"), lineBreak, chars("c"),
				beginChar(2, 2), chars("d"), endChar, lineBreak,
				chars("ef"),
				end,
			},
		},
		{
			name: "end of document",
			line: 3, col: 2,
			expected: []excerpt.Event{
				begin,
				chars("ab"), lineBreak, chars("cd"), lineBreak, chars("e"),
				beginChar(3, 2), chars("f"), endChar, lineBreak,
				end,
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ex := excerpt.New(newDocument(t, "ab\r\ncd\nef"), excerpt.DefaultWindow())

			var rec excerpt.Recorder
			require.NoError(t, ex.Exact(context.Background(), testCase.line, testCase.col, &rec))
			assert.Equal(t, testCase.expected, rec.Events)
		})
	}
}

func TestExact_WindowClipsLongLine(t *testing.T) {
	t.Parallel()

	content := "abcdefghijklmnopqrstuvwxyz0123456789"
	ex := excerpt.New(newDocument(t, content), excerpt.DefaultWindow())

	var rec excerpt.Recorder
	require.NoError(t, ex.Exact(context.Background(), 1, 21, &rec))

	assert.Equal(t, []excerpt.Event{
		begin,
		chars("fghijklmnopqrst"),
		beginChar(1, 21), chars("u"), endChar,
		chars("vwxyz"),
		end,
	}, rec.Events)
}

func TestExact_OutsideKnownSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		line, col int
	}{
		{"line past document", 4, 1},
		{"column at line end", 1, 3},
		{"column past line end", 2, 9},
		{"line far past document", 40, 1},
		{"line zero", 0, 1},
		{"column zero", 1, 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ex := excerpt.New(newDocument(t, "ab\ncd\nef"), excerpt.DefaultWindow())

			var rec excerpt.Recorder
			require.NoError(t, ex.Exact(context.Background(), testCase.line, testCase.col, &rec))
			assert.Empty(t, rec.Events)
			assert.True(t, ex.Document().Registry().IsExactError(source.FromOneBased(testCase.line, testCase.col)))
		})
	}
}

func TestExact_HighlightsCharacterAtEveryPosition(t *testing.T) {
	t.Parallel()

	content := "first line\r\n\r\nthird\rfo→rth\n"
	doc := newDocument(t, content)
	ex := excerpt.New(doc, excerpt.DefaultWindow())

	for lineIdx := range doc.LineCount() {
		runes := doc.Line(lineIdx).Runes()
		for col := range runes {
			var rec excerpt.Recorder
			require.NoError(t, ex.Exact(context.Background(), lineIdx+1, col+1, &rec))
			assert.Equal(t, string(runes[col]), rec.Highlighted(), "at %d:%d", lineIdx+1, col+1)
			assert.Contains(t, doc.Text()+"\n", rec.Plain(), "at %d:%d", lineIdx+1, col+1)
		}
	}
}

func TestRangeEnd_Example(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, "ab\r\ncd\nef")
	doc.Record(1, 1)
	ex := excerpt.New(doc, excerpt.DefaultWindow())

	var rec excerpt.Recorder
	require.NoError(t, ex.RangeEnd(context.Background(), 3, 2, &rec))

	assert.Equal(t, []excerpt.Event{
		begin,
		beginRange(3, 2),
		chars("ab"), lineBreak, chars("cd"), lineBreak, chars("ef"),
		endRange,
		end,
	}, rec.Events)

	registry := doc.Registry()
	rangeEnd := source.Position{Line: 2, Column: 1}
	assert.True(t, registry.IsRangeEnd(rangeEnd))
	assert.Contains(t, registry.Seen(), rangeEnd)
}

func TestRangeEnd_Windows(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, "0123456789abcdefghij")
	doc.Record(1, 15)
	ex := excerpt.New(doc, excerpt.DefaultWindow())

	var rec excerpt.Recorder
	require.NoError(t, ex.RangeEnd(context.Background(), 1, 17, &rec))

	assert.Equal(t, []excerpt.Event{
		begin,
		chars("456789abcd"),
		beginRange(1, 17), chars("efg"), endRange,
		chars("hij"),
		end,
	}, rec.Events)
}

func TestRangeEnd_WindowsCrossLines(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, "0123456789\nabcdefgh\nijklmnop")
	doc.Record(2, 3)
	ex := excerpt.New(doc, excerpt.DefaultWindow())

	var rec excerpt.Recorder
	require.NoError(t, ex.RangeEnd(context.Background(), 2, 5, &rec))

	assert.Equal(t, []excerpt.Event{
		begin,
		chars("23456789"), lineBreak, chars("ab"),
		beginRange(2, 5), chars("cde"), endRange,
		chars("fgh"), lineBreak, chars("ijk"),
		end,
	}, rec.Events)
}

func TestRangeEnd_AtOrPastEndOfLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		record   [2]int
		line     int
		column   int
		expected []excerpt.Event
	}{
		{
			name:   "empty line",
			record: [2]int{1, 1},
			line:   2,
			column: 1,
			expected: []excerpt.Event{
				begin,
				beginRange(2, 1), chars("ab"), lineBreak, endRange,
				lineBreak, chars("cd"),
				end,
			},
		},
		{
			name:   "end of last line",
			record: [2]int{3, 1},
			line:   3,
			column: 3,
			expected: []excerpt.Event{
				begin,
				chars("ab"), lineBreak, lineBreak,
				beginRange(3, 3), chars("cd"), endRange,
				end,
			},
		},
		{
			name:   "column far past end of line",
			record: [2]int{1, 2},
			line:   1,
			column: 40,
			expected: []excerpt.Event{
				begin,
				chars("a"),
				beginRange(1, 40), chars("b"), endRange,
				lineBreak, lineBreak, chars("cd"),
				end,
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc := newDocument(t, "ab\n\ncd")
			doc.Record(testCase.record[0], testCase.record[1])
			ex := excerpt.New(doc, excerpt.DefaultWindow())

			var rec excerpt.Recorder
			require.NoError(t, ex.RangeEnd(context.Background(), testCase.line, testCase.column, &rec))
			assert.Equal(t, testCase.expected, rec.Events)
		})
	}
}

func TestRangeEnd_StartsAfterPreviousRangeEnd(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, "0123456789abcdefghij")
	ex := excerpt.New(doc, excerpt.DefaultWindow())

	var first excerpt.Recorder
	require.NoError(t, ex.RangeEnd(context.Background(), 1, 4, &first))
	assert.Equal(t, "0123", first.Highlighted(), "no checkpoint starts at the origin")

	var second excerpt.Recorder
	require.NoError(t, ex.RangeEnd(context.Background(), 1, 8, &second))
	assert.Equal(t, "34567", second.Highlighted())
}

func TestRangeEnd_OutsideKnownSource(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, "ab\ncd")
	ex := excerpt.New(doc, excerpt.DefaultWindow())

	var rec excerpt.Recorder
	require.NoError(t, ex.RangeEnd(context.Background(), 7, 1, &rec))

	assert.Empty(t, rec.Events)
	assert.True(t, doc.Registry().IsRangeEnd(source.Position{Line: 6, Column: 0}))
}

func TestLine(t *testing.T) {
	t.Parallel()

	ex := excerpt.New(newDocument(t, "ab\r\n\ncd\n"), excerpt.DefaultWindow())

	tests := []struct {
		name     string
		line     int
		expected []excerpt.Event
	}{
		{"first line", 1, []excerpt.Event{begin, chars("ab"), end}},
		{"empty line", 2, []excerpt.Event{begin, end}},
		{"last line", 3, []excerpt.Event{begin, chars("cd"), end}},
		{"past last line", 4, nil},
		{"line zero", 0, nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var rec excerpt.Recorder
			require.NoError(t, ex.Line(context.Background(), testCase.line, &rec))
			assert.Equal(t, testCase.expected, rec.Events)
		})
	}
}

// flatOffset maps a position to an offset in doc.Text().
func flatOffset(doc *source.Document, pos source.Position) int {
	offset := 0
	for idx := range pos.Line {
		offset += doc.LineLen(idx) + 1
	}
	return offset + pos.Column
}

func TestEmit_MatchesSubstring(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, "ab\r\n\ncdef\rg\n\nhi")
	ex := excerpt.New(doc, excerpt.DefaultWindow())
	text := []rune(doc.Text())

	var positions []source.Position
	for lineIdx := range doc.LineCount() {
		for col := 0; col <= doc.LineLen(lineIdx); col++ {
			positions = append(positions, source.Position{Line: lineIdx, Column: col})
		}
	}

	for _, from := range positions {
		for _, until := range positions {
			var rec excerpt.Recorder
			require.NoError(t, ex.Emit(from, until, &rec))

			want := ""
			if from.Compare(until) < 0 {
				want = string(text[flatOffset(doc, from):flatOffset(doc, until)])
			}
			assert.Equal(t, want, rec.Plain(), "from %v until %v", from, until)
		}
	}
}

func TestEmit_NeverEmitsTerminators(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, "a\r\nb\rc\nd")
	ex := excerpt.New(doc, excerpt.DefaultWindow())

	var rec excerpt.Recorder
	require.NoError(t, ex.Emit(source.Position{}, doc.End(), &rec))

	for _, event := range rec.Events {
		assert.False(t, strings.ContainsAny(event.Text, "\r\n"))
	}
	assert.Equal(t, "a\nb\nc\nd", rec.Plain())
}

// failingHandler fails on the failAt-th event.
type failingHandler struct {
	excerpt.Recorder
	calls  int
	failAt int
	err    error
}

func (h *failingHandler) step() error {
	h.calls++
	if h.calls == h.failAt {
		return h.err
	}
	return nil
}

func (h *failingHandler) Begin() error {
	if err := h.step(); err != nil {
		return err
	}
	return h.Recorder.Begin()
}

func (h *failingHandler) Characters(text []rune) error {
	if err := h.step(); err != nil {
		return err
	}
	return h.Recorder.Characters(text)
}

func (h *failingHandler) LineBreak() error {
	if err := h.step(); err != nil {
		return err
	}
	return h.Recorder.LineBreak()
}

func TestRendererFailureAbortsAndClosesBracket(t *testing.T) {
	t.Parallel()

	errSink := errors.New("sink closed")
	doc := newDocument(t, "ab\r\ncd\nef")
	ex := excerpt.New(doc, excerpt.DefaultWindow())

	handler := &failingHandler{failAt: 3, err: errSink}
	err := ex.Exact(context.Background(), 2, 1, handler)

	require.Equal(t, errSink, err, "error is returned unmodified")
	assert.Equal(t, []excerpt.Event{begin, chars("ab"), end}, handler.Events)

	var rec excerpt.Recorder
	require.NoError(t, ex.Exact(context.Background(), 2, 1, &rec))
	assert.Equal(t, "c", rec.Highlighted(), "document stays usable")
}

func TestRendererFailureInBeginStillEnds(t *testing.T) {
	t.Parallel()

	errSink := errors.New("sink closed")
	ex := excerpt.New(newDocument(t, "abc"), excerpt.DefaultWindow())

	handler := &failingHandler{failAt: 1, err: errSink}
	require.ErrorIs(t, ex.Line(context.Background(), 1, handler), errSink)
	assert.Equal(t, []excerpt.Event{end}, handler.Events)
}

func TestQueriesBeforeFinishPanic(t *testing.T) {
	t.Parallel()

	doc := source.New()
	doc.Begin(0)
	doc.FeedString("abc")
	ex := excerpt.New(doc, excerpt.DefaultWindow())

	var rec excerpt.Recorder
	assert.PanicsWithError(t, source.ErrNotFinished.Error(), func() {
		_ = ex.Exact(context.Background(), 1, 1, &rec)
	})
}
