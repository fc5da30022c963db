package locator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcexcerpt/pkg/excerpt"
	"github.com/yaklabco/srcexcerpt/pkg/locator"
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

func TestParseQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    locator.Query
		wantErr string
	}{
		{input: "point:3:4", want: locator.Query{Kind: locator.KindPoint, Line: 3, Column: 4}},
		{input: "3:4", want: locator.Query{Kind: locator.KindPoint, Line: 3, Column: 4}},
		{input: " RANGE:1:2 ", want: locator.Query{Kind: locator.KindRange, Line: 1, Column: 2}},
		{input: "record:10:1", want: locator.Query{Kind: locator.KindRecord, Line: 10, Column: 1}},
		{input: "line:7", want: locator.Query{Kind: locator.KindLine, Line: 7}},
		{input: "", wantErr: "empty query"},
		{input: "span:1:2", wantErr: "unknown query kind"},
		{input: "line:1:2", wantErr: "expected 1 coordinate"},
		{input: "point:1", wantErr: "expected 2 coordinate"},
		{input: "point:x:1", wantErr: "invalid number"},
		{input: "point:0:1", wantErr: "1-based"},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := locator.ParseQuery(testCase.input)
			if testCase.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestQueryString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "point:1:2", locator.Query{Kind: locator.KindPoint, Line: 1, Column: 2}.String())
	assert.Equal(t, "line:5", locator.Query{Kind: locator.KindLine, Line: 5}.String())
}

func TestParseScript(t *testing.T) {
	t.Parallel()

	script := "# checkpoints\nrecord:1:1\n\n  range:2:3\nline:1\n"
	queries, err := locator.ParseScript(strings.NewReader(script))
	require.NoError(t, err)
	assert.Equal(t, []locator.Query{
		{Kind: locator.KindRecord, Line: 1, Column: 1},
		{Kind: locator.KindRange, Line: 2, Column: 3},
		{Kind: locator.KindLine, Line: 1},
	}, queries)

	_, err = locator.ParseScript(strings.NewReader("point:1:1\nbogus\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script line 2")
}

func TestRun_RecordsBoundRanges(t *testing.T) {
	t.Parallel()

	ex := excerpt.New(newDocument(t, "alpha beta gamma"), excerpt.DefaultWindow())
	queries := []locator.Query{
		{Kind: locator.KindRecord, Line: 1, Column: 7},
		{Kind: locator.KindRange, Line: 1, Column: 10},
	}

	var rec excerpt.Recorder
	require.NoError(t, locator.Run(context.Background(), ex, queries, &rec))

	assert.Equal(t, "alpha beta gamma", rec.Plain())
	assert.Equal(t, "beta", rec.Highlighted())
	assert.True(t, ex.Document().Registry().IsRangeEnd(source.FromOneBased(1, 10)))
}

func TestRun_AllKinds(t *testing.T) {
	t.Parallel()

	ex := excerpt.New(newDocument(t, "one\ntwo"), excerpt.DefaultWindow())
	queries := []locator.Query{
		{Kind: locator.KindPoint, Line: 2, Column: 1},
		{Kind: locator.KindLine, Line: 1},
	}

	var rec excerpt.Recorder
	require.NoError(t, locator.Run(context.Background(), ex, queries, &rec))

	begins := 0
	for _, event := range rec.Events {
		if event.Kind == excerpt.EventBegin {
			begins++
		}
	}
	assert.Equal(t, 2, begins)
	assert.Equal(t, "one\ntwoone", rec.Plain())
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := excerpt.New(newDocument(t, "x"), excerpt.DefaultWindow())
	err := locator.Run(ctx, ex, []locator.Query{{Kind: locator.KindLine, Line: 1}}, &excerpt.Recorder{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestApply_UnknownKind(t *testing.T) {
	t.Parallel()

	ex := excerpt.New(newDocument(t, "x"), excerpt.DefaultWindow())
	err := locator.Apply(context.Background(), ex, locator.Query{Kind: "nope"}, &excerpt.Recorder{})
	require.Error(t, err)
}

func TestCheckpointMarkdown(t *testing.T) {
	t.Parallel()

	content := "# Title\n\nFirst para\nstill first\n\n- item\n\n```\ncode\n```\n"
	doc := newDocument(t, content)

	recorded := locator.CheckpointMarkdown(doc, []byte(content))
	assert.Equal(t, 4, recorded)

	seen := doc.Registry().Seen()
	require.Len(t, seen, 4)
	assert.Equal(t, 0, seen[0].Line, "heading")
	assert.Equal(t, source.Position{Line: 2, Column: 0}, seen[1], "paragraph")
	assert.Equal(t, 5, seen[2].Line, "list item text")
	assert.Equal(t, source.Position{Line: 8, Column: 0}, seen[3], "code block body")
}

func TestCheckpointMarkdown_CRLF(t *testing.T) {
	t.Parallel()

	content := "para\r\n\r\nnext\r\n"
	doc := newDocument(t, content)

	assert.Equal(t, 2, locator.CheckpointMarkdown(doc, []byte(content)))
	assert.Equal(t, []source.Position{{Line: 0, Column: 0}, {Line: 2, Column: 0}}, doc.Registry().Seen())
}

func TestCheckpointMarkdown_NarrowsRanges(t *testing.T) {
	t.Parallel()

	content := "intro text\n\nsecond block here\n"
	doc := newDocument(t, content)
	locator.CheckpointMarkdown(doc, []byte(content))

	ex := excerpt.New(doc, excerpt.DefaultWindow())
	var rec excerpt.Recorder
	require.NoError(t, ex.RangeEnd(context.Background(), 3, 6, &rec))
	assert.Equal(t, "second", rec.Highlighted())
}
