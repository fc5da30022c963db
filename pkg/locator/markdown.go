package locator

import (
	"slices"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/srcexcerpt/pkg/source"
)

// CheckpointMarkdown parses content as Markdown and records the start of every
// block with source lines (paragraphs, headings, code blocks, HTML blocks)
// into doc. It returns the number of positions recorded. content must be the
// same bytes that were ingested into doc.
func CheckpointMarkdown(doc *source.Document, content []byte) int {
	root := goldmark.New().Parser().Parse(text.NewReader(content))
	index := newOffsetIndex(content)

	recorded := 0
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || node.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}

		lines := node.Lines()
		if lines == nil || lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		line, column := index.position(lines.At(0).Start)
		doc.Record(line, column)
		recorded++
		return ast.WalkContinue, nil
	})

	return recorded
}

// offsetIndex maps byte offsets to 1-based (line, rune column) pairs. CR, LF
// and CRLF each end one line.
type offsetIndex struct {
	content []byte
	starts  []int
}

func newOffsetIndex(content []byte) *offsetIndex {
	starts := []int{0}
	for idx := 0; idx < len(content); idx++ {
		switch content[idx] {
		case '\r':
			if idx+1 < len(content) && content[idx+1] == '\n' {
				idx++
			}
			starts = append(starts, idx+1)
		case '\n':
			starts = append(starts, idx+1)
		}
	}
	return &offsetIndex{content: content, starts: starts}
}

func (x *offsetIndex) position(offset int) (int, int) {
	offset = min(max(offset, 0), len(x.content))
	line, found := slices.BinarySearch(x.starts, offset)
	if !found {
		line--
	}
	column := utf8.RuneCount(x.content[x.starts[line]:offset]) + 1
	return line + 1, column
}
