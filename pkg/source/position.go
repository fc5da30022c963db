package source

import (
	"cmp"
	"fmt"
)

// Position is a zero-based line and column within a Document.
// Columns count runes. A Position only has meaning against the Document
// that produced or accepted it.
type Position struct {
	Line   int
	Column int
}

// FromOneBased converts 1-based line and column numbers, as reported by
// upstream parsers, to a zero-based Position.
func FromOneBased(line, column int) Position {
	return Position{Line: line - 1, Column: column - 1}
}

// OneBased returns the 1-based line and column numbers.
func (p Position) OneBased() (int, int) {
	return p.Line + 1, p.Column + 1
}

// Compare orders positions by line, then by column.
// It returns -1, 0 or +1.
func (p Position) Compare(other Position) int {
	if c := cmp.Compare(p.Line, other.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, other.Column)
}

// Less reports whether p sorts before other.
func (p Position) Less(other Position) bool {
	return p.Compare(other) < 0
}

// Shifted returns p with its column moved by delta.
// The result may fall outside the document; see Document.Move for
// line-aware arithmetic.
func (p Position) Shifted(delta int) Position {
	return Position{Line: p.Line, Column: p.Column + delta}
}

// Advanced returns p moved one column forward.
func (p Position) Advanced() Position {
	return p.Shifted(1)
}

// String returns the 1-based "line:column" form.
func (p Position) String() string {
	line, column := p.OneBased()
	return fmt.Sprintf("%d:%d", line, column)
}
