package source

// minChunkSize is the smallest rune chunk the line table allocates.
const minChunkSize = 4096

// Line is a view into a chunk of the line table's rune arena.
// A finished line never changes; its chunk is never reallocated.
type Line struct {
	buf    []rune
	offset int
	length int
}

// Runes returns the line content without its terminator.
// The slice aliases the arena and must not be modified.
func (l Line) Runes() []rune {
	end := l.offset + l.length
	return l.buf[l.offset:end:end]
}

// Offset returns the index of the line's first rune within its chunk.
func (l Line) Offset() int {
	return l.offset
}

// Len returns the number of runes on the line.
func (l Line) Len() int {
	return l.length
}

// String returns the line content as a string.
func (l Line) String() string {
	return string(l.Runes())
}

// LineTable is an append-only sequence of lines backed by shared rune chunks.
// Consecutive lines within one chunk are contiguous: the offset of line k+1
// equals the offset plus length of line k.
type LineTable struct {
	lines []Line

	// chunk is the chunk the last line writes into; pos is its write position.
	chunk []rune
	pos   int

	// sizeHint sizes the first chunk.
	sizeHint int
}

// reset drops all lines and chunks. The next chunk is sized to expectedLength.
func (t *LineTable) reset(expectedLength int) {
	t.lines = nil
	t.chunk = nil
	t.pos = 0
	t.sizeHint = expectedLength
}

// Len returns the number of lines.
func (t *LineTable) Len() int {
	return len(t.lines)
}

// At returns the line with the given zero-based index.
func (t *LineTable) At(index int) Line {
	return t.lines[index]
}

// newLine starts an empty line at the current write position.
func (t *LineTable) newLine() {
	if t.chunk == nil {
		t.chunk = make([]rune, max(t.sizeHint, minChunkSize))
		t.pos = 0
	}
	t.lines = append(t.lines, Line{buf: t.chunk, offset: t.pos})
}

// appendRunes appends runs to the last line.
func (t *LineTable) appendRunes(runs []rune) {
	if len(runs) == 0 {
		return
	}

	last := &t.lines[len(t.lines)-1]
	if t.pos+len(runs) > len(t.chunk) {
		t.grow(last, len(runs))
	}

	copy(t.chunk[t.pos:], runs)
	t.pos += len(runs)
	last.length += len(runs)
}

// grow moves the unfinished last line into a fresh chunk with room for extra
// more runes. Finished lines keep their chunk and offsets.
func (t *LineTable) grow(last *Line, extra int) {
	need := last.length + extra
	size := max(2*len(t.chunk), 2*need, minChunkSize)

	chunk := make([]rune, size)
	copy(chunk, last.Runes())

	t.chunk = chunk
	t.pos = last.length
	last.buf = chunk
	last.offset = 0
}

// trimEmptyLast removes the last line if it is empty.
func (t *LineTable) trimEmptyLast() {
	if n := len(t.lines); n > 0 && t.lines[n-1].length == 0 {
		t.lines = t.lines[:n-1]
	}
}
