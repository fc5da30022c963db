package source

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Begin resets the document for a new character stream. expectedLength is a
// sizing hint for the first arena chunk, not a bound.
// Begin clears the line table and all registry sets.
func (d *Document) Begin(expectedLength int) {
	d.lines.reset(expectedLength)
	d.registry.Reset()
	d.prevWasCR = false
	d.pending = d.pending[:0]
	d.state = stateIngesting
	d.lines.newLine()
}

// Feed appends the next consecutive slice of the character stream.
// CR, LF and CRLF each end one line, including a CRLF pair split across
// two Feed calls.
//
// Feed panics with ErrNotStarted before Begin and ErrFinished after Finish.
func (d *Document) Feed(chunk []rune) {
	d.mustBeIngesting()

	start := 0
	for idx, char := range chunk {
		switch char {
		case '\r':
			d.lines.appendRunes(chunk[start:idx])
			d.lines.newLine()
			start = idx + 1
			d.prevWasCR = true
		case '\n':
			if !d.prevWasCR {
				d.lines.appendRunes(chunk[start:idx])
				d.lines.newLine()
			}
			start = idx + 1
			d.prevWasCR = false
		default:
			d.prevWasCR = false
		}
	}
	d.lines.appendRunes(chunk[start:])
}

// FeedString is Feed for string input.
func (d *Document) FeedString(chunk string) {
	d.Feed([]rune(chunk))
}

// Write implements io.Writer over UTF-8 input. A multi-byte sequence split
// across writes is held back until it completes; invalid bytes decode to
// utf8.RuneError.
//
// Unlike Feed, Write reports lifecycle violations as errors.
func (d *Document) Write(p []byte) (int, error) {
	if err := d.lifecycleErr(); err != nil {
		return 0, err
	}

	data := p
	if len(d.pending) > 0 {
		d.pending = append(d.pending, p...)
		data = d.pending
	}

	d.scratch = d.scratch[:0]
	idx := 0
	for idx < len(data) {
		if !utf8.FullRune(data[idx:]) {
			break
		}
		char, size := utf8.DecodeRune(data[idx:])
		d.scratch = append(d.scratch, char)
		idx += size
	}

	// Overlapping append is a memmove; rest may alias pending.
	d.pending = append(d.pending[:0], data[idx:]...)

	d.Feed(d.scratch)
	return len(p), nil
}

// Finish ends the character stream. A trailing empty line, produced by a
// final line terminator, is dropped.
func (d *Document) Finish() {
	d.mustBeIngesting()

	if len(d.pending) > 0 {
		d.pending = d.pending[:0]
		d.Feed([]rune{utf8.RuneError})
	}

	d.lines.trimEmptyLast()
	d.state = stateFinished
}

// Ingest runs a full Begin, Write, Finish cycle over r, reading chunkSize
// bytes at a time.
func (d *Document) Ingest(r io.Reader, chunkSize, expectedLength int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("invalid chunk size %d", chunkSize)
	}

	d.Begin(expectedLength)

	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, writeErr := d.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
	}

	d.Finish()
	return nil
}

func (d *Document) lifecycleErr() error {
	switch d.state {
	case stateIdle:
		return ErrNotStarted
	case stateFinished:
		return ErrFinished
	default:
		return nil
	}
}

func (d *Document) mustBeIngesting() {
	if err := d.lifecycleErr(); err != nil {
		panic(err)
	}
}
