// Package source indexes a streamed document by line for diagnostic excerpts.
//
// A Document consumes its character stream through Begin, Feed or Write, and
// Finish, splitting it into logical lines held as views into a shared rune
// arena. Once finished, positions reported by an upstream parser can be
// bounded, moved and sliced without copying the document.
package source

import (
	"errors"
	"strings"
)

// Lifecycle violations. These indicate a wiring bug in the caller and are
// raised as panics by Feed, Finish and the query accessors.
var (
	ErrNotStarted  = errors.New("source: document not started")
	ErrFinished    = errors.New("source: document already finished")
	ErrNotFinished = errors.New("source: document still ingesting")
)

type state int

const (
	stateIdle state = iota
	stateIngesting
	stateFinished
)

// Document is the line index and position registry of one document.
// A Document is not safe for concurrent use.
type Document struct {
	lines    LineTable
	registry Registry
	state    state

	prevWasCR bool

	// pending holds an incomplete UTF-8 sequence between writes.
	pending []byte
	scratch []rune
}

// New returns an idle document. Call Begin before feeding it.
func New() *Document {
	return &Document{}
}

// Finished reports whether Finish has been called since the last Begin.
func (d *Document) Finished() bool {
	return d.state == stateFinished
}

// Registry returns the document's position registry.
func (d *Document) Registry() *Registry {
	return &d.registry
}

// Record checkpoints a 1-based position. It may be called while ingesting.
func (d *Document) Record(line, column int) {
	d.registry.Record(line, column)
}

// LineCount returns the number of logical lines.
func (d *Document) LineCount() int {
	d.mustBeFinished()
	return d.lines.Len()
}

// Line returns the zero-based line. It panics if index is out of range.
func (d *Document) Line(index int) Line {
	d.mustBeFinished()
	return d.lines.At(index)
}

// LineLen returns the rune length of the zero-based line.
func (d *Document) LineLen(index int) int {
	return d.Line(index).Len()
}

// Text returns the document with every line terminator normalized to "\n".
// A final terminator is not reproduced.
func (d *Document) Text() string {
	d.mustBeFinished()

	var builder strings.Builder
	for idx := range d.lines.Len() {
		if idx > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(d.lines.At(idx).String())
	}
	return builder.String()
}

// Contains reports whether p addresses a character of the document.
func (d *Document) Contains(p Position) bool {
	d.mustBeFinished()
	if p.Line < 0 || p.Line >= d.lines.Len() || p.Column < 0 {
		return false
	}
	return p.Column < d.lines.At(p.Line).Len()
}

// End returns the position just past the last character, or the origin for
// an empty document.
func (d *Document) End() Position {
	d.mustBeFinished()
	n := d.lines.Len()
	if n == 0 {
		return Position{}
	}
	return Position{Line: n - 1, Column: d.lines.At(n - 1).Len()}
}

// Clamp bounds p to the document: lines before the first clamp to the
// origin, lines after the last to End, and columns to the line length.
func (d *Document) Clamp(p Position) Position {
	d.mustBeFinished()
	switch {
	case d.lines.Len() == 0, p.Line < 0:
		return Position{}
	case p.Line >= d.lines.Len():
		return d.End()
	}
	return Position{Line: p.Line, Column: min(max(p.Column, 0), d.lines.At(p.Line).Len())}
}

// Move returns p moved delta characters, crossing lines as needed and
// clamping at the origin and at End. Line breaks take no room: moving past
// the last character of a line lands on the first column of the next line.
func (d *Document) Move(p Position, delta int) Position {
	p = d.Clamp(p)
	if d.lines.Len() == 0 {
		return p
	}
	if delta < 0 {
		return d.backward(p, -delta)
	}
	return d.forward(p, delta)
}

// Advance returns the position of the character after p. From the last
// column of a line it moves to column 0 of the next line, even when that
// line is empty.
func (d *Document) Advance(p Position) Position {
	return d.Move(p, 1)
}

func (d *Document) forward(p Position, n int) Position {
	last := d.lines.Len() - 1
	for {
		length := d.lines.At(p.Line).Len()
		if p.Column+n < length {
			return Position{Line: p.Line, Column: p.Column + n}
		}
		if p.Line == last {
			return Position{Line: last, Column: length}
		}
		n -= length - p.Column
		p = Position{Line: p.Line + 1}
		if n == 0 {
			return p
		}
	}
}

func (d *Document) backward(p Position, n int) Position {
	for {
		if p.Column >= n {
			return Position{Line: p.Line, Column: p.Column - n}
		}
		if p.Line == 0 {
			return Position{}
		}
		n -= p.Column
		p.Line--
		p.Column = d.lines.At(p.Line).Len()
	}
}

func (d *Document) mustBeFinished() {
	if d.state != stateFinished {
		panic(ErrNotFinished)
	}
}
