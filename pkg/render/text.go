package render

import (
	"bufio"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/srcexcerpt/internal/ui/pretty"
)

var _ Renderer = (*TextRenderer)(nil)

type highlightKind int

const (
	highlightNone highlightKind = iota
	highlightChar
	highlightRange
)

// TextRenderer writes each excerpt as plain lines, styling highlights for the
// terminal. With Caret set, a line holding a "^" under the highlighted
// character follows the line that contains it.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer

	highlight highlightKind
	// line holds the current output line, used to align the caret.
	line        strings.Builder
	caretPad    string
	caretQueued bool
	brokeLast   bool
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Begin implements excerpt.Handler.
func (r *TextRenderer) Begin() error {
	r.line.Reset()
	r.highlight = highlightNone
	r.caretQueued = false
	r.brokeLast = false
	return nil
}

// End implements excerpt.Handler. Every excerpt ends with exactly one newline.
func (r *TextRenderer) End() error {
	r.highlight = highlightNone
	if r.brokeLast {
		return nil
	}
	return r.endLine()
}

// Characters implements excerpt.Handler.
func (r *TextRenderer) Characters(text []rune) error {
	chunk := string(text)
	if r.highlight == highlightChar && r.opts.Caret && !r.caretQueued {
		r.caretPad = caretPadding(r.line.String())
		r.caretQueued = true
	}
	r.line.WriteString(chunk)
	r.brokeLast = false

	if r.styles.Colored() {
		switch r.highlight {
		case highlightChar:
			chunk = r.styles.CharHighlight.Render(chunk)
		case highlightRange:
			chunk = r.styles.RangeHighlight.Render(chunk)
		case highlightNone:
		}
	}

	_, err := r.bw.WriteString(chunk)
	return err
}

// LineBreak implements excerpt.Handler.
func (r *TextRenderer) LineBreak() error {
	if err := r.endLine(); err != nil {
		return err
	}
	r.brokeLast = true
	return nil
}

// BeginCharHighlight implements excerpt.Handler.
func (r *TextRenderer) BeginCharHighlight(_, _ int) error {
	r.highlight = highlightChar
	return nil
}

// EndCharHighlight implements excerpt.Handler.
func (r *TextRenderer) EndCharHighlight() error {
	r.highlight = highlightNone
	return nil
}

// BeginRangeHighlight implements excerpt.Handler.
func (r *TextRenderer) BeginRangeHighlight(_, _ int) error {
	r.highlight = highlightRange
	return nil
}

// EndRangeHighlight implements excerpt.Handler.
func (r *TextRenderer) EndRangeHighlight() error {
	r.highlight = highlightNone
	return nil
}

// Flush writes any buffered output.
func (r *TextRenderer) Flush() error {
	return r.bw.Flush()
}

func (r *TextRenderer) endLine() error {
	if err := r.bw.WriteByte('\n'); err != nil {
		return err
	}
	r.line.Reset()

	if !r.caretQueued {
		return nil
	}
	r.caretQueued = false
	_, err := r.bw.WriteString(r.caretPad + r.styles.Caret.Render("^") + "\n")
	return err
}

// caretPadding returns whitespace as wide as prefix on a terminal. Tabs are
// kept so the caret lands under the same tab stop.
func caretPadding(prefix string) string {
	var builder strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			builder.WriteByte('\t')
			continue
		}
		builder.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return builder.String()
}
