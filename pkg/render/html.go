package render

import (
	"bufio"

	"github.com/yuin/goldmark/util"
)

var _ Renderer = (*HTMLRenderer)(nil)

// HTMLRenderer writes each excerpt as a <code class="extract"> element.
// Exact highlights become <b>, range highlights <b class="range">, and line
// breaks <br/>. Text is HTML-escaped.
type HTMLRenderer struct {
	opts Options
	bw   *bufio.Writer
}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Begin implements excerpt.Handler.
func (r *HTMLRenderer) Begin() error {
	_, err := r.bw.WriteString(`<code class="extract">`)
	return err
}

// End implements excerpt.Handler.
func (r *HTMLRenderer) End() error {
	_, err := r.bw.WriteString("</code>\n")
	return err
}

// Characters implements excerpt.Handler.
func (r *HTMLRenderer) Characters(text []rune) error {
	_, err := r.bw.Write(util.EscapeHTML([]byte(string(text))))
	return err
}

// LineBreak implements excerpt.Handler.
func (r *HTMLRenderer) LineBreak() error {
	_, err := r.bw.WriteString("<br/>")
	return err
}

// BeginCharHighlight implements excerpt.Handler.
func (r *HTMLRenderer) BeginCharHighlight(_, _ int) error {
	_, err := r.bw.WriteString("<b>")
	return err
}

// EndCharHighlight implements excerpt.Handler.
func (r *HTMLRenderer) EndCharHighlight() error {
	_, err := r.bw.WriteString("</b>")
	return err
}

// BeginRangeHighlight implements excerpt.Handler.
func (r *HTMLRenderer) BeginRangeHighlight(_, _ int) error {
	_, err := r.bw.WriteString(`<b class="range">`)
	return err
}

// EndRangeHighlight implements excerpt.Handler.
func (r *HTMLRenderer) EndRangeHighlight() error {
	_, err := r.bw.WriteString("</b>")
	return err
}

// Flush writes any buffered output.
func (r *HTMLRenderer) Flush() error {
	return r.bw.Flush()
}
