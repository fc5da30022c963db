package render

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/srcexcerpt/pkg/excerpt"
)

// Output is the document written per excerpt by the structured renderers.
type Output struct {
	// Text is the excerpt with line breaks as "\n".
	Text string `json:"text" msgpack:"text"`

	// Highlight is the highlighted part of Text.
	Highlight string `json:"highlight" msgpack:"highlight"`

	// Events is the ordered handler event list.
	Events []excerpt.Event `json:"events" msgpack:"events"`
}

// encoder writes one Output.
type encoder interface {
	Encode(v any) error
}

// structuredRenderer records an excerpt's events and encodes them on End.
type structuredRenderer struct {
	excerpt.Recorder

	name string
	bw   *bufio.Writer
	enc  encoder
}

// End implements excerpt.Handler.
func (r *structuredRenderer) End() error {
	defer r.Reset()

	if err := r.Recorder.End(); err != nil {
		return err
	}

	output := Output{
		Text:      r.Plain(),
		Highlight: r.Highlighted(),
		Events:    r.Events,
	}
	if err := r.enc.Encode(output); err != nil {
		return fmt.Errorf("encode %s: %w", r.name, err)
	}
	return nil
}

// Flush writes any buffered output.
func (r *structuredRenderer) Flush() error {
	return r.bw.Flush()
}

// JSONRenderer writes one JSON document per excerpt.
type JSONRenderer struct {
	structuredRenderer
}

var _ Renderer = (*JSONRenderer)(nil)

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)
	enc := json.NewEncoder(bw)
	if !opts.Compact {
		enc.SetIndent("", "  ")
	}
	return &JSONRenderer{structuredRenderer{name: "JSON", bw: bw, enc: enc}}
}

// MsgpackRenderer writes one msgpack value per excerpt, back to back.
type MsgpackRenderer struct {
	structuredRenderer
}

var _ Renderer = (*MsgpackRenderer)(nil)

// NewMsgpackRenderer creates a new msgpack renderer.
func NewMsgpackRenderer(opts Options) *MsgpackRenderer {
	bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)
	return &MsgpackRenderer{structuredRenderer{name: "msgpack", bw: bw, enc: msgpack.NewEncoder(bw)}}
}
