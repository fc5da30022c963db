// Package render turns excerpt events into text, HTML, JSON or msgpack
// output.
package render

import (
	"fmt"

	"github.com/yaklabco/srcexcerpt/pkg/excerpt"
)

// Renderer is an excerpt.Handler that writes to a buffered destination.
// Flush must be called once all queries have run.
type Renderer interface {
	excerpt.Handler
	Flush() error
}

// New creates a Renderer for the specified options.
func New(opts Options) (Renderer, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextRenderer(opts), nil
	case FormatHTML:
		return NewHTMLRenderer(opts), nil
	case FormatJSON:
		return NewJSONRenderer(opts), nil
	case FormatMsgpack:
		return NewMsgpackRenderer(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
