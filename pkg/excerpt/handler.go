// Package excerpt extracts diagnostic context from a finished source.Document
// and pushes it to a Handler as a sequence of events.
package excerpt

// Handler receives the events of one excerpt. Every query that produces
// output is bracketed by Begin and End; End is called even when an earlier
// event, Begin included, failed. Coordinates are 1-based.
//
// The slices passed to Characters alias the document and must not be
// retained or modified.
type Handler interface {
	Begin() error
	End() error

	Characters(text []rune) error
	LineBreak() error

	BeginCharHighlight(line, column int) error
	EndCharHighlight() error

	// BeginRangeHighlight receives the reported end of the range.
	BeginRangeHighlight(line, column int) error
	EndRangeHighlight() error
}

// bracket wraps body in Begin and End. End always runs; the first error wins.
func bracket(handler Handler, body func() error) (err error) {
	defer func() {
		if endErr := handler.End(); err == nil {
			err = endErr
		}
	}()

	if err := handler.Begin(); err != nil {
		return err
	}
	return body()
}
