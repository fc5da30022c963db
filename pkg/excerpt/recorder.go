package excerpt

import "strings"

// EventKind names a Handler event.
type EventKind string

// Event kinds, one per Handler method.
const (
	EventBegin               EventKind = "begin"
	EventEnd                 EventKind = "end"
	EventCharacters          EventKind = "characters"
	EventLineBreak           EventKind = "line-break"
	EventBeginCharHighlight  EventKind = "begin-char-highlight"
	EventEndCharHighlight    EventKind = "end-char-highlight"
	EventBeginRangeHighlight EventKind = "begin-range-highlight"
	EventEndRangeHighlight   EventKind = "end-range-highlight"
)

// Event is one recorded Handler call.
type Event struct {
	Kind   EventKind `json:"kind" msgpack:"kind"`
	Text   string    `json:"text,omitempty" msgpack:"text,omitempty"`
	Line   int       `json:"line,omitempty" msgpack:"line,omitempty"`
	Column int       `json:"column,omitempty" msgpack:"column,omitempty"`
}

// Compile-time interface check.
var _ Handler = (*Recorder)(nil)

// Recorder is a Handler that keeps every event in order.
// Character runs are copied, so a Recorder may outlive its document.
type Recorder struct {
	Events []Event
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

func (r *Recorder) add(event Event) error {
	r.Events = append(r.Events, event)
	return nil
}

// Begin implements Handler.
func (r *Recorder) Begin() error { return r.add(Event{Kind: EventBegin}) }

// End implements Handler.
func (r *Recorder) End() error { return r.add(Event{Kind: EventEnd}) }

// Characters implements Handler.
func (r *Recorder) Characters(text []rune) error {
	return r.add(Event{Kind: EventCharacters, Text: string(text)})
}

// LineBreak implements Handler.
func (r *Recorder) LineBreak() error { return r.add(Event{Kind: EventLineBreak}) }

// BeginCharHighlight implements Handler.
func (r *Recorder) BeginCharHighlight(line, column int) error {
	return r.add(Event{Kind: EventBeginCharHighlight, Line: line, Column: column})
}

// EndCharHighlight implements Handler.
func (r *Recorder) EndCharHighlight() error { return r.add(Event{Kind: EventEndCharHighlight}) }

// BeginRangeHighlight implements Handler.
func (r *Recorder) BeginRangeHighlight(line, column int) error {
	return r.add(Event{Kind: EventBeginRangeHighlight, Line: line, Column: column})
}

// EndRangeHighlight implements Handler.
func (r *Recorder) EndRangeHighlight() error { return r.add(Event{Kind: EventEndRangeHighlight}) }

// Plain returns the recorded text with line breaks as "\n".
func (r *Recorder) Plain() string {
	var builder strings.Builder
	for _, event := range r.Events {
		switch event.Kind {
		case EventCharacters:
			builder.WriteString(event.Text)
		case EventLineBreak:
			builder.WriteByte('\n')
		default:
		}
	}
	return builder.String()
}

// Highlighted returns the text recorded inside highlight brackets, with line
// breaks as "\n".
func (r *Recorder) Highlighted() string {
	var builder strings.Builder
	inside := false
	for _, event := range r.Events {
		switch event.Kind {
		case EventBeginCharHighlight, EventBeginRangeHighlight:
			inside = true
		case EventEndCharHighlight, EventEndRangeHighlight:
			inside = false
		case EventCharacters:
			if inside {
				builder.WriteString(event.Text)
			}
		case EventLineBreak:
			if inside {
				builder.WriteByte('\n')
			}
		default:
		}
	}
	return builder.String()
}
