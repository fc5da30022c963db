package render

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the renderers.
const (
	FormatText    Format = "text"
	FormatHTML    Format = "html"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "text", "":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, html, json, msgpack", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatHTML, FormatJSON, FormatMsgpack:
		return true
	default:
		return false
	}
}

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool {
	return f == FormatMsgpack
}
