package pretty

import (
	"fmt"
	"strings"
)

// FormatFileHeader formats the header printed before a document's report.
func (s *Styles) FormatFileHeader(path, language string, lineCount int) string {
	noun := "lines"
	if lineCount == 1 {
		noun = "line"
	}

	header := s.FilePath.Render(path)
	if language != "" {
		header += " " + s.Language.Render("["+language+"]")
	}
	return header + s.Dim.Render(fmt.Sprintf(" (%d %s)", lineCount, noun)) + "\n"
}

// FormatNumberedLine formats one source line with a right-aligned 1-based
// number padded to width digits.
func (s *Styles) FormatNumberedLine(number, width int, text string) string {
	label := fmt.Sprintf("%*d", width, number)
	return s.LineNo.Render(label) + s.Dim.Render(" | ") + text + "\n"
}

// FormatQueryHeader formats the label printed before one excerpt.
func (s *Styles) FormatQueryHeader(path, query string) string {
	return s.FilePath.Render(path) + s.Dim.Render(":") + s.Location.Render(query) + "\n"
}

// FormatError formats a per-file failure.
func (s *Styles) FormatError(path string, err error) string {
	return s.FilePath.Render(path) + ": " + s.Error.Render("error") + " " + err.Error() + "\n"
}

// FormatCaret returns a caret line with the caret at display width pad.
func (s *Styles) FormatCaret(pad int) string {
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s.Caret.Render("^")
}

// DigitWidth returns the number of decimal digits in n (at least 1).
func DigitWidth(n int) int {
	width := 1
	for n >= 10 {
		n /= 10
		width++
	}
	return width
}
