// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Excerpt highlights
	CharHighlight  lipgloss.Style
	RangeHighlight lipgloss.Style
	Caret          lipgloss.Style

	// Report components
	FilePath lipgloss.Style
	Location lipgloss.Style
	Language lipgloss.Style
	LineNo   lipgloss.Style

	// Status
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	colored bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// Colored reports whether the styles emit ANSI sequences.
func (s *Styles) Colored() bool {
	return s.colored
}

// base keeps tabs intact so highlighted source keeps its columns.
func base() lipgloss.Style {
	return lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		CharHighlight:  base().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9")).Bold(true),
		RangeHighlight: base().Foreground(lipgloss.Color("11")).Underline(true),
		Caret:          base().Foreground(lipgloss.Color("9")).Bold(true),

		FilePath: base().Bold(true),
		Location: base().Foreground(lipgloss.Color("8")),
		Language: base().Foreground(lipgloss.Color("14")),
		LineNo:   base().Foreground(lipgloss.Color("8")),

		Error:   base().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: base().Foreground(lipgloss.Color("11")).Bold(true),
		Success: base().Foreground(lipgloss.Color("10")).Bold(true),

		Dim:  base().Foreground(lipgloss.Color("8")),
		Bold: base().Bold(true),

		colored: true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := base()
	return &Styles{
		CharHighlight:  plain,
		RangeHighlight: plain,
		Caret:          plain,
		FilePath:       plain,
		Location:       plain,
		Language:       plain,
		LineNo:         plain,
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
