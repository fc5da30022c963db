// Package config defines core configuration types for srcexcerpt.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import "github.com/yaklabco/srcexcerpt/pkg/excerpt"

// DefaultChunkSize is the number of bytes read per ingestion step (64 KiB).
const DefaultChunkSize = 64 * 1024

// Output formats.
const (
	FormatText    = "text"
	FormatHTML    = "html"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// WindowConfig overrides the excerpt context windows. Nil fields keep the
// defaults.
type WindowConfig struct {
	PointBefore *int `yaml:"point_before,omitempty" toml:"point_before,omitempty"`
	PointAfter  *int `yaml:"point_after,omitempty" toml:"point_after,omitempty"`
	RangeBefore *int `yaml:"range_before,omitempty" toml:"range_before,omitempty"`
	RangeAfter  *int `yaml:"range_after,omitempty" toml:"range_after,omitempty"`
}

// Config is the root configuration structure for srcexcerpt.
type Config struct {
	// Format selects the renderer ("text", "html", "json" or "msgpack").
	Format string `yaml:"format,omitempty" toml:"format,omitempty"`

	// Color controls colorized text output: "auto", "always" or "never".
	Color string `yaml:"color,omitempty" toml:"color,omitempty"`

	// Caret prints a caret line under exact-point highlights in text output.
	Caret *bool `yaml:"caret,omitempty" toml:"caret,omitempty"`

	// Markdown checkpoints block starts with the Markdown parser before queries.
	Markdown *bool `yaml:"markdown,omitempty" toml:"markdown,omitempty"`

	// ChunkSize is the number of bytes fed to the document per step.
	ChunkSize int `yaml:"chunk_size,omitempty" toml:"chunk_size,omitempty"`

	// ExpectedLength sizes the first arena chunk, in runes.
	ExpectedLength int `yaml:"expected_length,omitempty" toml:"expected_length,omitempty"`

	// Jobs is the number of documents ingested concurrently. 0 means NumCPU.
	Jobs int `yaml:"jobs,omitempty" toml:"jobs,omitempty"`

	// Window overrides the context window sizes.
	Window WindowConfig `yaml:"window,omitempty" toml:"window,omitempty"`
}

// NewConfig returns a Config with the defaults.
func NewConfig() *Config {
	caret := false
	markdown := false
	return &Config{
		Format:    FormatText,
		Color:     ColorAuto,
		Caret:     &caret,
		Markdown:  &markdown,
		ChunkSize: DefaultChunkSize,
		Window: WindowConfig{
			PointBefore: intPtr(excerpt.DefaultPointBefore),
			PointAfter:  intPtr(excerpt.DefaultPointAfter),
			RangeBefore: intPtr(excerpt.DefaultRangeBefore),
			RangeAfter:  intPtr(excerpt.DefaultRangeAfter),
		},
	}
}

// ExcerptWindow resolves the window, falling back to the defaults for unset
// fields.
func (c *Config) ExcerptWindow() excerpt.Window {
	window := excerpt.DefaultWindow()
	if c == nil {
		return window
	}
	if c.Window.PointBefore != nil {
		window.PointBefore = *c.Window.PointBefore
	}
	if c.Window.PointAfter != nil {
		window.PointAfter = *c.Window.PointAfter
	}
	if c.Window.RangeBefore != nil {
		window.RangeBefore = *c.Window.RangeBefore
	}
	if c.Window.RangeAfter != nil {
		window.RangeAfter = *c.Window.RangeAfter
	}
	return window
}

// CaretEnabled reports whether the caret line is on.
func (c *Config) CaretEnabled() bool {
	return c != nil && c.Caret != nil && *c.Caret
}

// MarkdownEnabled reports whether Markdown checkpointing is on.
func (c *Config) MarkdownEnabled() bool {
	return c != nil && c.Markdown != nil && *c.Markdown
}

func intPtr(v int) *int {
	return &v
}
