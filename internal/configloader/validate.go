package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/srcexcerpt/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "window.point_before").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[string]bool{
	config.FormatText:    true,
	config.FormatHTML:    true,
	config.FormatJSON:    true,
	config.FormatMsgpack: true,
}

// knownColorModes lists valid color values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[string]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

// largeWindow is the size above which a window triggers a warning.
const largeWindow = 4096

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, html, json, msgpack", cfg.Format),
		})
	}

	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if cfg.ChunkSize <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "chunk_size",
			Value:   cfg.ChunkSize,
			Message: "chunk_size must be > 0",
		})
	}

	if cfg.ExpectedLength < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "expected_length",
			Value:   cfg.ExpectedLength,
			Message: "expected_length must be >= 0",
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateWindow(cfg.Window, result)

	return result
}

// validateWindow rejects negative window sizes and warns on very large ones.
func validateWindow(window config.WindowConfig, result *ValidationResult) {
	fields := []struct {
		name  string
		value *int
	}{
		{"window.point_before", window.PointBefore},
		{"window.point_after", window.PointAfter},
		{"window.range_before", window.RangeBefore},
		{"window.range_after", window.RangeAfter},
	}

	for _, field := range fields {
		if field.value == nil {
			continue
		}
		switch {
		case *field.value < 0:
			result.Errors = append(result.Errors, ValidationError{
				Field:   field.name,
				Value:   *field.value,
				Message: field.name + " must be >= 0",
			})
		case *field.value > largeWindow:
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field.name,
				Value:   *field.value,
				Message: fmt.Sprintf("%s is %d; excerpts may be very long", field.name, *field.value),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f string) bool {
	return knownFormats[f]
}

// IsValidColorMode returns true if the color mode is valid.
func IsValidColorMode(mode string) bool {
	return knownColorModes[mode]
}
