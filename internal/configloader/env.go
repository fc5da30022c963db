package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/srcexcerpt/pkg/config"
)

// envVarPrefix is the prefix for all srcexcerpt environment variables.
const envVarPrefix = "SRCEXCERPT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":          {field: "format", typ: envTypeString},
	"COLOR":           {field: "color", typ: envTypeString},
	"CARET":           {field: "caret", typ: envTypeBool},
	"MARKDOWN":        {field: "markdown", typ: envTypeBool},
	"CHUNK_SIZE":      {field: "chunk_size", typ: envTypeInt},
	"EXPECTED_LENGTH": {field: "expected_length", typ: envTypeInt},
	"JOBS":            {field: "jobs", typ: envTypeInt},
	"POINT_BEFORE":    {field: "window.point_before", typ: envTypeInt},
	"POINT_AFTER":     {field: "window.point_after", typ: envTypeInt},
	"RANGE_BEFORE":    {field: "window.range_before", typ: envTypeInt},
	"RANGE_AFTER":     {field: "window.range_after", typ: envTypeInt},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SRCEXCERPT_ (e.g., SRCEXCERPT_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = value
	case "color":
		cfg.Color = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "caret":
		cfg.Caret = &value
	case "markdown":
		cfg.Markdown = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "chunk_size":
		cfg.ChunkSize = value
	case "expected_length":
		cfg.ExpectedLength = value
	case "jobs":
		cfg.Jobs = value
	case "window.point_before":
		cfg.Window.PointBefore = &value
	case "window.point_after":
		cfg.Window.PointAfter = &value
	case "window.range_before":
		cfg.Window.RangeBefore = &value
	case "window.range_after":
		cfg.Window.RangeAfter = &value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}
