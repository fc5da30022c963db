package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unknown keys are errors.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Caret = clonePtr(c.Caret)
	clone.Markdown = clonePtr(c.Markdown)
	clone.Window = WindowConfig{
		PointBefore: clonePtr(c.Window.PointBefore),
		PointAfter:  clonePtr(c.Window.PointAfter),
		RangeBefore: clonePtr(c.Window.RangeBefore),
		RangeAfter:  clonePtr(c.Window.RangeAfter),
	}
	return &clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
