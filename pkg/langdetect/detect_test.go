package langdetect_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/srcexcerpt/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{
			name:     "go by extension",
			path:     "cmd/main.go",
			content:  "whatever",
			expected: "go",
		},
		{
			name:     "markdown by extension",
			path:     "README.md",
			content:  "# Title\n",
			expected: "markdown",
		},
		{
			name:     "dockerfile by name",
			path:     "build/Dockerfile",
			content:  "FROM scratch\n",
			expected: "dockerfile",
		},
		{
			name:     "shebang without extension",
			path:     "bin/run",
			content:  "#!/bin/bash\necho hello",
			expected: "bash",
		},
		{
			name:     "go content without extension",
			path:     "snippet",
			content:  "package main\n\nfunc main() {}",
			expected: "go",
		},
		{
			name:     "binary content",
			path:     "blob.go",
			content:  "\x00\x01\x02binary",
			expected: "binary",
		},
		{
			name:     "plain text fallback",
			path:     "notes",
			content:  "just some text without any code patterns",
			expected: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := langdetect.Detect(tt.path, []byte(tt.content))

			if result != tt.expected {
				t.Errorf("Detect() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDetectContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", "text"},
		{"whitespace", " \n\t", "text"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"go", "package foo\n", "go"},
		{"html", "<!DOCTYPE html>\n<html></html>", "html"},
		{"json", `{"key": "value"}`, "json"},
		{"dockerfile", "FROM golang:1.21\nRUN go build", "dockerfile"},
		{"plain", "just some text without any code patterns", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if result := langdetect.DetectContent([]byte(tt.content)); result != tt.expected {
				t.Errorf("DetectContent() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSample(t *testing.T) {
	t.Parallel()

	short := []byte("abc")
	if got := langdetect.Sample(short); !bytes.Equal(got, short) {
		t.Errorf("Sample() = %q, want %q", got, short)
	}

	long := bytes.Repeat([]byte("x"), langdetect.SampleSize+10)
	if got := len(langdetect.Sample(long)); got != langdetect.SampleSize {
		t.Errorf("len(Sample()) = %d, want %d", got, langdetect.SampleSize)
	}
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	if !langdetect.IsMarkdown("markdown") {
		t.Error("IsMarkdown(markdown) = false")
	}
	if langdetect.IsMarkdown("go") {
		t.Error("IsMarkdown(go) = true")
	}
}
