// Package langdetect labels a document with its language for report
// metadata. It uses go-enry: file names and extensions first, then shebangs
// and modelines, then content patterns and the enry classifier.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// SampleSize is the number of leading bytes Detect needs to see.
const SampleSize = 16 * 1024

// Labels returned for special cases.
const (
	LabelText     = "text"
	LabelBinary   = "binary"
	LabelMarkdown = "markdown"
)

// preferredByExtension resolves extensions enry considers ambiguous.
//
//nolint:gochecknoglobals // Read-only lookup table.
var preferredByExtension = map[string]string{
	".md":       LabelMarkdown,
	".markdown": LabelMarkdown,
	".h":        "c",
}

// classifierCandidates bounds the classifier to languages likely in a repo.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns a lower-case language label for the document at path.
// content may be a prefix of the document (see Sample). Returns "binary" for
// binary content and "text" when nothing matches with confidence.
func Detect(path string, content []byte) string {
	if enry.IsBinary(content) {
		return LabelBinary
	}

	base := filepath.Base(path)
	if lang, safe := enry.GetLanguageByFilename(base); safe {
		return normalize(lang)
	}

	ext := strings.ToLower(filepath.Ext(base))
	if label, ok := preferredByExtension[ext]; ok {
		return label
	}

	if lang, safe := enry.GetLanguageByExtension(base); safe {
		return normalize(lang)
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return normalize(lang)
	}

	if candidates := enry.GetLanguagesByExtension(base, content, nil); len(candidates) > 1 {
		if lang, _ := enry.GetLanguageByClassifier(content, candidates); lang != "" {
			return normalize(lang)
		}
	}

	return DetectContent(content)
}

// DetectContent labels an anonymous snippet, such as standard input.
func DetectContent(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return LabelText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LabelText
}

// Sample returns the prefix of content Detect looks at.
func Sample(content []byte) []byte {
	if len(content) > SampleSize {
		return content[:SampleSize]
	}
	return content
}

// IsMarkdown reports whether label names Markdown.
func IsMarkdown(label string) bool {
	return label == LabelMarkdown
}

// detectByPattern checks for a few highly indicative openings.
func detectByPattern(trimmed []byte) string {
	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return "go"
	case bytes.HasPrefix(trimmed, []byte("<!DOCTYPE")), bytes.HasPrefix(trimmed, []byte("<html")):
		return "html"
	case bytes.HasPrefix(trimmed, []byte("<?xml")):
		return "xml"
	case (bytes.HasPrefix(trimmed, []byte("{")) && bytes.HasSuffix(trimmed, []byte("}"))) ||
		(bytes.HasPrefix(trimmed, []byte("[")) && bytes.HasSuffix(trimmed, []byte("]"))):
		if bytes.Contains(trimmed, []byte(`":`)) {
			return "json"
		}
	case bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(trimmed, []byte("\nRUN ")):
		return "dockerfile"
	}
	return ""
}

// normalize converts go-enry language names to lower-case labels.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
