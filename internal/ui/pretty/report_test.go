package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/srcexcerpt/internal/ui/pretty"
)

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		language string
		lines    int
		expected string
	}{
		{"with language", "Go", 12, "main.go [Go] (12 lines)\n"},
		{"single line", "Go", 1, "main.go [Go] (1 line)\n"},
		{"no language", "", 0, "main.go (0 lines)\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, styles.FormatFileHeader("main.go", testCase.language, testCase.lines))
		})
	}
}

func TestFormatNumberedLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "  7 | x := 1\n", styles.FormatNumberedLine(7, 3, "x := 1"))
	assert.Equal(t, "120 | \n", styles.FormatNumberedLine(120, 3, ""))
}

func TestFormatQueryHeaderAndError(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.txt:point:1:2\n", styles.FormatQueryHeader("a.txt", "point:1:2"))
	assert.Equal(t, "a.txt: error boom\n", styles.FormatError("a.txt", errors.New("boom")))
}

func TestFormatCaret(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "   ^", styles.FormatCaret(3))
	assert.Equal(t, "^", styles.FormatCaret(-2))
}

func TestDigitWidth(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{999, 3},
		{1000, 4},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, pretty.DigitWidth(testCase.n))
	}
}
