package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcexcerpt/pkg/config"
)

func TestFromTOML(t *testing.T) {
	t.Parallel()

	t.Run("full document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromTOML([]byte(`
format = "json"
color = "never"
caret = true
chunk_size = 512
jobs = 2

[window]
point_before = 4
point_after = 1
`))
		require.NoError(t, err)
		assert.Equal(t, config.FormatJSON, cfg.Format)
		assert.Equal(t, config.ColorNever, cfg.Color)
		assert.True(t, cfg.CaretEnabled())
		assert.Equal(t, 512, cfg.ChunkSize)
		assert.Equal(t, 2, cfg.Jobs)

		window := cfg.ExcerptWindow()
		assert.Equal(t, 4, window.PointBefore)
		assert.Equal(t, 1, window.PointAfter)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromTOML([]byte("formatt = \"text\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "formatt")
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromTOML([]byte("format = \n"))
		require.Error(t, err)
	})
}

func TestTOMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Format = config.FormatMsgpack
	caret, markdown := true, true
	original.Caret = &caret
	original.Markdown = &markdown

	data, err := original.ToTOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), `format = "msgpack"`)

	parsed, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}
