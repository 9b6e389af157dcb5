package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// charWidth measures every character as ten units, which makes expected
// break points easy to read in the cases below.
func charWidth(s string) float64 {
	return float64(len(s)) * 10
}

func TestWrap(t *testing.T) {
	t.Run("empty input yields no lines", func(t *testing.T) {
		assert.Empty(t, Wrap(charWidth, "", 100))
	})

	t.Run("short text stays on one line", func(t *testing.T) {
		lines := Wrap(charWidth, "go fast", 100)
		require.Len(t, lines, 1)
		assert.Equal(t, "go fast", lines[0])
	})

	t.Run("breaks greedily at max width", func(t *testing.T) {
		lines := Wrap(charWidth, "aa bb cc dd", 50)
		assert.Equal(t, []string{"aa bb", "cc dd"}, lines)
	})

	t.Run("never splits a word", func(t *testing.T) {
		lines := Wrap(charWidth, "tiny overlongword tiny", 60)
		assert.Equal(t, []string{"tiny", "overlongword", "tiny"}, lines)
		for _, line := range lines {
			assert.NotContains(t, line, "overlongw ")
		}
	})

	t.Run("single word wider than max occupies its own line", func(t *testing.T) {
		lines := Wrap(charWidth, "incomprehensibilities", 50)
		require.Len(t, lines, 1)
		assert.Equal(t, "incomprehensibilities", lines[0])
	})

	t.Run("rejoining lines preserves all words", func(t *testing.T) {
		text := "the quick brown fox jumps over the lazy dog"
		lines := Wrap(charWidth, text, 80)
		assert.Equal(t, text, strings.Join(lines, " "))
	})
}
