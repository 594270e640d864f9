package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/fictionfetch"
	"github.com/fwojciec/fictionfetch/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<p>The gates opened at dawn.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "The gates opened at dawn.")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Status window</strong> and <em>inner monologue</em> text.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Status window**")
		assert.Contains(t, md, "*inner monologue*")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Stat</th><th>Value</th></tr></thead>
<tbody><tr><td>Strength</td><td>14</td></tr><tr><td>Agility</td><td>11</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Stat")
		assert.Contains(t, md, "Strength")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		html := `<blockquote><p>A letter, read aloud.</p></blockquote>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "> A letter, read aloud.")
	})

	t.Run("preserves paragraph separation", func(t *testing.T) {
		t.Parallel()

		html := `<p>First paragraph.</p><p>Second paragraph.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "First paragraph.\n\nSecond paragraph.")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, fictionfetch.EINVALID, fictionfetch.ErrorCode(err))
	})

	t.Run("handles a full chapter fragment", func(t *testing.T) {
		t.Parallel()

		html := `<p>The morning bell rang twice.</p>
<p><strong>Level up!</strong></p>
<table><tbody><tr><td>HP</td><td>120</td></tr></tbody></table>
<p>She closed the window and kept walking.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "The morning bell rang twice.")
		assert.Contains(t, md, "**Level up!**")
		assert.Contains(t, md, "HP")
		assert.Contains(t, md, "She closed the window and kept walking.")
	})
}
