package goquery_test

import (
	"testing"

	"github.com/fwojciec/fictionfetch"
	"github.com/fwojciec/fictionfetch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChapterPage = `<html><head><title>Fiction - Chapter 12 | Royal Road</title></head><body>
<h1>Chapter 12: The Cube</h1>
<div class="chapter-inner chapter-content">
<p>The dungeon door opened.</p>
<p>Gained [Mana Sense] immediately.</p>
<script>track();</script>
</div>
</body></html>`

func TestChapterParser_ParseChapter(t *testing.T) {
	t.Parallel()

	parser := goquery.NewChapterParser(nil)

	t.Run("extracts all four fields", func(t *testing.T) {
		t.Parallel()

		content, err := parser.ParseChapter(sampleChapterPage)
		require.NoError(t, err)

		assert.Equal(t, "Chapter 12: The Cube", content.Title)
		assert.Equal(t, "The dungeon door opened.\nGained [Mana Sense] immediately.\ntrack();", content.TextRaw)
		assert.Contains(t, content.TextHTML, "<strong>Mana Sense</strong>")
		assert.NotContains(t, content.ContentHTML, "<script")
		assert.Contains(t, content.ContentHTML, "<p>The dungeon door opened.</p>")
		assert.Contains(t, content.ContentHTML, "<strong>Mana Sense</strong>")
	})

	t.Run("falls back to the document title", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>Only Title</title></head><body><div class="chapter-content"><p>x</p></div></body></html>`
		content, err := parser.ParseChapter(page)
		require.NoError(t, err)

		assert.Equal(t, "Only Title", content.Title)
	})

	t.Run("falls back to Untitled without any title", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><div class="chapter-content"><p>x</p></div></body></html>`
		content, err := parser.ParseChapter(page)
		require.NoError(t, err)

		assert.Equal(t, "Untitled", content.Title)
	})

	t.Run("falls back to the looser container selector", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><h1>T</h1><div class="chapter-content"><p>loose body</p></div></body></html>`
		content, err := parser.ParseChapter(page)
		require.NoError(t, err)

		assert.Equal(t, "loose body", content.TextRaw)
	})

	t.Run("fails with ContentNotFound when no container exists", func(t *testing.T) {
		t.Parallel()

		_, err := parser.ParseChapter(`<html><body><h1>T</h1><p>no container</p></body></html>`)
		require.Error(t, err)
		assert.Equal(t, fictionfetch.ECONTENTNOTFOUND, fictionfetch.ErrorCode(err))
	})

	t.Run("joins block text with newlines and trims whitespace", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><div class="chapter-content">
<p>  first  </p>
<p></p>
<p>second<br>third</p>
</div></body></html>`
		content, err := parser.ParseChapter(page)
		require.NoError(t, err)

		assert.Equal(t, "first\nsecond\nthird", content.TextRaw)
	})
}
