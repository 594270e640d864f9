package goquery_test

import (
	"testing"

	"github.com/fwojciec/fictionfetch"
	"github.com/fwojciec/fictionfetch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	t.Run("drops script elements including their content", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer()
		got, err := s.Sanitize(`<p>before</p><script>alert("evil")</script><p>after</p>`)
		require.NoError(t, err)

		assert.Equal(t, "<p>before</p><p>after</p>", got)
	})

	t.Run("drops style elements including their content", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer()
		got, err := s.Sanitize(`<style>p { display: none }</style><p>kept</p>`)
		require.NoError(t, err)

		assert.Equal(t, "<p>kept</p>", got)
	})

	t.Run("never leaks script or style at any nesting depth", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer()
		got, err := s.Sanitize(`<div><blockquote><script>a()</script><style>b{}</style>ok</blockquote></div>`)
		require.NoError(t, err)

		assert.NotContains(t, got, "<script")
		assert.NotContains(t, got, "<style")
		assert.Contains(t, got, "ok")
	})

	t.Run("unwraps disallowed tags keeping their children", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer()
		got, err := s.Sanitize(`<div><p>inner <font>styled</font> text</p></div>`)
		require.NoError(t, err)

		assert.Equal(t, "<p>inner styled text</p>", got)
	})

	t.Run("preserves inner text of disallowed table markup", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer()
		got, err := s.Sanitize(`<table><tr><td>cell text</td></tr></table>`)
		require.NoError(t, err)

		assert.NotContains(t, got, "<tr")
		assert.NotContains(t, got, "<table")
		assert.Contains(t, got, "cell text")
	})

	t.Run("drops disallowed attributes on allowed tags", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer()
		got, err := s.Sanitize(`<p style="color:red" class="intro" onclick="x()">text</p>`)
		require.NoError(t, err)

		assert.Equal(t, `<p class="intro">text</p>`, got)
	})

	t.Run("drops every attribute on emphasis and breaks", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer()
		got, err := s.Sanitize(`<em class="x">a</em><strong class="y">b</strong><br class="z">`)
		require.NoError(t, err)

		assert.Equal(t, "<em>a</em><strong>b</strong><br/>", got)
	})

	t.Run("applies bracket bolding after filtering", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer()
		got, err := s.Sanitize(`<p>[Skill] gained</p>`)
		require.NoError(t, err)

		assert.Equal(t, "<p><strong>Skill</strong> gained</p>", got)
	})

	t.Run("strips single-line noise between breaks after filtering", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer()
		got, err := s.Sanitize(`<p>story</p><br>Patreon plug<br>`)
		require.NoError(t, err)

		assert.Equal(t, "<p>story</p><br/><br/>", got)
	})

	t.Run("honors a custom noise threshold", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSanitizer(goquery.WithNoiseThreshold(2))
		got, err := s.Sanitize(`<br>abc<br>`)
		require.NoError(t, err)

		assert.Equal(t, "<br/>abc<br/>", got)
	})

	t.Run("keeps the full allow-list intact", func(t *testing.T) {
		t.Parallel()

		frag := `<h2>T</h2><blockquote class="q">quote</blockquote><ul><li>one</li></ul><pre><code>x</code></pre><hr/><span class="s">s</span>`
		s := goquery.NewSanitizer()
		got, err := s.Sanitize(frag)
		require.NoError(t, err)

		assert.Equal(t, frag, got)
	})

	t.Run("implements the Sanitizer interface", func(t *testing.T) {
		t.Parallel()

		var _ fictionfetch.Sanitizer = goquery.NewSanitizer()
	})
}
