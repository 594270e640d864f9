package fictionfetch_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/fictionfetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterSummary_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("preserves unknown fields byte-for-byte", func(t *testing.T) {
		t.Parallel()

		src := `{"id":7,"title":"Arrival","url":"/fiction/1/x/chapter/7","order":3,"date":"2024-01-02"}`

		var c fictionfetch.ChapterSummary
		require.NoError(t, json.Unmarshal([]byte(src), &c))

		assert.Equal(t, int64(7), c.ID)
		assert.Equal(t, "Arrival", c.Title)
		assert.Equal(t, "/fiction/1/x/chapter/7", c.URL)

		out, err := json.Marshal(c)
		require.NoError(t, err)
		assert.JSONEq(t, src, string(out))
	})

	t.Run("marshals constructed summaries without raw bytes", func(t *testing.T) {
		t.Parallel()

		out, err := json.Marshal(fictionfetch.ChapterSummary{ID: 3, Title: "Three"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":3,"title":"Three"}`, string(out))
	})
}

func TestChapterSummary_DisplayTitle(t *testing.T) {
	t.Parallel()

	withTitle := fictionfetch.ChapterSummary{ID: 1, Title: "Prologue"}
	assert.Equal(t, "Prologue", withTitle.DisplayTitle())

	withoutTitle := fictionfetch.ChapterSummary{ID: 42}
	assert.Equal(t, "Chapter 42", withoutTitle.DisplayTitle())
}

func TestChapterSummary_Path(t *testing.T) {
	t.Parallel()

	withURL := fictionfetch.ChapterSummary{ID: 1, URL: "/fiction/41656/some-title/chapter/1/prologue"}
	assert.Equal(t, "/fiction/41656/some-title/chapter/1/prologue", withURL.Path("41656/some-title"))

	withoutURL := fictionfetch.ChapterSummary{ID: 9}
	assert.Equal(t, "/fiction/41656/some-title/chapter/9", withoutURL.Path("41656/some-title"))
}

func TestStoredChapter_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires fiction slug", func(t *testing.T) {
		t.Parallel()

		err := (&fictionfetch.StoredChapter{ChapterID: 1}).Validate()
		require.Error(t, err)
		assert.Equal(t, fictionfetch.EINVALID, fictionfetch.ErrorCode(err))
	})

	t.Run("requires chapter ID", func(t *testing.T) {
		t.Parallel()

		err := (&fictionfetch.StoredChapter{FictionSlug: "1/x"}).Validate()
		require.Error(t, err)
		assert.Equal(t, fictionfetch.EINVALID, fictionfetch.ErrorCode(err))
	})

	t.Run("accepts a complete record", func(t *testing.T) {
		t.Parallel()

		err := (&fictionfetch.StoredChapter{FictionSlug: "1/x", ChapterID: 1}).Validate()
		assert.NoError(t, err)
	})
}

func TestFiction_Validate(t *testing.T) {
	t.Parallel()

	err := (&fictionfetch.Fiction{}).Validate()
	require.Error(t, err)
	assert.Equal(t, fictionfetch.EINVALID, fictionfetch.ErrorCode(err))

	ok := &fictionfetch.Fiction{Slug: "1/x", Chapters: summaries(1)}
	assert.NoError(t, ok.Validate())
}
