package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/fictionfetch"
	ffhttp "github.com/fwojciec/fictionfetch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0">
  <channel>
    <title>Some Fiction</title>
    <item>
      <title>Chapter 3: Later</title>
      <link>https://www.royalroad.com/fiction/41656/some-title/chapter/333/later</link>
      <guid isPermaLink="false">333</guid>
    </item>
    <item>
      <title>Chapter 2: Middle</title>
      <link>https://www.royalroad.com/fiction/41656/some-title/chapter/222/middle</link>
      <guid isPermaLink="false">222</guid>
    </item>
    <item>
      <title>No usable id</title>
      <link>https://www.royalroad.com/fiction/about</link>
      <guid isPermaLink="false">not-a-number</guid>
    </item>
  </channel>
</rss>`

func TestFeedService_ListChapters(t *testing.T) {
	t.Parallel()

	t.Run("parses items into chapter summaries in feed order", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/syndication/41656", r.URL.Path)
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(sampleFeed))
		}))
		defer server.Close()

		svc := ffhttp.NewFeedService(nil, ffhttp.WithFeedBaseURL(server.URL))

		chapters, err := svc.ListChapters(context.Background(), "41656")
		require.NoError(t, err)

		require.Len(t, chapters, 2)
		assert.Equal(t, int64(333), chapters[0].ID)
		assert.Equal(t, "Chapter 3: Later", chapters[0].Title)
		assert.Equal(t, "https://www.royalroad.com/fiction/41656/some-title/chapter/333/later", chapters[0].URL)
		assert.Equal(t, int64(222), chapters[1].ID)
	})

	t.Run("falls back to the link path for the chapter id", func(t *testing.T) {
		t.Parallel()

		feed := `<rss version="2.0"><channel><item>
<title>Ch</title>
<link>https://www.royalroad.com/fiction/1/x/chapter/777/ch</link>
<guid isPermaLink="true">https://www.royalroad.com/fiction/1/x/chapter/777/ch</guid>
</item></channel></rss>`

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(feed))
		}))
		defer server.Close()

		svc := ffhttp.NewFeedService(nil, ffhttp.WithFeedBaseURL(server.URL))

		chapters, err := svc.ListChapters(context.Background(), "1")
		require.NoError(t, err)

		require.Len(t, chapters, 1)
		assert.Equal(t, int64(777), chapters[0].ID)
	})

	t.Run("returns EHTTP on error status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		svc := ffhttp.NewFeedService(nil, ffhttp.WithFeedBaseURL(server.URL))

		_, err := svc.ListChapters(context.Background(), "1")
		require.Error(t, err)
		assert.Equal(t, fictionfetch.EHTTP, fictionfetch.ErrorCode(err))
	})

	t.Run("returns EINVALID on malformed XML", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<rss><channel><item></rss>"))
		}))
		defer server.Close()

		svc := ffhttp.NewFeedService(nil, ffhttp.WithFeedBaseURL(server.URL))

		_, err := svc.ListChapters(context.Background(), "1")
		require.Error(t, err)
		assert.Equal(t, fictionfetch.EINVALID, fictionfetch.ErrorCode(err))
	})
}
