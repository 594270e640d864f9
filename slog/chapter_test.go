package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/fictionfetch"
	"github.com/fwojciec/fictionfetch/mock"
	ffslog "github.com/fwojciec/fictionfetch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingChapterFetcher_FetchChapter(t *testing.T) {
	t.Parallel()

	t.Run("logs the fetched chapter title", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ChapterFetcher{
			FetchChapterFn: func(ctx context.Context, chapterPath string) (*fictionfetch.ChapterContent, error) {
				return &fictionfetch.ChapterContent{Title: "Chapter One"}, nil
			},
		}

		f := ffslog.NewLoggingChapterFetcher(inner, logger)
		content, err := f.FetchChapter(context.Background(), "/fiction/1/x/chapter/1")

		require.NoError(t, err)
		assert.Equal(t, "Chapter One", content.Title)
		output := buf.String()
		assert.Contains(t, output, "fetch chapter")
		assert.Contains(t, output, "path=/fiction/1/x/chapter/1")
		assert.Contains(t, output, "title=\"Chapter One\"")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ChapterFetcher{
			FetchChapterFn: func(ctx context.Context, chapterPath string) (*fictionfetch.ChapterContent, error) {
				return nil, fictionfetch.Errorf(fictionfetch.EHTTP, "HTTP 404 for chapter")
			},
		}

		f := ffslog.NewLoggingChapterFetcher(inner, logger)
		_, err := f.FetchChapter(context.Background(), "/fiction/1/x/chapter/1")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "HTTP 404 for chapter")
	})
}
